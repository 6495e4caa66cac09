// Package outboxrepo stores order events next to the order rows so that notifications
// are sent only for committed changes.
package outboxrepo

import (
	"context"
	"encoding/json"
	"time"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MessageDTO is one outbox row. Payload holds the JSON encoded order.Event.
type MessageDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	EventType    string     `gorm:"type:varchar(64);not null"`
	OrderID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	Payload      []byte     `gorm:"type:jsonb;not null"`
	CreatedAt    time.Time  `gorm:"not null;index;autoCreateTime:false"`
	DispatchedAt *time.Time `gorm:"index"`
}

// TableName overrides GORM's default "message_dtos".
func (MessageDTO) TableName() string {
	return "outbox_messages"
}

// GormOutboxRepository implements OutboxRepository using GORM.
type GormOutboxRepository struct {
	db *gorm.DB
}

// NewGormOutboxRepository creates a new GORM outbox repository.
func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

// Add stores events as undispatched messages.
func (r *GormOutboxRepository) Add(ctx context.Context, events ...order.Event) error {
	if len(events) == 0 {
		return nil
	}

	dtos := make([]MessageDTO, 0, len(events))
	for _, event := range events {
		dto, err := fromEvent(event)
		if err != nil {
			return err
		}
		dtos = append(dtos, dto)
	}

	return r.db.WithContext(ctx).Create(&dtos).Error
}

// GetPending locks up to limit undispatched messages, oldest first, skipping rows
// another dispatcher holds.
func (r *GormOutboxRepository) GetPending(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	var dtos []MessageDTO
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("dispatched_at IS NULL").
		Order("created_at").
		Limit(limit).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	messages := make([]ports.OutboxMessage, 0, len(dtos))
	for _, dto := range dtos {
		var event order.Event
		if err := json.Unmarshal(dto.Payload, &event); err != nil {
			return nil, errors.Wrapf(err, "decode outbox message %s", dto.ID)
		}
		messages = append(messages, ports.OutboxMessage{ID: dto.ID.String(), Event: event})
	}

	return messages, nil
}

// MarkDispatched stamps dispatched_at on the given messages.
func (r *GormOutboxRepository) MarkDispatched(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).
		Model(&MessageDTO{}).
		Where("id = ANY(?)", pq.Array(ids)).
		Update("dispatched_at", time.Now().UTC()).Error
}

func fromEvent(event order.Event) (MessageDTO, error) {
	id, err := uuid.Parse(event.ID)
	if err != nil {
		return MessageDTO{}, errors.Wrap(err, "event id")
	}

	orderID, err := uuid.Parse(event.OrderID)
	if err != nil {
		return MessageDTO{}, errors.Wrap(err, "event order id")
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return MessageDTO{}, errors.Wrap(err, "encode event")
	}

	return MessageDTO{
		ID:        id,
		EventType: string(event.Type),
		OrderID:   orderID,
		Payload:   payload,
		CreatedAt: event.OccurredAt,
	}, nil
}
