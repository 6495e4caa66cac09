package orderrepo

import (
	"context"
	"errors"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"

	"gorm.io/gorm"
)

const (
	// DefaultPageLimit applies when a list query does not set a limit.
	DefaultPageLimit = 50
	// MaxPageLimit caps list queries.
	MaxPageLimit = 200
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order with its lines.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the overall status and line statuses of an existing order.
//
// The order row is updated only while its version still equals the loaded one; the
// update bumps the version and holds the row lock until the transaction ends, so a
// second writer that loaded the same version gets a ConcurrentModificationError.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	updatedAt := dto.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}

	result := db.Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(map[string]any{
			"overall_status": dto.OverallStatus,
			"updated_at":     updatedAt,
			"version":        gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := db.Model(&OrderDTO{}).Where("id = ?", dto.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("order", aggregate.ID().String())
		}
		return errs.NewConcurrentModificationError("order", aggregate.ID().String(), aggregate.Version())
	}

	for _, line := range dto.Lines {
		if err := db.Model(&LineDTO{}).
			Where("id = ? AND order_id = ?", line.ID, dto.ID).
			Update("status", line.Status).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID with its lines in placement order.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).
		Preload("Lines", orderedLines).
		First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// ListByBrand returns the orders holding at least one line of brandID, newest first.
func (r *GormOrderRepository) ListByBrand(
	ctx context.Context, brandID kernel.UUID, page ports.Page,
) ([]*order.Order, error) {
	if err := brandID.Validate(); err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx).
		Where("EXISTS (SELECT 1 FROM order_lines WHERE order_lines.order_id = orders.id AND order_lines.brand_id = ?)",
			brandID.Bytes())

	return r.list(query, page)
}

// List returns all orders, newest first.
func (r *GormOrderRepository) List(ctx context.Context, page ports.Page) ([]*order.Order, error) {
	return r.list(r.db.WithContext(ctx), page)
}

func (r *GormOrderRepository) list(query *gorm.DB, page ports.Page) ([]*order.Order, error) {
	limit, offset := normalizePage(page)

	var dtos []OrderDTO
	if err := query.
		Preload("Lines", orderedLines).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

func orderedLines(db *gorm.DB) *gorm.DB {
	return db.Order("position")
}

func normalizePage(page ports.Page) (int, int) {
	limit := page.Limit
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	limit = min(limit, MaxPageLimit)
	return limit, max(page.Offset, 0)
}
