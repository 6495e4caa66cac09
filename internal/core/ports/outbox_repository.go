package ports

import (
	"context"

	"storefront/internal/core/domain/model/order"
)

// OutboxMessage is a stored order event awaiting notification dispatch.
type OutboxMessage struct {
	ID    string
	Event order.Event
}

// OutboxRepository stores order events in the same transaction as the order change
// and hands them to the dispatcher afterwards.
type OutboxRepository interface {
	// Add stores events. Called by the unit of work right before commit.
	Add(ctx context.Context, events ...order.Event) error

	// GetPending locks and returns up to limit undispatched messages, oldest first.
	// Rows locked by another dispatcher are skipped.
	GetPending(ctx context.Context, limit int) ([]OutboxMessage, error)

	// MarkDispatched flags messages as handled. Dispatch is attempted once per message.
	MarkDispatched(ctx context.Context, ids ...string) error
}
