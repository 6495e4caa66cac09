package ports

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
)

// Page limits list queries. A zero Limit means the repository default.
type Page struct {
	Limit  int
	Offset int
}

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a newly placed order with its lines.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists line statuses and the overall status of an existing order.
	// The write succeeds only if the stored version still equals aggregate.Version();
	// otherwise it returns errs.ConcurrentModificationError and writes nothing.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with all its lines.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// ListByBrand returns orders containing at least one line of brandID, newest first.
	ListByBrand(ctx context.Context, brandID kernel.UUID, page Page) ([]*order.Order, error)

	// List returns all orders, newest first.
	List(ctx context.Context, page Page) ([]*order.Order, error)
}
