package ports

import (
	"context"

	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/model/kernel"
)

// ProductRepository defines the persistence contract for products and is the inventory
// ledger of the storefront.
//
// The ledger methods are single conditional SQL statements executed in the caller's
// transaction. They mutate unconditionally on every call; callers gate repeated
// invocation. After every ledger mutation the stored totalStock equals the sum of the
// product's bucket stock.
type ProductRepository interface {
	// Add persists a new product with its size buckets.
	Add(ctx context.Context, product *catalog.Product) error

	// Get retrieves a product with its size buckets in display order.
	Get(ctx context.Context, id kernel.UUID) (*catalog.Product, error)

	// GetMany retrieves the products that exist among ids. Missing ids are skipped.
	GetMany(ctx context.Context, ids []kernel.UUID) ([]*catalog.Product, error)

	// ReplaceSizes stores the product's current size array, replacing the stored one,
	// and its recomputed totalStock. Only stock and order are written: stored sold
	// counters and lifetime sales are kept, new sizes start at zero sold.
	ReplaceSizes(ctx context.Context, product *catalog.Product) error

	// DecrementOnConfirm lowers the bucket's stock by min(stock, quantity) and
	// recomputes totalStock. A product without buckets has totalStock lowered directly.
	// Returns errs.ObjectNotFoundError when the product is gone or has buckets but none
	// of the given size.
	DecrementOnConfirm(ctx context.Context, productID kernel.UUID, size string, quantity int) error

	// RecordSaleOnDeliver adds quantity to the bucket's sold counter and to the product's
	// lifetime sales. Stock is not touched. Not-found rules match DecrementOnConfirm.
	RecordSaleOnDeliver(ctx context.Context, productID kernel.UUID, size string, quantity int) error
}

// BrandRepository reads brands maintained by the catalog administration.
type BrandRepository interface {
	Get(ctx context.Context, id kernel.UUID) (*catalog.Brand, error)

	// GetMany retrieves the brands that exist among ids. Missing ids are skipped.
	GetMany(ctx context.Context, ids []kernel.UUID) ([]*catalog.Brand, error)
}
