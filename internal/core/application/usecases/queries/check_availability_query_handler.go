package queries

import (
	"context"
	"database/sql"
	"errors"

	"storefront/internal/pkg/errs"

	"gorm.io/gorm"
)

// CheckAvailabilityQueryHandler answers cart checks from the stored ledger.
type CheckAvailabilityQueryHandler struct {
	db *gorm.DB
}

// NewCheckAvailabilityQueryHandler creates a handler for availability checks.
func NewCheckAvailabilityQueryHandler(db *gorm.DB) CheckAvailabilityQueryHandler {
	return CheckAvailabilityQueryHandler{db: db}
}

// Handle reads the bucket's remaining stock, or total_stock for products without sizes.
// A sized product asked for a size it does not have is ObjectNotFoundError.
func (h CheckAvailabilityQueryHandler) Handle(
	ctx context.Context,
	query CheckAvailabilityQuery,
) (CheckAvailabilityQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return CheckAvailabilityQueryResponse{}, err
	}

	var totalStock int
	var sized bool
	var bucketStock sql.NullInt64

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			p.total_stock,
			EXISTS (SELECT 1 FROM size_buckets s WHERE s.product_id = p.id) AS sized,
			b.stock
		FROM products p
		LEFT JOIN size_buckets b ON b.product_id = p.id AND b.size = ?
		WHERE p.id = ?
	`, query.Size(), query.ProductID().Bytes()).Row()

	if err := row.Scan(&totalStock, &sized, &bucketStock); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return CheckAvailabilityQueryResponse{}, errs.NewObjectNotFoundError("product", query.ProductID().String())
		}
		return CheckAvailabilityQueryResponse{}, err
	}

	remaining := totalStock
	if sized {
		if !bucketStock.Valid {
			return CheckAvailabilityQueryResponse{}, errs.NewObjectNotFoundError(
				"size bucket", query.ProductID().String()+"/"+query.Size())
		}
		remaining = int(bucketStock.Int64)
	}

	return CheckAvailabilityQueryResponse{
		ProductID: query.ProductID().String(),
		Size:      query.Size(),
		Remaining: remaining,
		Requested: query.Quantity(),
		Available: remaining >= query.Quantity(),
	}, nil
}
