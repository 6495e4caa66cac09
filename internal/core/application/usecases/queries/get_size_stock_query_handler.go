package queries

import (
	"context"
	"database/sql"

	"storefront/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetSizeStockQueryHandler reads size buckets straight from the database.
type GetSizeStockQueryHandler struct {
	db *gorm.DB
}

// NewGetSizeStockQueryHandler creates a handler for size stock queries.
func NewGetSizeStockQueryHandler(db *gorm.DB) GetSizeStockQueryHandler {
	return GetSizeStockQueryHandler{db: db}
}

// Handle returns the product's sizes in display order. A product without sizes yields
// an empty slice; an unknown product yields ObjectNotFoundError.
func (h GetSizeStockQueryHandler) Handle(
	ctx context.Context,
	query GetSizeStockQuery,
) ([]GetSizeStockQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			b.size,
			b.stock,
			b.sold
		FROM products p
		LEFT JOIN size_buckets b ON b.product_id = p.id
		WHERE p.id = ?
		ORDER BY b.position
	`, query.ProductID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	found := false
	sizes := make([]GetSizeStockQueryResponse, 0)
	for rows.Next() {
		found = true

		var size sql.NullString
		var stock, sold sql.NullInt64
		if err = rows.Scan(&size, &stock, &sold); err != nil {
			return nil, err
		}
		if !size.Valid {
			continue
		}

		sizes = append(sizes, GetSizeStockQueryResponse{
			Size:           size.String,
			RemainingStock: int(stock.Int64),
			CumulativeSold: int(sold.Int64),
			Available:      stock.Int64 > 0,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if !found {
		return nil, errs.NewObjectNotFoundError("product", query.ProductID().String())
	}

	return sizes, nil
}
