package queries

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/guard"
)

var ErrGetSizeStockQueryIsNotConstructed = errors.New(
	"GetSizeStockQuery must be created via NewGetSizeStockQuery constructor",
)

// GetSizeStockQuery lists the size buckets of one product.
//
// Example:
//
//	query, err := NewGetSizeStockQuery(productID)
//	if err != nil {
//	    return err
//	}
//	sizes, err := handler.Handle(ctx, query)
//	for _, s := range sizes {
//	    fmt.Printf("%s: %d left, %d sold\n", s.Size, s.RemainingStock, s.CumulativeSold)
//	}
type GetSizeStockQuery struct {
	productID kernel.UUID
	guard     guard.ConstructorGuard
}

// NewGetSizeStockQuery creates a query for the sizes of productID.
func NewGetSizeStockQuery(productID kernel.UUID) (GetSizeStockQuery, error) {
	if err := productID.Validate(); err != nil {
		return GetSizeStockQuery{}, err
	}
	return GetSizeStockQuery{productID: productID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetSizeStockQuery) Validate() error {
	return q.guard.Validate(ErrGetSizeStockQueryIsNotConstructed)
}

func (q GetSizeStockQuery) ProductID() kernel.UUID {
	return q.productID
}

// GetSizeStockQueryResponse is one size bucket. Available is true while stock remains.
type GetSizeStockQueryResponse struct {
	Size           string
	RemainingStock int
	CumulativeSold int
	Available      bool
}
