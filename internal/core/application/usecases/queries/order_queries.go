package queries

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

// MaxPageLimit caps the page size a caller may ask for.
const MaxPageLimit = 200

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery constructor",
	)
	ErrListOrdersQueryIsNotConstructed = errors.New(
		"ListOrdersQuery must be created via NewListOrdersQuery constructor",
	)
	ErrListBrandOrdersQueryIsNotConstructed = errors.New(
		"ListBrandOrdersQuery must be created via NewListBrandOrdersQuery constructor",
	)
)

// GetOrderQuery reads one order with all its lines. Used by the admin view.
type GetOrderQuery struct {
	orderID kernel.UUID
	guard   guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for orderID.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// ListOrdersQuery pages through all orders, newest first.
type ListOrdersQuery struct {
	page  ports.Page
	guard guard.ConstructorGuard
}

// NewListOrdersQuery creates a paged query over all orders.
func NewListOrdersQuery(page ports.Page) (ListOrdersQuery, error) {
	if err := validatePage(page); err != nil {
		return ListOrdersQuery{}, err
	}
	return ListOrdersQuery{page: page, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Page() ports.Page {
	return q.page
}

// ListBrandOrdersQuery pages through the orders that contain lines of one brand.
// Each returned order carries only that brand's lines.
type ListBrandOrdersQuery struct {
	brandID kernel.UUID
	page    ports.Page
	guard   guard.ConstructorGuard
}

// NewListBrandOrdersQuery creates a paged query for brandID.
func NewListBrandOrdersQuery(brandID kernel.UUID, page ports.Page) (ListBrandOrdersQuery, error) {
	if err := errors.Join(brandID.Validate(), validatePage(page)); err != nil {
		return ListBrandOrdersQuery{}, err
	}
	return ListBrandOrdersQuery{brandID: brandID, page: page, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListBrandOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListBrandOrdersQueryIsNotConstructed)
}

func (q ListBrandOrdersQuery) BrandID() kernel.UUID {
	return q.brandID
}

func (q ListBrandOrdersQuery) Page() ports.Page {
	return q.page
}

func validatePage(page ports.Page) error {
	if page.Limit < 0 || page.Limit > MaxPageLimit {
		return errs.NewValueIsOutOfRangeError("limit", page.Limit, 0, MaxPageLimit)
	}
	if page.Offset < 0 {
		return errs.NewValueIsOutOfRangeError("offset", page.Offset, 0, "unbounded")
	}
	return nil
}
