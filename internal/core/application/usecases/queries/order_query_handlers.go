package queries

import (
	"context"
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
)

// GetOrderQueryHandler reads one order through the order repository.
type GetOrderQueryHandler struct {
	orders ports.OrderRepository
}

// NewGetOrderQueryHandler creates a handler for single order reads.
func NewGetOrderQueryHandler(orders ports.OrderRepository) GetOrderQueryHandler {
	return GetOrderQueryHandler{orders: orders}
}

// Handle returns the order or ObjectNotFoundError.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	o, err := h.orders.Get(ctx, query.OrderID())
	if err != nil {
		return OrderView{}, err
	}

	return NewOrderView(o, nil), nil
}

// ListOrdersQueryHandler lists all orders for the admin view.
type ListOrdersQueryHandler struct {
	orders ports.OrderRepository
}

// NewListOrdersQueryHandler creates a handler for the admin order list.
func NewListOrdersQueryHandler(orders ports.OrderRepository) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{orders: orders}
}

// Handle returns a page of orders, newest first.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders, err := h.orders.List(ctx, query.Page())
	if err != nil {
		return nil, err
	}

	return orderViews(orders, nil), nil
}

// ListBrandOrdersQueryHandler lists a brand's share of the orders it takes part in.
type ListBrandOrdersQueryHandler struct {
	orders ports.OrderRepository
	brands ports.BrandRepository
}

// NewListBrandOrdersQueryHandler creates a handler for the brand order list.
func NewListBrandOrdersQueryHandler(orders ports.OrderRepository, brands ports.BrandRepository) ListBrandOrdersQueryHandler {
	return ListBrandOrdersQueryHandler{orders: orders, brands: brands}
}

// Handle returns a page of the brand's orders with other brands' lines removed.
// Unknown or unapproved brands are forbidden.
func (h ListBrandOrdersQueryHandler) Handle(ctx context.Context, query ListBrandOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	brand, err := h.brands.Get(ctx, query.BrandID())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil, errs.NewForbiddenError("brand "+query.BrandID().String(), "list orders")
		}
		return nil, err
	}
	if !brand.IsApproved() {
		return nil, errs.NewForbiddenError("brand "+brand.Name(), "list orders")
	}

	orders, err := h.orders.ListByBrand(ctx, query.BrandID(), query.Page())
	if err != nil {
		return nil, err
	}

	brandID := query.BrandID()
	return orderViews(orders, &brandID), nil
}

func orderViews(orders []*order.Order, onlyBrand *kernel.UUID) []OrderView {
	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, NewOrderView(o, onlyBrand))
	}
	return views
}
