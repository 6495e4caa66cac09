package http_test

import (
	"context"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/model/order"

	"github.com/stretchr/testify/mock"
)

type MockCreateOrderHandler struct{ mock.Mock }

func (m *MockCreateOrderHandler) Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockUpdateLineStatusHandler struct{ mock.Mock }

func (m *MockUpdateLineStatusHandler) Handle(ctx context.Context, cmd commands.UpdateLineStatusCommand) ([]*order.Line, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Line), args.Error(1)
}

type MockReplaceSizeStockHandler struct{ mock.Mock }

func (m *MockReplaceSizeStockHandler) Handle(ctx context.Context, cmd commands.ReplaceSizeStockCommand) (*catalog.Product, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

type MockQuoteHandler struct{ mock.Mock }

func (m *MockQuoteHandler) Handle(ctx context.Context, query queries.QuoteDeliveryChargesQuery) (queries.BreakdownView, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.BreakdownView), args.Error(1)
}

type MockListBrandOrdersHandler struct{ mock.Mock }

func (m *MockListBrandOrdersHandler) Handle(ctx context.Context, query queries.ListBrandOrdersQuery) ([]queries.OrderView, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]queries.OrderView), args.Error(1)
}

type MockListOrdersHandler struct{ mock.Mock }

func (m *MockListOrdersHandler) Handle(ctx context.Context, query queries.ListOrdersQuery) ([]queries.OrderView, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]queries.OrderView), args.Error(1)
}

type MockGetOrderHandler struct{ mock.Mock }

func (m *MockGetOrderHandler) Handle(ctx context.Context, query queries.GetOrderQuery) (queries.OrderView, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.OrderView), args.Error(1)
}

type MockGetSizeStockHandler struct{ mock.Mock }

func (m *MockGetSizeStockHandler) Handle(ctx context.Context, query queries.GetSizeStockQuery) ([]queries.GetSizeStockQueryResponse, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]queries.GetSizeStockQueryResponse), args.Error(1)
}

type MockCheckAvailabilityHandler struct{ mock.Mock }

func (m *MockCheckAvailabilityHandler) Handle(ctx context.Context, query queries.CheckAvailabilityQuery) (queries.CheckAvailabilityQueryResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.CheckAvailabilityQueryResponse), args.Error(1)
}

type MockIdempotencyStore struct{ mock.Mock }

func (m *MockIdempotencyStore) Claim(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdempotencyStore) Release(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
