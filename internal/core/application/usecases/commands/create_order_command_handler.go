package commands

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/services"
	"storefront/internal/core/ports"

	"go.uber.org/zap"
)

// CreateOrderCommandHandler places orders. It resolves every requested line against the
// catalog, groups lines by brand, computes the delivery breakdown and persists the order
// with all lines pending. The placement event is written to the outbox by the unit of
// work in the same transaction.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, calculator, metrics, logger)
//	placed, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order placement failed: %w", err)
//	}
//	fmt.Println(placed.Breakdown().GrandTotal)
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	calculator services.DeliveryChargeCalculator
	metrics    ports.FulfilmentMetrics
	logger     *zap.Logger
}

// NewCreateOrderCommandHandler creates a handler for order placement.
func NewCreateOrderCommandHandler(
	uowFactory UoWFactory,
	calculator services.DeliveryChargeCalculator,
	metrics ports.FulfilmentMetrics,
	logger *zap.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		calculator: calculator,
		metrics:    metrics,
		logger:     logger.With(zap.String("handler", "create_order")),
	}
}

// Handle places the order described by cmd.
// Lines of unknown products are kept with the client price and no brand; such lines
// form the "unknown" brand group. The declared total must equal the computed grand total.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	products, err := uow.ProductRepository().GetMany(ctx, cmd.ProductIDs())
	if err != nil {
		return nil, err
	}

	brands, err := uow.BrandRepository().GetMany(ctx, services.BrandIDsOf(products))
	if err != nil {
		return nil, err
	}

	resolved, err := services.ResolveLines(cmd.Lines(), products, brands)
	if err != nil {
		return nil, err
	}

	chargeable := make([]services.ChargeableLine, 0, len(resolved))
	lines := make([]*order.Line, 0, len(resolved))
	for _, r := range resolved {
		chargeable = append(chargeable, r.Chargeable())

		line, err := order.NewLine(
			kernel.NewUUID(), r.ProductID, r.ProductName, r.BrandID, r.BrandName, r.Size, r.Quantity, r.UnitPrice,
		)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	breakdown, err := h.calculator.Calculate(chargeable, cmd.Destination().City())
	if err != nil {
		return nil, err
	}

	placed, err := order.NewOrder(
		cmd.OrderID(),
		cmd.Customer(),
		cmd.Destination(),
		lines,
		cmd.Payment(),
		cmd.DeclaredTotal(),
		breakdown,
	)
	if err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Add(ctx, placed); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.metrics.OrderPlaced(breakdown.BrandCount)
	h.logger.Info("order placed",
		zap.String("order_id", placed.ID().String()),
		zap.Int("lines", len(lines)),
		zap.Int("brands", breakdown.BrandCount),
		zap.String("grand_total", breakdown.GrandTotal.String()),
	)

	return placed, nil
}
