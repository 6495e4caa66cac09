package commands

import (
	"context"
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"

	"go.uber.org/zap"
)

// DefaultMaxTransitionRetries is used when the handler is given a negative retry count.
const DefaultMaxTransitionRetries = 3

// UpdateLineStatusCommandHandler is the order status transition engine.
//
// One attempt runs in a single transaction:
//  1. the brand must exist and be approved
//  2. the order is loaded and the transition applied to the brand's lines; the
//     status each line had before is what gates the ledger effects
//  3. the order is saved with a version check, then the ledger effects are written
//  4. commit; the unit of work stores the status-changed event in the outbox
//
// When another request saved the order in between, the version check fails, the
// transaction is rolled back and the attempt is repeated from a fresh load. The loser
// of a race therefore sees the winner's statuses, so a decrement or sale is written
// at most once per line.
//
// Example:
//
//	handler := NewUpdateLineStatusCommandHandler(uowFactory, order.MonotonicTransitions, 3, metrics, logger)
//	cmd, _ := NewUpdateLineStatusCommand(orderID, brandID, order.Confirmed)
//	lines, err := handler.Handle(ctx, cmd)
type UpdateLineStatusCommandHandler struct {
	uowFactory UoWFactory
	policy     order.TransitionPolicy
	maxRetries int
	metrics    ports.FulfilmentMetrics
	logger     *zap.Logger
}

// NewUpdateLineStatusCommandHandler creates the transition engine. maxRetries is the
// number of extra attempts after a lost version race.
func NewUpdateLineStatusCommandHandler(
	uowFactory UoWFactory,
	policy order.TransitionPolicy,
	maxRetries int,
	metrics ports.FulfilmentMetrics,
	logger *zap.Logger,
) UpdateLineStatusCommandHandler {
	if maxRetries < 0 {
		maxRetries = DefaultMaxTransitionRetries
	}

	return UpdateLineStatusCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		maxRetries: maxRetries,
		metrics:    metrics,
		logger:     logger.With(zap.String("handler", "update_line_status")),
	}
}

// Handle applies the transition and returns the brand's lines after it.
// Re-issuing the current status returns the lines unchanged without writing anything.
func (h UpdateLineStatusCommandHandler) Handle(ctx context.Context, cmd UpdateLineStatusCommand) ([]*order.Line, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	for attempt := 0; ; attempt++ {
		lines, err := h.attempt(ctx, cmd)
		if err == nil {
			return lines, nil
		}
		if !errors.Is(err, errs.ErrConcurrentModification) || attempt >= h.maxRetries {
			return nil, err
		}

		h.metrics.TransitionConflict()
		h.logger.Debug("order changed concurrently, retrying transition",
			zap.String("order_id", cmd.OrderID().String()),
			zap.String("brand_id", cmd.BrandID().String()),
			zap.Int("attempt", attempt+1),
		)
	}
}

func (h UpdateLineStatusCommandHandler) attempt(ctx context.Context, cmd UpdateLineStatusCommand) ([]*order.Line, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := authorizeBrand(ctx, uow.BrandRepository(), cmd.BrandID(), "update order status"); err != nil {
		return nil, err
	}

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	result, err := o.ApplyBrandTransition(cmd.BrandID(), cmd.Target(), h.policy)
	if err != nil {
		return nil, err
	}

	if !result.Changed {
		h.metrics.TransitionApplied(cmd.Target().String(), false)
		return result.Lines, nil
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	applied, err := h.applyLedger(ctx, uow.ProductRepository(), o.ID(), result.Effects)
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.metrics.TransitionApplied(cmd.Target().String(), true)
	for _, kind := range applied {
		h.metrics.LedgerApplied(kind.String())
	}
	h.logger.Info("order lines transitioned",
		zap.String("order_id", o.ID().String()),
		zap.String("brand_id", cmd.BrandID().String()),
		zap.String("target", cmd.Target().String()),
		zap.Int("lines", len(result.Lines)),
		zap.Int("ledger_writes", len(applied)),
	)

	return result.Lines, nil
}

// applyLedger writes the effects in order. A product or size that no longer exists is
// skipped with a warning; the status change still goes through.
func (h UpdateLineStatusCommandHandler) applyLedger(
	ctx context.Context,
	products ports.ProductRepository,
	orderID kernel.UUID,
	effects []order.LedgerEffect,
) ([]order.LedgerEffectKind, error) {
	applied := make([]order.LedgerEffectKind, 0, len(effects))
	for _, effect := range effects {
		var err error
		switch effect.Kind {
		case order.DecrementStock:
			err = products.DecrementOnConfirm(ctx, effect.ProductID, effect.Size, effect.Quantity)
		case order.RecordSale:
			err = products.RecordSaleOnDeliver(ctx, effect.ProductID, effect.Size, effect.Quantity)
		}

		if errors.Is(err, errs.ErrObjectNotFound) {
			h.logger.Warn("ledger entry not found, skipping",
				zap.String("order_id", orderID.String()),
				zap.String("line_id", effect.LineID.String()),
				zap.String("product_id", effect.ProductID.String()),
				zap.String("size", effect.Size),
				zap.Stringer("effect", effect.Kind),
				zap.Error(err),
			)
			continue
		}
		if err != nil {
			return nil, err
		}
		applied = append(applied, effect.Kind)
	}
	return applied, nil
}

// authorizeBrand allows only existing, approved brands to act.
func authorizeBrand(ctx context.Context, brands ports.BrandRepository, brandID kernel.UUID, action string) error {
	brand, err := brands.Get(ctx, brandID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return errs.NewForbiddenError("brand "+brandID.String(), action)
	}
	if err != nil {
		return err
	}
	if !brand.IsApproved() {
		return errs.NewForbiddenError("unapproved brand "+brandID.String(), action)
	}
	return nil
}
