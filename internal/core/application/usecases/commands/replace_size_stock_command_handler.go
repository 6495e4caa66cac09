package commands

import (
	"context"

	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/pkg/errs"
)

// ReplaceSizeStockCommandHandler performs the administrative bulk update of a product's
// sizes. Sold counters are not editable: a size that already exists keeps its sold
// count, a new size starts at zero, and a removed size loses its history.
type ReplaceSizeStockCommandHandler struct {
	uowFactory ProductUoWFactory
}

func NewReplaceSizeStockCommandHandler(uowFactory ProductUoWFactory) ReplaceSizeStockCommandHandler {
	return ReplaceSizeStockCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle replaces the sizes and returns the product as stored after the replacement.
// Only the approved brand owning the product may do so.
func (h ReplaceSizeStockCommandHandler) Handle(ctx context.Context, cmd ReplaceSizeStockCommand) (*catalog.Product, error) {
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

	const action = "replace product sizes"
	if err := authorizeBrand(ctx, uow.BrandRepository(), cmd.BrandID(), action); err != nil {
		return nil, err
	}

	productRepo := uow.ProductRepository()
	product, err := productRepo.Get(ctx, cmd.ProductID())
	if err != nil {
		return nil, err
	}

	if !product.BrandID().IsEqual(cmd.BrandID()) {
		return nil, errs.NewForbiddenError("brand "+cmd.BrandID().String(), action+" of another brand")
	}

	buckets := make([]*catalog.SizeBucket, 0, len(cmd.Sizes()))
	for _, s := range cmd.Sizes() {
		sold := 0
		if existing, ok := product.FindSize(s.Size); ok {
			sold = existing.Sold()
		}

		bucket, err := catalog.RestoreSizeBucket(s.Size, s.Stock, sold)
		if err != nil {
			return nil, err
		}
		buckets = append(buckets, bucket)
	}

	if err = product.ReplaceSizes(buckets); err != nil {
		return nil, err
	}

	if err = productRepo.ReplaceSizes(ctx, product); err != nil {
		return nil, err
	}

	// Sales recorded since the read above are kept by the store, not by this snapshot.
	stored, err := productRepo.Get(ctx, cmd.ProductID())
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return stored, nil
}
