package queries

import (
	"context"

	"storefront/internal/core/domain/services"
	"storefront/internal/core/ports"
)

// QuoteDeliveryChargesQueryHandler resolves cart lines against the catalog and runs
// the delivery charge calculator on them.
type QuoteDeliveryChargesQueryHandler struct {
	products   ports.ProductRepository
	brands     ports.BrandRepository
	calculator services.DeliveryChargeCalculator
}

// NewQuoteDeliveryChargesQueryHandler creates a handler for delivery quotes.
func NewQuoteDeliveryChargesQueryHandler(
	products ports.ProductRepository,
	brands ports.BrandRepository,
	calculator services.DeliveryChargeCalculator,
) QuoteDeliveryChargesQueryHandler {
	return QuoteDeliveryChargesQueryHandler{
		products:   products,
		brands:     brands,
		calculator: calculator,
	}
}

// Handle returns the per-brand breakdown and totals. Unknown products are priced
// with the client price and grouped under no brand.
func (h QuoteDeliveryChargesQueryHandler) Handle(
	ctx context.Context,
	query QuoteDeliveryChargesQuery,
) (BreakdownView, error) {
	if err := query.Validate(); err != nil {
		return BreakdownView{}, err
	}

	products, err := h.products.GetMany(ctx, query.ProductIDs())
	if err != nil {
		return BreakdownView{}, err
	}

	brands, err := h.brands.GetMany(ctx, services.BrandIDsOf(products))
	if err != nil {
		return BreakdownView{}, err
	}

	resolved, err := services.ResolveLines(query.Lines(), products, brands)
	if err != nil {
		return BreakdownView{}, err
	}

	chargeable := make([]services.ChargeableLine, 0, len(resolved))
	for _, r := range resolved {
		chargeable = append(chargeable, r.Chargeable())
	}

	breakdown, err := h.calculator.Calculate(chargeable, query.City())
	if err != nil {
		return BreakdownView{}, err
	}

	return NewBreakdownView(breakdown), nil
}
