package queries

import (
	"errors"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/services"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrQuoteDeliveryChargesQueryIsNotConstructed = errors.New(
	"QuoteDeliveryChargesQuery must be created via NewQuoteDeliveryChargesQuery constructor",
)

// QuoteDeliveryChargesQuery prices a cart for a destination city without placing an order.
// The result is the same breakdown an order with these lines would store.
type QuoteDeliveryChargesQuery struct {
	lines []services.RequestedLine
	city  string
	guard guard.ConstructorGuard
}

// NewQuoteDeliveryChargesQuery requires at least one line and a city.
func NewQuoteDeliveryChargesQuery(lines []services.RequestedLine, city string) (QuoteDeliveryChargesQuery, error) {
	city = strings.TrimSpace(city)

	var errList []error
	if len(lines) == 0 {
		errList = append(errList, errs.NewValueIsRequiredError("lines"))
	}
	if city == "" {
		errList = append(errList, errs.NewValueIsRequiredError("city"))
	}
	for _, l := range lines {
		errList = append(errList, l.ProductID.Validate(), validateQuantity(l.Quantity))
	}
	if err := errors.Join(errList...); err != nil {
		return QuoteDeliveryChargesQuery{}, err
	}

	return QuoteDeliveryChargesQuery{
		lines: append([]services.RequestedLine(nil), lines...),
		city:  city,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q QuoteDeliveryChargesQuery) Validate() error {
	return q.guard.Validate(ErrQuoteDeliveryChargesQueryIsNotConstructed)
}

func (q QuoteDeliveryChargesQuery) Lines() []services.RequestedLine {
	return append([]services.RequestedLine(nil), q.lines...)
}

func (q QuoteDeliveryChargesQuery) City() string {
	return q.city
}

// ProductIDs returns the distinct product ids of the lines.
func (q QuoteDeliveryChargesQuery) ProductIDs() []kernel.UUID {
	seen := make(map[kernel.UUID]struct{}, len(q.lines))
	ids := make([]kernel.UUID, 0, len(q.lines))
	for _, l := range q.lines {
		if _, ok := seen[l.ProductID]; ok {
			continue
		}
		seen[l.ProductID] = struct{}{}
		ids = append(ids, l.ProductID)
	}
	return ids
}
