package services

import (
	"errors"
	"fmt"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"
)

// ErrNoChargeableLines is returned when a breakdown is requested for an empty cart.
var ErrNoChargeableLines = errs.NewValueIsRequiredError("lines")

// ChargeableLine is one cart or order line as seen by the delivery calculator.
// BrandID is nil when the owning brand could not be resolved; such lines are grouped
// into the unknown group instead of failing the order.
type ChargeableLine struct {
	ProductID kernel.UUID
	Size      string
	Quantity  int
	Subtotal  kernel.Money
	BrandID   *kernel.UUID
	BrandName string
}

// DeliveryRates configures the two-tier flat delivery charge.
type DeliveryRates struct {
	// HomeCity is compared with the destination city after trimming and case folding.
	HomeCity string
	// HomeRate is charged per brand group when the destination is the home city.
	HomeRate kernel.Money
	// OutsideRate is charged per brand group anywhere else, including a missing city.
	OutsideRate kernel.Money
}

// DeliveryChargeCalculator is a domain service that groups lines by owning brand and
// charges each group one flat rate chosen by the destination city.
//
// Business rules:
//   - One charge per brand group regardless of line count or quantity
//   - Lines with an unresolved brand form a single "unknown" group, charged once
//   - No multi-item discount and no free-shipping threshold
//   - Grand total = sum of line subtotals + sum of group charges
//
// Example usage:
//
//	calc, _ := services.NewDeliveryChargeCalculator(services.DeliveryRates{
//	    HomeCity: "Dhaka", HomeRate: sixty, OutsideRate: oneTwenty,
//	})
//	breakdown, err := calc.Calculate(lines, "  dhaka ")
//	// breakdown.DeliveryCharge == 60 × breakdown.BrandCount
type DeliveryChargeCalculator struct {
	rates DeliveryRates
}

// NewDeliveryChargeCalculator validates the rates. A blank home city is rejected so
// that the lower tier can actually be reached.
func NewDeliveryChargeCalculator(rates DeliveryRates) (DeliveryChargeCalculator, error) {
	if kernel.NormalizeCity(rates.HomeCity) == "" {
		return DeliveryChargeCalculator{}, errs.NewValueIsRequiredError("home city")
	}
	return DeliveryChargeCalculator{rates: rates}, nil
}

// Rates returns the configured rates.
func (c DeliveryChargeCalculator) Rates() DeliveryRates {
	return c.rates
}

// RateFor returns the flat per-group charge for a destination city.
func (c DeliveryChargeCalculator) RateFor(city string) kernel.Money {
	if kernel.NormalizeCity(city) == kernel.NormalizeCity(c.rates.HomeCity) {
		return c.rates.HomeRate
	}
	return c.rates.OutsideRate
}

// Calculate builds the delivery breakdown for lines shipped to city.
//
// Groups appear in the order their first line appears. The unknown group uses the
// name order.UnknownBrandName.
//
// Returns:
//   - order.DeliveryBreakdown: groups and totals
//   - error: ErrNoChargeableLines for an empty input, or a validation error for a
//     non-positive quantity
func (c DeliveryChargeCalculator) Calculate(lines []ChargeableLine, city string) (order.DeliveryBreakdown, error) {
	if len(lines) == 0 {
		return order.DeliveryBreakdown{}, ErrNoChargeableLines
	}

	var groups []order.BrandGroup
	var errList []error
	index := make(map[string]int)

	for i, line := range lines {
		if line.Quantity <= 0 {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
				"quantity is invalid",
				fmt.Errorf("line %d: %d is not greater than 0", i, line.Quantity),
			))
			continue
		}

		key, name := order.UnknownBrandName, order.UnknownBrandName
		if line.BrandID != nil {
			key, name = line.BrandID.String(), line.BrandName
		}

		gi, ok := index[key]
		if !ok {
			gi = len(groups)
			index[key] = gi
			group := order.BrandGroup{BrandName: name, Subtotal: kernel.ZeroMoney()}
			if line.BrandID != nil {
				id := *line.BrandID
				group.BrandID = &id
			}
			groups = append(groups, group)
		}

		groups[gi].Lines = append(groups[gi].Lines, order.GroupLine{
			ProductID: line.ProductID,
			Size:      line.Size,
			Quantity:  line.Quantity,
			Subtotal:  line.Subtotal,
		})
		groups[gi].Subtotal = groups[gi].Subtotal.Add(line.Subtotal)
	}

	if err := errors.Join(errList...); err != nil {
		return order.DeliveryBreakdown{}, err
	}

	rate := c.RateFor(city)
	breakdown := order.DeliveryBreakdown{
		Subtotal:       kernel.ZeroMoney(),
		DeliveryCharge: kernel.ZeroMoney(),
		BrandCount:     len(groups),
	}
	for i := range groups {
		groups[i].DeliveryCharge = rate
		groups[i].Total = groups[i].Subtotal.Add(rate)
		breakdown.Subtotal = breakdown.Subtotal.Add(groups[i].Subtotal)
		breakdown.DeliveryCharge = breakdown.DeliveryCharge.Add(rate)
	}
	breakdown.Groups = groups
	breakdown.GrandTotal = breakdown.Subtotal.Add(breakdown.DeliveryCharge)

	return breakdown, nil
}
