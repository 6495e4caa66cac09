package services

import (
	"errors"
	"fmt"

	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

// RequestedLine is a cart line as submitted by the client. UnitPrice is used only when
// the product cannot be resolved; otherwise the catalog price wins.
type RequestedLine struct {
	ProductID kernel.UUID
	Size      string
	Quantity  int
	UnitPrice kernel.Money
}

// ResolvedLine is a requested line joined with its catalog product and brand.
type ResolvedLine struct {
	ProductID   kernel.UUID
	ProductName string
	BrandID     *kernel.UUID
	BrandName   string
	Size        string
	Quantity    int
	UnitPrice   kernel.Money
	Subtotal    kernel.Money
}

// Chargeable converts the line for the delivery calculator.
func (l ResolvedLine) Chargeable() ChargeableLine {
	return ChargeableLine{
		ProductID: l.ProductID,
		Size:      l.Size,
		Quantity:  l.Quantity,
		Subtotal:  l.Subtotal,
		BrandID:   l.BrandID,
		BrandName: l.BrandName,
	}
}

// ResolveLines joins requested lines with the products and brands that were found.
//
// Business rules:
//   - A product that is not found leaves the line unresolved: no brand, client price
//   - A found product fixes the owning brand and the unit price
//   - A found product with sizes must have the requested size
//   - A found product whose brand is missing keeps the brand id with an empty name
//
// All line errors are returned together.
func ResolveLines(
	requested []RequestedLine,
	products []*catalog.Product,
	brands []*catalog.Brand,
) ([]ResolvedLine, error) {
	productsByID := make(map[kernel.UUID]*catalog.Product, len(products))
	for _, p := range products {
		productsByID[p.ID()] = p
	}
	brandsByID := make(map[kernel.UUID]*catalog.Brand, len(brands))
	for _, b := range brands {
		brandsByID[b.ID()] = b
	}

	resolved := make([]ResolvedLine, 0, len(requested))
	var errList []error
	for i, req := range requested {
		if req.Quantity <= 0 {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
				"quantity is invalid",
				fmt.Errorf("line %d: %d is not greater than 0", i, req.Quantity),
			))
			continue
		}

		line := ResolvedLine{
			ProductID: req.ProductID,
			Size:      req.Size,
			Quantity:  req.Quantity,
			UnitPrice: req.UnitPrice,
		}

		if product, ok := productsByID[req.ProductID]; ok {
			if product.HasSizes() {
				if _, found := product.FindSize(req.Size); !found {
					errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
						"size is invalid",
						fmt.Errorf("line %d: product %s has no size %q", i, product.ID(), req.Size),
					))
					continue
				}
			}

			brandID := product.BrandID()
			line.BrandID = &brandID
			line.ProductName = product.Name()
			line.UnitPrice = product.UnitPrice()
			if brand, found := brandsByID[brandID]; found {
				line.BrandName = brand.Name()
			}
		}

		line.Subtotal = line.UnitPrice.Times(line.Quantity)
		resolved = append(resolved, line)
	}

	if err := errors.Join(errList...); err != nil {
		return nil, err
	}
	return resolved, nil
}

// BrandIDsOf returns the distinct brand ids of the products, in order.
func BrandIDsOf(products []*catalog.Product) []kernel.UUID {
	seen := make(map[kernel.UUID]struct{}, len(products))
	out := make([]kernel.UUID, 0, len(products))
	for _, p := range products {
		if _, ok := seen[p.BrandID()]; ok {
			continue
		}
		seen[p.BrandID()] = struct{}{}
		out = append(out, p.BrandID())
	}
	return out
}
