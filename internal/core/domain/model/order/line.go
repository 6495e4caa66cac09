package order

import (
	"errors"
	"fmt"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

// ErrLineIsNotConstructed is returned when a Line was not created via NewLine or RestoreLine.
var ErrLineIsNotConstructed = errors.New("Line must be created via NewLine constructor")

// Line is one product/size/quantity entry of an order, owned by exactly one brand.
//
// The brand id and name are snapshots taken when the order is placed; they never
// follow later catalog changes. A line whose product could not be resolved has no
// brand and belongs to the "unknown" delivery group; no brand can transition it.
type Line struct {
	id          kernel.UUID
	productID   kernel.UUID
	productName string
	brandID     *kernel.UUID
	brandName   string
	size        string
	quantity    int
	unitPrice   kernel.Money
	subtotal    kernel.Money
	status      Status

	isConstructed bool
}

// NewLine creates a pending line. The subtotal is unitPrice × quantity.
func NewLine(
	id kernel.UUID,
	productID kernel.UUID,
	productName string,
	brandID *kernel.UUID,
	brandName string,
	size string,
	quantity int,
	unitPrice kernel.Money,
) (*Line, error) {
	return RestoreLine(id, productID, productName, brandID, brandName, size, quantity, unitPrice,
		unitPrice.Times(quantity), Pending)
}

// RestoreLine reconstructs a line from storage.
func RestoreLine(
	id kernel.UUID,
	productID kernel.UUID,
	productName string,
	brandID *kernel.UUID,
	brandName string,
	size string,
	quantity int,
	unitPrice kernel.Money,
	subtotal kernel.Money,
	status Status,
) (*Line, error) {
	line := &Line{
		productName:   productName,
		brandName:     brandName,
		size:          strings.TrimSpace(size),
		unitPrice:     unitPrice,
		subtotal:      subtotal,
		isConstructed: true,
	}

	if err := errors.Join(
		line.setID(id),
		line.setProductID(productID),
		line.setBrandID(brandID),
		line.setQuantity(quantity),
		line.setStatus(status),
	); err != nil {
		return nil, err
	}

	return line, nil
}

func (l *Line) ID() kernel.UUID {
	return l.id
}

func (l *Line) ProductID() kernel.UUID {
	return l.productID
}

func (l *Line) ProductName() string {
	return l.productName
}

// BrandID returns the owning brand, or nil when the product was not resolved.
func (l *Line) BrandID() *kernel.UUID {
	if l.brandID == nil {
		return nil
	}
	id := *l.brandID
	return &id
}

func (l *Line) BrandName() string {
	return l.brandName
}

func (l *Line) Size() string {
	return l.size
}

func (l *Line) Quantity() int {
	return l.quantity
}

func (l *Line) UnitPrice() kernel.Money {
	return l.unitPrice
}

func (l *Line) Subtotal() kernel.Money {
	return l.subtotal
}

func (l *Line) Status() Status {
	return l.status
}

// IsOwnedBy reports whether brandID owns this line.
func (l *Line) IsOwnedBy(brandID kernel.UUID) bool {
	return l.brandID != nil && l.brandID.IsEqual(brandID)
}

func (l *Line) Validate() error {
	if l == nil || !l.isConstructed {
		return ErrLineIsNotConstructed
	}
	return nil
}

func (l *Line) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	l.id = id
	return nil
}

func (l *Line) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("productID", err)
	}
	l.productID = productID
	return nil
}

func (l *Line) setBrandID(brandID *kernel.UUID) error {
	if brandID == nil {
		l.brandID = nil
		return nil
	}
	if err := brandID.Validate(); err != nil {
		return err
	}
	id := *brandID
	l.brandID = &id
	return nil
}

func (l *Line) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}
	l.quantity = quantity
	return nil
}

func (l *Line) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	l.status = status
	return nil
}
