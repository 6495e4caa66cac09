package order

import "storefront/internal/core/domain/model/kernel"

// UnknownBrandName labels the delivery group of lines whose product could not be resolved.
const UnknownBrandName = "unknown"

// GroupLine is one member line of a BrandGroup.
type GroupLine struct {
	ProductID kernel.UUID
	Size      string
	Quantity  int
	Subtotal  kernel.Money
}

// BrandGroup is the set of lines sharing an owning brand. It is the unit of the flat
// delivery charge. BrandID is nil for the unknown group.
type BrandGroup struct {
	BrandID        *kernel.UUID
	BrandName      string
	Lines          []GroupLine
	Subtotal       kernel.Money
	DeliveryCharge kernel.Money
	Total          kernel.Money
}

// IsUnknown reports whether the group collects unresolved products.
func (g BrandGroup) IsUnknown() bool {
	return g.BrandID == nil
}

// DeliveryBreakdown is the computed charge summary stored with an order as a snapshot.
//
// BrandCount counts delivery groups, the unknown group included, so that
// DeliveryCharge is always BrandCount × the selected rate.
type DeliveryBreakdown struct {
	Groups         []BrandGroup
	Subtotal       kernel.Money
	DeliveryCharge kernel.Money
	GrandTotal     kernel.Money
	BrandCount     int
}
