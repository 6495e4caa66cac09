package queries

import (
	"errors"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrCheckAvailabilityQueryIsNotConstructed = errors.New(
	"CheckAvailabilityQuery must be created via NewCheckAvailabilityQuery constructor",
)

// CheckAvailabilityQuery is the advisory cart check: does the bucket hold quantity
// units right now? Nothing is reserved; a later confirmation may still find less.
type CheckAvailabilityQuery struct {
	productID kernel.UUID
	size      string
	quantity  int
	guard     guard.ConstructorGuard
}

// NewCheckAvailabilityQuery requires a positive quantity. Size may be empty for
// products without size variants.
func NewCheckAvailabilityQuery(productID kernel.UUID, size string, quantity int) (CheckAvailabilityQuery, error) {
	if err := errors.Join(
		productID.Validate(),
		validateQuantity(quantity),
	); err != nil {
		return CheckAvailabilityQuery{}, err
	}

	return CheckAvailabilityQuery{
		productID: productID,
		size:      strings.TrimSpace(size),
		quantity:  quantity,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q CheckAvailabilityQuery) Validate() error {
	return q.guard.Validate(ErrCheckAvailabilityQueryIsNotConstructed)
}

func (q CheckAvailabilityQuery) ProductID() kernel.UUID { return q.productID }
func (q CheckAvailabilityQuery) Size() string           { return q.size }
func (q CheckAvailabilityQuery) Quantity() int          { return q.quantity }

// CheckAvailabilityQueryResponse reports the remaining stock for the requested bucket.
type CheckAvailabilityQueryResponse struct {
	ProductID string
	Size      string
	Remaining int
	Requested int
	Available bool
}

func validateQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded")
	}
	return nil
}
