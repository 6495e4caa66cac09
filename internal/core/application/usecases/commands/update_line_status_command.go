package commands

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/guard"
)

var ErrUpdateLineStatusCommandIsNotConstructed = errors.New(
	"UpdateLineStatusCommand must be created via NewUpdateLineStatusCommand constructor",
)

// UpdateLineStatusCommand asks to move every line a brand owns in an order to a status.
type UpdateLineStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	brandID kernel.UUID
	target  order.Status

	guard guard.ConstructorGuard
}

// NewUpdateLineStatusCommand validates both identifiers and that target is one of the
// enumerated statuses. Whether the move is allowed is decided later by the policy.
func NewUpdateLineStatusCommand(orderID, brandID kernel.UUID, target order.Status) (UpdateLineStatusCommand, error) {
	cmd := UpdateLineStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setBrandID(brandID),
		cmd.setTarget(target),
	); err != nil {
		return UpdateLineStatusCommand{}, err
	}

	return cmd, nil
}

func (c UpdateLineStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateLineStatusCommandIsNotConstructed)
}

func (c UpdateLineStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c UpdateLineStatusCommand) BrandID() kernel.UUID {
	return c.brandID
}

func (c UpdateLineStatusCommand) Target() order.Status {
	return c.target
}

func (c *UpdateLineStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *UpdateLineStatusCommand) setBrandID(brandID kernel.UUID) error {
	if err := brandID.Validate(); err != nil {
		return err
	}

	c.brandID = brandID
	return nil
}

func (c *UpdateLineStatusCommand) setTarget(target order.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	c.target = target
	return nil
}
