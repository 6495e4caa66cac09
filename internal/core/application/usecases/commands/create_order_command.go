package commands

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/services"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrOrderLinesAreRequired = errs.NewValueIsRequiredError("lines")
)

// CreateOrderCommand represents a checkout: the cart lines, who buys, where to ship
// and the total the client expects to pay.
//
// Example:
//
//	customer, _ := order.NewCustomer("Rahim", "rahim@example.com", "+8801700000000")
//	destination, _ := kernel.NewDestination("Dhaka", "House 1, Road 2")
//	payment, _ := order.NewPayment("", "cod", "")
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), customer, destination, lines, payment, declared)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	customer      order.Customer
	destination   kernel.Destination
	lines         []services.RequestedLine
	payment       order.Payment
	declaredTotal kernel.Money

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new order.
// Validates the identifier, the value objects and that there is at least one line.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	customer order.Customer,
	destination kernel.Destination,
	lines []services.RequestedLine,
	payment order.Payment,
	declaredTotal kernel.Money,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		declaredTotal: declaredTotal,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCustomer(customer),
		cmd.setDestination(destination),
		cmd.setLines(lines),
		cmd.setPayment(payment),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateOrderCommand) Customer() order.Customer {
	return c.customer
}

func (c CreateOrderCommand) Destination() kernel.Destination {
	return c.destination
}

// Lines returns a copy of the requested lines.
func (c CreateOrderCommand) Lines() []services.RequestedLine {
	out := make([]services.RequestedLine, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c CreateOrderCommand) Payment() order.Payment {
	return c.payment
}

func (c CreateOrderCommand) DeclaredTotal() kernel.Money {
	return c.declaredTotal
}

// ProductIDs returns the distinct product ids of the requested lines.
func (c CreateOrderCommand) ProductIDs() []kernel.UUID {
	seen := make(map[kernel.UUID]struct{}, len(c.lines))
	out := make([]kernel.UUID, 0, len(c.lines))
	for _, line := range c.lines {
		if _, ok := seen[line.ProductID]; ok {
			continue
		}
		seen[line.ProductID] = struct{}{}
		out = append(out, line.ProductID)
	}
	return out
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCustomer(customer order.Customer) error {
	if err := customer.Validate(); err != nil {
		return err
	}

	c.customer = customer
	return nil
}

func (c *CreateOrderCommand) setDestination(destination kernel.Destination) error {
	if err := destination.Validate(); err != nil {
		return err
	}

	c.destination = destination
	return nil
}

func (c *CreateOrderCommand) setLines(lines []services.RequestedLine) error {
	if len(lines) == 0 {
		return ErrOrderLinesAreRequired
	}
	for _, line := range lines {
		if err := line.ProductID.Validate(); err != nil {
			return err
		}
	}

	c.lines = make([]services.RequestedLine, len(lines))
	copy(c.lines, lines)
	return nil
}

func (c *CreateOrderCommand) setPayment(payment order.Payment) error {
	if err := payment.Validate(); err != nil {
		return err
	}

	c.payment = payment
	return nil
}
