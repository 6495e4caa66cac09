package order

import (
	"errors"
	"fmt"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrLinesAreRequired is returned when an order is placed without lines.
	ErrLinesAreRequired = errs.NewValueIsRequiredError("lines")
)

// Order is the aggregate root of a placed multi-brand order. It owns the lines, the
// delivery breakdown computed at checkout and the order-level status.
//
// Order follows these invariants:
//   - Must have a valid identifier, customer, destination and at least one line
//   - Every line starts pending; line brand snapshots never change
//   - The declared total equals the breakdown grand total at placement
//   - Only the brand owning a line may change its status, and always together with the
//     brand's other lines in the same order
//   - overallStatus holds the last status written by any brand (last-writer-wins);
//     BrandStatuses and ProgressStatus give the per-brand and least-advanced views
//   - version increases with every persisted change and guards concurrent writers
//
// Orders collect domain events (placement, status changes) that the unit of work writes
// to the notification outbox on commit.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// customer is the buyer contact
	customer Customer

	// destination is where the order ships to
	destination kernel.Destination

	// lines are the ordered order lines
	lines []*Line

	// payment is what the client reported about payment
	payment Payment

	// declaredTotal is the total the client computed and submitted
	declaredTotal kernel.Money

	// overallStatus is the last status any brand transitioned to
	overallStatus Status

	// breakdown is the delivery charge snapshot taken at checkout
	breakdown DeliveryBreakdown

	// version is the optimistic concurrency token of the stored row
	version int

	createdAt time.Time
	updatedAt time.Time

	// events are the domain events collected since the last commit
	events []Event

	// isConstructed ensures the order was created via NewOrder or RestoreOrder
	isConstructed bool
}

// NewOrder places an order. Every line must be pending and the declared total must match
// the breakdown's grand total. The order starts at version 1 with overall status pending
// and records a placed event.
//
// Parameters:
//   - id: unique identifier for the order
//   - customer: buyer contact
//   - destination: shipping destination
//   - lines: order lines (at least one, all pending)
//   - payment: reported payment details
//   - declaredTotal: the total the client expects to pay
//   - breakdown: delivery breakdown computed for exactly these lines
//
// Returns:
//   - *Order: the placed order
//   - error: aggregated validation errors
//
// Example:
//
//	breakdown, _ := calculator.Calculate(chargeable, destination.City())
//	o, err := order.NewOrder(kernel.NewUUID(), customer, destination, lines, payment, declared, breakdown)
//	if err != nil {
//	    return nil, err
//	}
func NewOrder(
	id kernel.UUID,
	customer Customer,
	destination kernel.Destination,
	lines []*Line,
	payment Payment,
	declaredTotal kernel.Money,
	breakdown DeliveryBreakdown,
) (*Order, error) {
	now := time.Now().UTC()
	o := &Order{
		payment:       payment,
		overallStatus: Pending,
		version:       1,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomer(customer),
		o.setDestination(destination),
		o.setLines(lines),
		o.setBreakdown(breakdown),
	); err != nil {
		return nil, err
	}

	for _, line := range o.lines {
		if line.status != Pending {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				"line status is invalid",
				fmt.Errorf("line %s is %s, new lines must be pending", line.id, line.status),
			)
		}
	}

	if !declaredTotal.IsEqual(breakdown.GrandTotal) {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"declaredTotal is invalid",
			fmt.Errorf("declared %s but the order totals %s", declaredTotal, breakdown.GrandTotal),
		)
	}
	o.declaredTotal = declaredTotal

	o.record(newEvent(PlacedEventType, o))
	return o, nil
}

// RestoreOrder reconstructs an Order aggregate from persistent storage without
// recording any events.
func RestoreOrder(
	id kernel.UUID,
	customer Customer,
	destination kernel.Destination,
	lines []*Line,
	payment Payment,
	declaredTotal kernel.Money,
	overallStatus Status,
	breakdown DeliveryBreakdown,
	version int,
	createdAt time.Time,
	updatedAt time.Time,
) (*Order, error) {
	o := &Order{
		payment:       payment,
		declaredTotal: declaredTotal,
		breakdown:     breakdown,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomer(customer),
		o.setDestination(destination),
		o.setLines(lines),
		o.setOverallStatus(overallStatus),
		o.setVersion(version),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Customer returns the buyer contact.
func (o *Order) Customer() Customer {
	return o.customer
}

// Destination returns the shipping destination.
func (o *Order) Destination() kernel.Destination {
	return o.destination
}

// Lines returns all lines in order. The slice is a copy.
func (o *Order) Lines() []*Line {
	out := make([]*Line, len(o.lines))
	copy(out, o.lines)
	return out
}

// LinesOwnedBy returns the lines owned by brandID, in order.
func (o *Order) LinesOwnedBy(brandID kernel.UUID) []*Line {
	var out []*Line
	for _, line := range o.lines {
		if line.IsOwnedBy(brandID) {
			out = append(out, line)
		}
	}
	return out
}

// HasBrand reports whether any line is owned by brandID.
func (o *Order) HasBrand(brandID kernel.UUID) bool {
	for _, line := range o.lines {
		if line.IsOwnedBy(brandID) {
			return true
		}
	}
	return false
}

// Payment returns the reported payment details.
func (o *Order) Payment() Payment {
	return o.payment
}

// DeclaredTotal returns the total submitted by the client.
func (o *Order) DeclaredTotal() kernel.Money {
	return o.declaredTotal
}

// OverallStatus returns the status last written by any brand.
func (o *Order) OverallStatus() Status {
	return o.overallStatus
}

// Breakdown returns the delivery breakdown snapshot.
func (o *Order) Breakdown() DeliveryBreakdown {
	return o.breakdown
}

// Version returns the optimistic concurrency token loaded with the order.
func (o *Order) Version() int {
	return o.version
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// BrandStatus is the fulfilment status of one brand's lines within an order.
type BrandStatus struct {
	BrandID   kernel.UUID
	BrandName string
	Status    Status
}

// BrandStatuses returns one entry per brand, in line order. When a brand's lines
// disagree (possible only with data written outside the engine) the least advanced
// status is reported.
func (o *Order) BrandStatuses() []BrandStatus {
	var out []BrandStatus
	index := make(map[kernel.UUID]int)
	for _, line := range o.lines {
		if line.brandID == nil {
			continue
		}
		i, seen := index[*line.brandID]
		if !seen {
			index[*line.brandID] = len(out)
			out = append(out, BrandStatus{BrandID: *line.brandID, BrandName: line.brandName, Status: line.status})
			continue
		}
		out[i].Status = lessAdvanced(out[i].Status, line.status)
	}
	return out
}

// ProgressStatus is the least advanced status across lines that are not cancelled.
// An order whose lines are all cancelled is cancelled.
func (o *Order) ProgressStatus() Status {
	progress := Unknown
	for _, line := range o.lines {
		if line.status == Cancelled {
			continue
		}
		if progress == Unknown {
			progress = line.status
			continue
		}
		progress = lessAdvanced(progress, line.status)
	}
	if progress == Unknown {
		return Cancelled
	}
	return progress
}

// ApplyBrandTransition moves every line owned by brandID to target.
//
// The status each line had before the call is the previous snapshot that gates the
// ledger: a line yields a DecrementStock effect only when target is confirmed and it was
// not confirmed before, and a RecordSale effect only when target is delivered and it was
// not delivered before. The caller must apply the returned effects in the same
// transaction that persists the order.
//
// Behaviour:
//   - no line owned by the brand: ObjectNotFoundError, nothing changes
//   - policy rejects the move for any owned line: ValueIsInvalidError, nothing changes
//   - all owned lines already at target: Changed is false, nothing changes
//   - otherwise all owned lines and overallStatus take target, version-guarded save
//     is required, and a status-changed event is recorded unless target is pending
//
// Lines of other brands are never touched.
func (o *Order) ApplyBrandTransition(
	brandID kernel.UUID,
	target Status,
	policy TransitionPolicy,
) (TransitionResult, error) {
	owned := o.LinesOwnedBy(brandID)
	if len(owned) == 0 {
		return TransitionResult{}, errs.NewObjectNotFoundErrorWithCause(
			"order lines",
			brandID,
			fmt.Errorf("order %s has no lines of brand %s", o.id, brandID),
		)
	}

	previous := make([]Status, len(owned))
	changed := false
	for i, line := range owned {
		previous[i] = line.status
		lineChanged, err := policy.Check(line.status, target)
		if err != nil {
			return TransitionResult{}, err
		}
		changed = changed || lineChanged
	}

	if !changed {
		return TransitionResult{Lines: owned}, nil
	}

	var effects []LedgerEffect
	for i, line := range owned {
		line.status = target

		if target == Confirmed && previous[i] != Confirmed {
			effects = append(effects, newLedgerEffect(DecrementStock, line))
		}
		if target == Delivered && previous[i] != Delivered {
			effects = append(effects, newLedgerEffect(RecordSale, line))
		}
	}

	o.overallStatus = target
	o.updatedAt = time.Now().UTC()

	if target != Pending {
		event := newEvent(LineStatusChangedEventType, o)
		event.BrandID = brandID.String()
		event.BrandName = owned[0].brandName
		event.TargetStatus = target.String()
		o.record(event)
	}

	return TransitionResult{Lines: owned, Effects: effects, Changed: true}, nil
}

// DomainEvents returns the events collected since the last ClearDomainEvents.
func (o *Order) DomainEvents() []Event {
	return o.events
}

// ClearDomainEvents drops collected events once they are stored.
func (o *Order) ClearDomainEvents() {
	o.events = nil
}

// Snapshot returns a flat copy of the order for events and notifications.
func (o *Order) Snapshot() Snapshot {
	s := Snapshot{
		OrderID:          o.id.String(),
		CustomerName:     o.customer.name,
		CustomerEmail:    o.customer.email,
		CustomerPhone:    o.customer.phone,
		City:             o.destination.City(),
		Address:          o.destination.Address(),
		PaymentMethod:    o.payment.method,
		PaymentReference: o.payment.reference,
		PaymentStatus:    o.payment.status,
		OverallStatus:    o.overallStatus.String(),
		Subtotal:         o.breakdown.Subtotal.Decimal(),
		DeliveryCharge:   o.breakdown.DeliveryCharge.Decimal(),
		GrandTotal:       o.breakdown.GrandTotal.Decimal(),
		Lines:            make([]LineSnapshot, 0, len(o.lines)),
		Groups:           make([]GroupSnapshot, 0, len(o.breakdown.Groups)),
		PlacedAt:         o.createdAt,
	}

	for _, line := range o.lines {
		ls := LineSnapshot{
			LineID:      line.id.String(),
			ProductID:   line.productID.String(),
			ProductName: line.productName,
			BrandName:   line.brandName,
			Size:        line.size,
			Quantity:    line.quantity,
			UnitPrice:   line.unitPrice.Decimal(),
			Subtotal:    line.subtotal.Decimal(),
			Status:      line.status.String(),
		}
		if line.brandID != nil {
			ls.BrandID = line.brandID.String()
		}
		s.Lines = append(s.Lines, ls)
	}

	for _, g := range o.breakdown.Groups {
		gs := GroupSnapshot{
			BrandName:      g.BrandName,
			Subtotal:       g.Subtotal.Decimal(),
			DeliveryCharge: g.DeliveryCharge.Decimal(),
			Total:          g.Total.Decimal(),
		}
		if g.BrandID != nil {
			gs.BrandID = g.BrandID.String()
		}
		s.Groups = append(s.Groups, gs)
	}

	return s
}

func (o *Order) record(event Event) {
	o.events = append(o.events, event)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomer(customer Customer) error {
	if err := customer.Validate(); err != nil {
		return err
	}
	o.customer = customer
	return nil
}

func (o *Order) setDestination(destination kernel.Destination) error {
	if err := destination.Validate(); err != nil {
		return err
	}
	o.destination = destination
	return nil
}

func (o *Order) setLines(lines []*Line) error {
	if len(lines) == 0 {
		return ErrLinesAreRequired
	}
	for _, line := range lines {
		if err := line.Validate(); err != nil {
			return err
		}
	}
	o.lines = make([]*Line, len(lines))
	copy(o.lines, lines)
	return nil
}

// setBreakdown checks that the breakdown was computed for these lines.
func (o *Order) setBreakdown(breakdown DeliveryBreakdown) error {
	subtotal := kernel.ZeroMoney()
	for _, line := range o.lines {
		subtotal = subtotal.Add(line.subtotal)
	}
	if !subtotal.IsEqual(breakdown.Subtotal) {
		return errs.NewValueIsInvalidErrorWithCause(
			"breakdown is invalid",
			fmt.Errorf("breakdown subtotal %s does not match lines subtotal %s", breakdown.Subtotal, subtotal),
		)
	}
	o.breakdown = breakdown
	return nil
}

func (o *Order) setOverallStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.overallStatus = status
	return nil
}

func (o *Order) setVersion(version int) error {
	if version <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"version is invalid",
			fmt.Errorf("%d is not greater than 0", version),
		)
	}
	o.version = version
	return nil
}

func lessAdvanced(a, b Status) Status {
	if b.rank() < a.rank() {
		return b
	}
	return a
}
