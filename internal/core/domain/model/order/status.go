package order

import (
	"fmt"
	"strings"

	"storefront/internal/pkg/errs"
)

// Status represents the fulfilment state of a single order line.
//
// State transitions (monotonic policy):
//
//	Pending ──> Confirmed ──> Shipped ──> Delivered
//	   │            │            │
//	   └────────────┴────────────┴──────> Cancelled
//
// Delivered and Cancelled are terminal. The freeform policy keeps the older
// behaviour where a brand may set any enumerated value directly.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the status of every line when the order is placed.
	Pending

	// Confirmed means the brand accepted the line; stock is taken from the ledger.
	Confirmed

	// Shipped means the brand handed the line over for delivery.
	Shipped

	// Delivered means the customer received the line; the sale is recorded.
	Delivered

	// Cancelled means the line will not be fulfilled.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		Confirmed: "confirmed",
		Shipped:   "shipped",
		Delivered: "delivered",
		Cancelled: "cancelled",
	}
}

// ParseStatus converts the wire/storage form ("pending", "Confirmed", ...) into a Status.
// Matching is case-insensitive; Unknown is never returned without an error.
func ParseStatus(s string) (Status, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for status, str := range getStatusStrings() {
		if status != Unknown && str == needle {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%q is not one of pending, confirmed, shipped, delivered, cancelled", s),
	)
}

// Validate checks if the Status value is one of the five enumerated values.
func (s Status) Validate() error {
	if s < Pending || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the lower-case name used on the wire and in storage.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no further transition is allowed under the monotonic policy.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// next returns the single forward step from s.
func (s Status) next() (Status, bool) {
	switch s { //nolint:exhaustive // terminal and unknown statuses have no successor
	case Pending:
		return Confirmed, true
	case Confirmed:
		return Shipped, true
	case Shipped:
		return Delivered, true
	default:
		return Unknown, false
	}
}

// rank orders the fulfilment progress; Cancelled sits outside the chain.
func (s Status) rank() int {
	switch s { //nolint:exhaustive // Unknown and Cancelled share the fallback rank
	case Pending:
		return 1
	case Confirmed:
		return 2
	case Shipped:
		return 3
	case Delivered:
		return 4
	default:
		return 0
	}
}

// TransitionPolicy decides which line status changes a brand may request.
type TransitionPolicy int

const (
	// MonotonicTransitions allows only the next forward step or cancellation from a
	// non-terminal status. Re-issuing the current status is accepted as a no-op.
	//
	// Cancelled is reachable from pending, confirmed and shipped only. Delivered is
	// terminal, so delivered -> cancelled is rejected; a delivered line has already been
	// recorded as sold and cancelling it would leave the sales counters overstated.
	// FreeformTransitions accepts that move.
	MonotonicTransitions TransitionPolicy = iota

	// FreeformTransitions allows any enumerated status to be set from any status.
	FreeformTransitions
)

// ParseTransitionPolicy reads "monotonic" or "freeform" (case-insensitive).
func ParseTransitionPolicy(s string) (TransitionPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "monotonic":
		return MonotonicTransitions, nil
	case "freeform":
		return FreeformTransitions, nil
	default:
		return MonotonicTransitions, errs.NewValueIsInvalidErrorWithCause(
			"transition policy is invalid",
			fmt.Errorf("%q is not monotonic or freeform", s),
		)
	}
}

func (p TransitionPolicy) String() string {
	if p == FreeformTransitions {
		return "freeform"
	}
	return "monotonic"
}

// Check validates a change from one status to another.
//
// Returns:
//   - changed: false when from == to (an idempotent re-issue)
//   - error: ValueIsInvalidError when the target is not enumerated or the policy
//     forbids the move
//
// Example:
//
//	changed, err := order.MonotonicTransitions.Check(order.Pending, order.Confirmed) // true, nil
//	changed, err = order.MonotonicTransitions.Check(order.Shipped, order.Pending)    // false, error
//	changed, err = order.MonotonicTransitions.Check(order.Delivered, order.Cancelled) // false, error
func (p TransitionPolicy) Check(from, to Status) (bool, error) {
	if err := to.Validate(); err != nil {
		return false, err
	}
	if from == to {
		return false, nil
	}
	if p == FreeformTransitions {
		return true, nil
	}

	if from.IsTerminal() {
		return false, errs.NewValueIsInvalidErrorWithCause(
			"status transition is invalid",
			fmt.Errorf("%s is terminal", from),
		)
	}
	if to == Cancelled {
		return true, nil
	}
	if next, ok := from.next(); ok && next == to {
		return true, nil
	}

	return false, errs.NewValueIsInvalidErrorWithCause(
		"status transition is invalid",
		fmt.Errorf("cannot move from %s to %s", from, to),
	)
}
