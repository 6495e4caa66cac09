package order

import "storefront/internal/core/domain/model/kernel"

// LedgerEffectKind is the inventory side effect a transition asks for.
type LedgerEffectKind int

const (
	// DecrementStock takes the line quantity out of remaining stock.
	DecrementStock LedgerEffectKind = iota + 1
	// RecordSale adds the line quantity to the sold counters.
	RecordSale
)

func (k LedgerEffectKind) String() string {
	switch k {
	case DecrementStock:
		return "decrement"
	case RecordSale:
		return "sale"
	default:
		return "unknown"
	}
}

// LedgerEffect is one inventory mutation owed by a line after a transition.
type LedgerEffect struct {
	Kind      LedgerEffectKind
	LineID    kernel.UUID
	ProductID kernel.UUID
	Size      string
	Quantity  int
}

func newLedgerEffect(kind LedgerEffectKind, line *Line) LedgerEffect {
	return LedgerEffect{
		Kind:      kind,
		LineID:    line.id,
		ProductID: line.productID,
		Size:      line.size,
		Quantity:  line.quantity,
	}
}

// TransitionResult is the outcome of Order.ApplyBrandTransition.
type TransitionResult struct {
	// Lines are the brand's lines after the transition.
	Lines []*Line
	// Effects are the ledger mutations owed, at most one per line and kind.
	Effects []LedgerEffect
	// Changed is false when every line already had the target status.
	Changed bool
}
