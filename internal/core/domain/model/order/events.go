package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EventType names a domain event of the order aggregate.
type EventType string

const (
	// PlacedEventType is recorded once when an order is created.
	PlacedEventType EventType = "order.placed"
	// LineStatusChangedEventType is recorded when a brand moves its lines to a status
	// other than pending.
	LineStatusChangedEventType EventType = "order.line_status_changed"
)

// Event is a fact about an order, stored in the outbox in the same transaction as the
// order and turned into notifications later. It carries a snapshot so the message shows
// the order as it was when the event happened.
type Event struct {
	ID           string    `json:"id"`
	Type         EventType `json:"type"`
	OrderID      string    `json:"order_id"`
	OccurredAt   time.Time `json:"occurred_at"`
	BrandID      string    `json:"brand_id,omitempty"`
	BrandName    string    `json:"brand_name,omitempty"`
	TargetStatus string    `json:"target_status,omitempty"`
	Snapshot     Snapshot  `json:"snapshot"`
}

// Snapshot is a flat, serializable view of an order.
type Snapshot struct {
	OrderID          string          `json:"order_id"`
	CustomerName     string          `json:"customer_name"`
	CustomerEmail    string          `json:"customer_email"`
	CustomerPhone    string          `json:"customer_phone,omitempty"`
	City             string          `json:"city"`
	Address          string          `json:"address"`
	PaymentMethod    string          `json:"payment_method"`
	PaymentReference string          `json:"payment_reference,omitempty"`
	PaymentStatus    string          `json:"payment_status"`
	OverallStatus    string          `json:"overall_status"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	DeliveryCharge   decimal.Decimal `json:"delivery_charge"`
	GrandTotal       decimal.Decimal `json:"grand_total"`
	Lines            []LineSnapshot  `json:"lines"`
	Groups           []GroupSnapshot `json:"groups"`
	PlacedAt         time.Time       `json:"placed_at"`
}

// LineSnapshot is one line inside a Snapshot. BrandID is empty for unresolved products.
type LineSnapshot struct {
	LineID      string          `json:"line_id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name,omitempty"`
	BrandID     string          `json:"brand_id,omitempty"`
	BrandName   string          `json:"brand_name,omitempty"`
	Size        string          `json:"size,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	Status      string          `json:"status"`
}

// GroupSnapshot is one brand group inside a Snapshot.
type GroupSnapshot struct {
	BrandID        string          `json:"brand_id,omitempty"`
	BrandName      string          `json:"brand_name"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	DeliveryCharge decimal.Decimal `json:"delivery_charge"`
	Total          decimal.Decimal `json:"total"`
}

// LinesOf returns the snapshot lines owned by brandID.
func (s Snapshot) LinesOf(brandID string) []LineSnapshot {
	var out []LineSnapshot
	for _, l := range s.Lines {
		if l.BrandID == brandID {
			out = append(out, l)
		}
	}
	return out
}

func newEvent(eventType EventType, o *Order) Event {
	return Event{
		ID:         uuid.New().String(),
		Type:       eventType,
		OrderID:    o.id.String(),
		OccurredAt: time.Now().UTC(),
		Snapshot:   o.Snapshot(),
	}
}
