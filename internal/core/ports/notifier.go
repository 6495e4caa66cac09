package ports

import (
	"context"

	"storefront/internal/core/domain/model/order"
)

// Message is a rendered email.
type Message struct {
	To      []string
	Subject string
	Text    string
	HTML    string
}

// Notifier delivers rendered messages. Send reports success; it never returns an
// error so that callers cannot let a notification failure abort order processing.
type Notifier interface {
	Send(ctx context.Context, msg Message) bool
}

// NotificationKind identifies which message is rendered for an event.
type NotificationKind string

const (
	CustomerOrderPlaced   NotificationKind = "customer_order_placed"
	AdminOrderPlaced      NotificationKind = "admin_order_placed"
	BrandOrderPlaced      NotificationKind = "brand_order_placed"
	CustomerStatusChanged NotificationKind = "customer_status_changed"
)

// Notification is an intent to tell one recipient about an order event.
// For BrandOrderPlaced, BrandID selects the brand's lines from the snapshot.
type Notification struct {
	Kind         NotificationKind
	To           string
	Snapshot     order.Snapshot
	BrandID      string
	BrandName    string
	TargetStatus string
}

// NotificationRenderer turns an intent into subject, text and HTML bodies.
type NotificationRenderer interface {
	Render(n Notification) (Message, error)
}
