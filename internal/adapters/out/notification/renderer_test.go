package notification_test

import (
	"testing"

	"storefront/internal/adapters/out/notification"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshot() order.Snapshot {
	return order.Snapshot{
		OrderID:        "0b7c5a5e-0000-4000-8000-000000000001",
		CustomerName:   "Rahim",
		CustomerEmail:  "rahim@example.com",
		City:           "Chittagong",
		Address:        "House 1, Road 2",
		PaymentMethod:  "cod",
		PaymentStatus:  "unpaid",
		OverallStatus:  "pending",
		Subtotal:       decimal.NewFromInt(800),
		DeliveryCharge: decimal.NewFromInt(240),
		GrandTotal:     decimal.NewFromInt(1040),
		Lines: []order.LineSnapshot{
			{ProductName: "Aarong tee", BrandID: "brand-a", BrandName: "Aarong", Size: "M", Quantity: 1,
				UnitPrice: decimal.NewFromInt(500), Subtotal: decimal.NewFromInt(500)},
			{ProductName: "Yellow <cap>", BrandID: "brand-b", BrandName: "Yellow", Quantity: 1,
				UnitPrice: decimal.NewFromInt(300), Subtotal: decimal.NewFromInt(300)},
		},
		Groups: []order.GroupSnapshot{
			{BrandID: "brand-a", BrandName: "Aarong", Subtotal: decimal.NewFromInt(500),
				DeliveryCharge: decimal.NewFromInt(120), Total: decimal.NewFromInt(620)},
			{BrandID: "brand-b", BrandName: "Yellow", Subtotal: decimal.NewFromInt(300),
				DeliveryCharge: decimal.NewFromInt(120), Total: decimal.NewFromInt(420)},
		},
	}
}

func newRenderer(t *testing.T) *notification.TemplateRenderer {
	t.Helper()
	r, err := notification.NewTemplateRenderer("Storefront")
	require.NoError(t, err)
	return r
}

func TestTemplateRenderer_CustomerOrderPlaced(t *testing.T) {
	msg, err := newRenderer(t).Render(ports.Notification{
		Kind:     ports.CustomerOrderPlaced,
		To:       "rahim@example.com",
		Snapshot: snapshot(),
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"rahim@example.com"}, msg.To)
	assert.Equal(t, "Storefront: order 0b7c5a5e-0000-4000-8000-000000000001 received", msg.Subject)
	assert.Contains(t, msg.Text, "Total: 1040.00")
	assert.Contains(t, msg.Text, "Aarong tee (M) x1: 500.00")
	assert.Contains(t, msg.Text, "Yellow <cap> x1: 300.00")
	assert.Contains(t, msg.HTML, "Yellow &lt;cap&gt;")
	assert.NotContains(t, msg.HTML, "<cap>")
}

func TestTemplateRenderer_BrandOrderPlaced_OnlyBrandLines(t *testing.T) {
	msg, err := newRenderer(t).Render(ports.Notification{
		Kind:      ports.BrandOrderPlaced,
		To:        "aarong@brands.example.com",
		Snapshot:  snapshot(),
		BrandID:   "brand-a",
		BrandName: "Aarong",
	})

	require.NoError(t, err)
	assert.Equal(t, "New order 0b7c5a5e-0000-4000-8000-000000000001 for Aarong", msg.Subject)
	assert.Contains(t, msg.Text, "Aarong tee")
	assert.NotContains(t, msg.Text, "Yellow")
	assert.Contains(t, msg.Text, "Chittagong")
}

func TestTemplateRenderer_AdminOrderPlaced(t *testing.T) {
	msg, err := newRenderer(t).Render(ports.Notification{
		Kind:     ports.AdminOrderPlaced,
		To:       "admin@example.com",
		Snapshot: snapshot(),
	})

	require.NoError(t, err)
	assert.Contains(t, msg.Text, "Aarong: 500.00 + 120.00 delivery = 620.00")
	assert.Contains(t, msg.Text, "Yellow: 300.00 + 120.00 delivery = 420.00")
}

func TestTemplateRenderer_CustomerStatusChanged(t *testing.T) {
	msg, err := newRenderer(t).Render(ports.Notification{
		Kind:         ports.CustomerStatusChanged,
		To:           "rahim@example.com",
		Snapshot:     snapshot(),
		BrandName:    "Aarong",
		TargetStatus: "shipped",
	})

	require.NoError(t, err)
	assert.Equal(t, "Storefront: your Aarong items are shipped", msg.Subject)
	assert.Contains(t, msg.HTML, "<b>Shipped</b>")
}

func TestTemplateRenderer_Errors(t *testing.T) {
	r := newRenderer(t)

	_, err := r.Render(ports.Notification{Kind: ports.CustomerOrderPlaced, Snapshot: snapshot()})
	require.Error(t, err)

	_, err = r.Render(ports.Notification{Kind: "sms", To: "rahim@example.com", Snapshot: snapshot()})
	require.ErrorContains(t, err, "unknown notification kind")
}
