package queries

import (
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// OrderView is the read model of an order returned by the order queries.
type OrderView struct {
	ID               string
	CustomerName     string
	CustomerEmail    string
	CustomerPhone    string
	City             string
	Address          string
	PaymentMethod    string
	PaymentReference string
	PaymentStatus    string
	DeclaredTotal    decimal.Decimal
	OverallStatus    string
	ProgressStatus   string
	BrandStatuses    []BrandStatusView
	Lines            []LineView
	Breakdown        BreakdownView
	Version          int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// BrandStatusView is the status of one brand's lines.
type BrandStatusView struct {
	BrandID   string
	BrandName string
	Status    string
}

// LineView is one order line. BrandID is empty for unresolved products.
type LineView struct {
	ID          string
	ProductID   string
	ProductName string
	BrandID     string
	BrandName   string
	Size        string
	Quantity    int
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
	Status      string
}

// BreakdownView is the delivery breakdown of an order or a quote.
type BreakdownView struct {
	Groups         []GroupView
	Subtotal       decimal.Decimal
	DeliveryCharge decimal.Decimal
	GrandTotal     decimal.Decimal
	BrandCount     int
}

// GroupView is one brand group of a breakdown.
type GroupView struct {
	BrandID        string
	BrandName      string
	Subtotal       decimal.Decimal
	DeliveryCharge decimal.Decimal
	Total          decimal.Decimal
	LineCount      int
}

// NewOrderView maps o. When onlyBrand is set, only that brand's lines are included;
// totals and brand statuses stay those of the whole order.
func NewOrderView(o *order.Order, onlyBrand *kernel.UUID) OrderView {
	view := OrderView{
		ID:               o.ID().String(),
		CustomerName:     o.Customer().Name(),
		CustomerEmail:    o.Customer().Email(),
		CustomerPhone:    o.Customer().Phone(),
		City:             o.Destination().City(),
		Address:          o.Destination().Address(),
		PaymentMethod:    o.Payment().Method(),
		PaymentReference: o.Payment().Reference(),
		PaymentStatus:    o.Payment().Status(),
		DeclaredTotal:    o.DeclaredTotal().Decimal(),
		OverallStatus:    o.OverallStatus().String(),
		ProgressStatus:   o.ProgressStatus().String(),
		Breakdown:        NewBreakdownView(o.Breakdown()),
		Version:          o.Version(),
		CreatedAt:        o.CreatedAt(),
		UpdatedAt:        o.UpdatedAt(),
	}

	for _, bs := range o.BrandStatuses() {
		view.BrandStatuses = append(view.BrandStatuses, BrandStatusView{
			BrandID:   bs.BrandID.String(),
			BrandName: bs.BrandName,
			Status:    bs.Status.String(),
		})
	}

	lines := o.Lines()
	if onlyBrand != nil {
		lines = o.LinesOwnedBy(*onlyBrand)
	}
	view.Lines = NewLineViews(lines)

	return view
}

// NewLineViews maps order lines.
func NewLineViews(lines []*order.Line) []LineView {
	views := make([]LineView, 0, len(lines))
	for _, line := range lines {
		lv := LineView{
			ID:          line.ID().String(),
			ProductID:   line.ProductID().String(),
			ProductName: line.ProductName(),
			BrandName:   line.BrandName(),
			Size:        line.Size(),
			Quantity:    line.Quantity(),
			UnitPrice:   line.UnitPrice().Decimal(),
			Subtotal:    line.Subtotal().Decimal(),
			Status:      line.Status().String(),
		}
		if line.BrandID() != nil {
			lv.BrandID = line.BrandID().String()
		}
		views = append(views, lv)
	}
	return views
}

// NewBreakdownView maps a delivery breakdown.
func NewBreakdownView(b order.DeliveryBreakdown) BreakdownView {
	view := BreakdownView{
		Groups:         make([]GroupView, 0, len(b.Groups)),
		Subtotal:       b.Subtotal.Decimal(),
		DeliveryCharge: b.DeliveryCharge.Decimal(),
		GrandTotal:     b.GrandTotal.Decimal(),
		BrandCount:     b.BrandCount,
	}
	for _, g := range b.Groups {
		gv := GroupView{
			BrandName:      g.BrandName,
			Subtotal:       g.Subtotal.Decimal(),
			DeliveryCharge: g.DeliveryCharge.Decimal(),
			Total:          g.Total.Decimal(),
			LineCount:      len(g.Lines),
		}
		if g.BrandID != nil {
			gv.BrandID = g.BrandID.String()
		}
		view.Groups = append(view.Groups, gv)
	}
	return view
}
