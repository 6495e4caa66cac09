package http

import (
	"encoding/json"
	"time"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/services"
	"storefront/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

type CustomerRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone"`
}

type DestinationRequest struct {
	City    string `json:"city" validate:"required"`
	Address string `json:"address" validate:"required"`
}

type PaymentRequest struct {
	Method    string `json:"method" validate:"required"`
	Reference string `json:"reference"`
	Status    string `json:"status"`
}

type LineRequest struct {
	ProductID string           `json:"productId" validate:"required,uuid"`
	Size      string           `json:"size"`
	Quantity  int              `json:"quantity" validate:"required,gt=0"`
	UnitPrice *decimal.Decimal `json:"unitPrice"`
}

type CreateOrderRequest struct {
	Customer      CustomerRequest    `json:"customer" validate:"required"`
	Destination   DestinationRequest `json:"destination" validate:"required"`
	Lines         []LineRequest      `json:"lines" validate:"required,min=1,dive"`
	Payment       PaymentRequest     `json:"payment" validate:"required"`
	DeclaredTotal decimal.Decimal    `json:"declaredTotal"`
}

type QuoteRequest struct {
	City  string        `json:"city" validate:"required"`
	Lines []LineRequest `json:"lines" validate:"required,min=1,dive"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type SizeRequest struct {
	Size  string `json:"size" validate:"required"`
	Stock int    `json:"stock" validate:"gte=0"`
}

type ReplaceSizesRequest struct {
	Sizes []SizeRequest `json:"sizes" validate:"dive"`
}

func requestedLines(lines []LineRequest) ([]services.RequestedLine, error) {
	out := make([]services.RequestedLine, 0, len(lines))
	for _, l := range lines {
		productID, err := kernel.UUIDFromString(l.ProductID)
		if err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause("productId", err)
		}

		unitPrice := kernel.ZeroMoney()
		if l.UnitPrice != nil {
			if unitPrice, err = kernel.NewMoney(*l.UnitPrice); err != nil {
				return nil, err
			}
		}

		out = append(out, services.RequestedLine{
			ProductID: productID,
			Size:      l.Size,
			Quantity:  l.Quantity,
			UnitPrice: unitPrice,
		})
	}
	return out, nil
}

func sizeStocks(sizes []SizeRequest) []commands.SizeStock {
	out := make([]commands.SizeStock, 0, len(sizes))
	for _, s := range sizes {
		out = append(out, commands.SizeStock{Size: s.Size, Stock: s.Stock})
	}
	return out
}

// amount renders money as a JSON number with two decimals.
func amount(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(2))
}

type OrderResponse struct {
	ID             string                `json:"id"`
	Customer       CustomerResponse      `json:"customer"`
	Destination    DestinationResponse   `json:"destination"`
	Payment        PaymentResponse       `json:"payment"`
	DeclaredTotal  json.Number           `json:"declaredTotal"`
	OverallStatus  string                `json:"overallStatus"`
	ProgressStatus string                `json:"progressStatus"`
	BrandStatuses  []BrandStatusResponse `json:"brandStatuses"`
	Lines          []LineResponse        `json:"lines"`
	Breakdown      BreakdownResponse     `json:"breakdown"`
	Version        int                   `json:"version"`
	CreatedAt      time.Time             `json:"createdAt"`
	UpdatedAt      time.Time             `json:"updatedAt"`
}

type CustomerResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

type DestinationResponse struct {
	City    string `json:"city"`
	Address string `json:"address"`
}

type PaymentResponse struct {
	Method    string `json:"method"`
	Reference string `json:"reference,omitempty"`
	Status    string `json:"status"`
}

type BrandStatusResponse struct {
	BrandID   string `json:"brandId"`
	BrandName string `json:"brandName"`
	Status    string `json:"status"`
}

type LineResponse struct {
	ID          string      `json:"id"`
	ProductID   string      `json:"productId"`
	ProductName string      `json:"productName,omitempty"`
	BrandID     string      `json:"brandId,omitempty"`
	BrandName   string      `json:"brandName,omitempty"`
	Size        string      `json:"size,omitempty"`
	Quantity    int         `json:"quantity"`
	UnitPrice   json.Number `json:"unitPrice"`
	Subtotal    json.Number `json:"subtotal"`
	Status      string      `json:"status"`
}

type BreakdownResponse struct {
	Groups         []GroupResponse `json:"groups"`
	Subtotal       json.Number     `json:"subtotal"`
	DeliveryCharge json.Number     `json:"deliveryCharge"`
	GrandTotal     json.Number     `json:"grandTotal"`
	BrandCount     int             `json:"brandCount"`
}

type GroupResponse struct {
	BrandID        string      `json:"brandId,omitempty"`
	BrandName      string      `json:"brandName"`
	Subtotal       json.Number `json:"subtotal"`
	DeliveryCharge json.Number `json:"deliveryCharge"`
	Total          json.Number `json:"total"`
	LineCount      int         `json:"lineCount"`
}

type SizeResponse struct {
	Size           string `json:"size"`
	RemainingStock int    `json:"remainingStock"`
	CumulativeSold int    `json:"cumulativeSold"`
	Available      bool   `json:"available"`
}

type ProductStockResponse struct {
	ProductID    string         `json:"productId"`
	TotalStock   int            `json:"totalStock"`
	LifetimeSold int            `json:"lifetimeSold"`
	Sizes        []SizeResponse `json:"sizes"`
}

type AvailabilityResponse struct {
	ProductID string `json:"productId"`
	Size      string `json:"size,omitempty"`
	Remaining int    `json:"remaining"`
	Requested int    `json:"requested"`
	Available bool   `json:"available"`
}

func orderResponse(v queries.OrderView) OrderResponse {
	resp := OrderResponse{
		ID:             v.ID,
		Customer:       CustomerResponse{Name: v.CustomerName, Email: v.CustomerEmail, Phone: v.CustomerPhone},
		Destination:    DestinationResponse{City: v.City, Address: v.Address},
		Payment:        PaymentResponse{Method: v.PaymentMethod, Reference: v.PaymentReference, Status: v.PaymentStatus},
		DeclaredTotal:  amount(v.DeclaredTotal),
		OverallStatus:  v.OverallStatus,
		ProgressStatus: v.ProgressStatus,
		BrandStatuses:  make([]BrandStatusResponse, 0, len(v.BrandStatuses)),
		Lines:          lineResponses(v.Lines),
		Breakdown:      breakdownResponse(v.Breakdown),
		Version:        v.Version,
		CreatedAt:      v.CreatedAt,
		UpdatedAt:      v.UpdatedAt,
	}
	for _, bs := range v.BrandStatuses {
		resp.BrandStatuses = append(resp.BrandStatuses, BrandStatusResponse(bs))
	}
	return resp
}

func orderResponses(views []queries.OrderView) []OrderResponse {
	out := make([]OrderResponse, 0, len(views))
	for _, v := range views {
		out = append(out, orderResponse(v))
	}
	return out
}

func lineResponses(views []queries.LineView) []LineResponse {
	out := make([]LineResponse, 0, len(views))
	for _, l := range views {
		out = append(out, LineResponse{
			ID:          l.ID,
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			BrandID:     l.BrandID,
			BrandName:   l.BrandName,
			Size:        l.Size,
			Quantity:    l.Quantity,
			UnitPrice:   amount(l.UnitPrice),
			Subtotal:    amount(l.Subtotal),
			Status:      l.Status,
		})
	}
	return out
}

func breakdownResponse(v queries.BreakdownView) BreakdownResponse {
	resp := BreakdownResponse{
		Groups:         make([]GroupResponse, 0, len(v.Groups)),
		Subtotal:       amount(v.Subtotal),
		DeliveryCharge: amount(v.DeliveryCharge),
		GrandTotal:     amount(v.GrandTotal),
		BrandCount:     v.BrandCount,
	}
	for _, g := range v.Groups {
		resp.Groups = append(resp.Groups, GroupResponse{
			BrandID:        g.BrandID,
			BrandName:      g.BrandName,
			Subtotal:       amount(g.Subtotal),
			DeliveryCharge: amount(g.DeliveryCharge),
			Total:          amount(g.Total),
			LineCount:      g.LineCount,
		})
	}
	return resp
}

func productStockResponse(p *catalog.Product) ProductStockResponse {
	resp := ProductStockResponse{
		ProductID:    p.ID().String(),
		TotalStock:   p.TotalStock(),
		LifetimeSold: p.LifetimeSold(),
		Sizes:        make([]SizeResponse, 0, len(p.Sizes())),
	}
	for _, b := range p.Sizes() {
		resp.Sizes = append(resp.Sizes, SizeResponse{
			Size:           b.Size(),
			RemainingStock: b.Stock(),
			CumulativeSold: b.Sold(),
			Available:      b.Available(),
		})
	}
	return resp
}
