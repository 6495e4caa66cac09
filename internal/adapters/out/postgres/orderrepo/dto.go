// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The delivery breakdown is a checkout snapshot and lives in a jsonb column.
type OrderDTO struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CustomerName     string          `gorm:"type:varchar(255);not null"`
	CustomerEmail    string          `gorm:"type:varchar(255);not null"`
	CustomerPhone    string          `gorm:"type:varchar(64)"`
	City             string          `gorm:"type:varchar(128);not null"`
	Address          string          `gorm:"type:text;not null"`
	PaymentReference string          `gorm:"type:varchar(255)"`
	PaymentMethod    string          `gorm:"type:varchar(64);not null"`
	PaymentStatus    string          `gorm:"type:varchar(64);not null"`
	DeclaredTotal    decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	OverallStatus    string          `gorm:"type:varchar(16);not null;index"`
	Breakdown        BreakdownDTO    `gorm:"type:jsonb;serializer:json;not null"`
	Version          int             `gorm:"type:int;not null"`
	CreatedAt        time.Time       `gorm:"not null;index;autoCreateTime:false"`
	UpdatedAt        time.Time       `gorm:"not null;autoUpdateTime:false"`
	Lines            []LineDTO       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// LineDTO is one order line. Product, brand and price are snapshots taken at checkout.
type LineDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position    int             `gorm:"type:int;not null"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName string          `gorm:"type:varchar(255)"`
	BrandID     *uuid.UUID      `gorm:"type:uuid;index"`
	BrandName   string          `gorm:"type:varchar(255)"`
	Size        string          `gorm:"type:varchar(32)"`
	Quantity    int             `gorm:"type:int;not null"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Subtotal    decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Status      string          `gorm:"type:varchar(16);not null"`
}

// TableName specifies the database table name for order lines.
func (LineDTO) TableName() string {
	return "order_lines"
}

// BreakdownDTO is the JSON form of order.DeliveryBreakdown.
type BreakdownDTO struct {
	Groups         []GroupDTO      `json:"groups"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	DeliveryCharge decimal.Decimal `json:"delivery_charge"`
	GrandTotal     decimal.Decimal `json:"grand_total"`
	BrandCount     int             `json:"brand_count"`
}

// GroupDTO is the JSON form of order.BrandGroup. BrandID is nil for the unknown group.
type GroupDTO struct {
	BrandID        *uuid.UUID      `json:"brand_id"`
	BrandName      string          `json:"brand_name"`
	Lines          []GroupLineDTO  `json:"lines"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	DeliveryCharge decimal.Decimal `json:"delivery_charge"`
	Total          decimal.Decimal `json:"total"`
}

// GroupLineDTO is the JSON form of order.GroupLine.
type GroupLineDTO struct {
	ProductID uuid.UUID       `json:"product_id"`
	Size      string          `json:"size,omitempty"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(o *order.Order) OrderDTO {
	orderID := o.ID().Bytes()

	lines := make([]LineDTO, 0, len(o.Lines()))
	for i, line := range o.Lines() {
		lines = append(lines, LineDTO{
			ID:          line.ID().Bytes(),
			OrderID:     orderID,
			Position:    i,
			ProductID:   line.ProductID().Bytes(),
			ProductName: line.ProductName(),
			BrandID:     rawUUID(line.BrandID()),
			BrandName:   line.BrandName(),
			Size:        line.Size(),
			Quantity:    line.Quantity(),
			UnitPrice:   line.UnitPrice().Decimal(),
			Subtotal:    line.Subtotal().Decimal(),
			Status:      line.Status().String(),
		})
	}

	return OrderDTO{
		ID:               orderID,
		CustomerName:     o.Customer().Name(),
		CustomerEmail:    o.Customer().Email(),
		CustomerPhone:    o.Customer().Phone(),
		City:             o.Destination().City(),
		Address:          o.Destination().Address(),
		PaymentReference: o.Payment().Reference(),
		PaymentMethod:    o.Payment().Method(),
		PaymentStatus:    o.Payment().Status(),
		DeclaredTotal:    o.DeclaredTotal().Decimal(),
		OverallStatus:    o.OverallStatus().String(),
		Breakdown:        breakdownFromDomain(o.Breakdown()),
		Version:          o.Version(),
		CreatedAt:        o.CreatedAt(),
		UpdatedAt:        o.UpdatedAt(),
		Lines:            lines,
	}
}

func breakdownFromDomain(b order.DeliveryBreakdown) BreakdownDTO {
	groups := make([]GroupDTO, 0, len(b.Groups))
	for _, g := range b.Groups {
		members := make([]GroupLineDTO, 0, len(g.Lines))
		for _, l := range g.Lines {
			members = append(members, GroupLineDTO{
				ProductID: l.ProductID.Bytes(),
				Size:      l.Size,
				Quantity:  l.Quantity,
				Subtotal:  l.Subtotal.Decimal(),
			})
		}
		groups = append(groups, GroupDTO{
			BrandID:        rawUUID(g.BrandID),
			BrandName:      g.BrandName,
			Lines:          members,
			Subtotal:       g.Subtotal.Decimal(),
			DeliveryCharge: g.DeliveryCharge.Decimal(),
			Total:          g.Total.Decimal(),
		})
	}

	return BreakdownDTO{
		Groups:         groups,
		Subtotal:       b.Subtotal.Decimal(),
		DeliveryCharge: b.DeliveryCharge.Decimal(),
		GrandTotal:     b.GrandTotal.Decimal(),
		BrandCount:     b.BrandCount,
	}
}

// toDomain converts a database DTO to an order aggregate. Lines must be loaded in
// position order.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customer, err := order.NewCustomer(dto.CustomerName, dto.CustomerEmail, dto.CustomerPhone)
	if err != nil {
		return nil, err
	}

	destination, err := kernel.NewDestination(dto.City, dto.Address)
	if err != nil {
		return nil, err
	}

	payment, err := order.NewPayment(dto.PaymentReference, dto.PaymentMethod, dto.PaymentStatus)
	if err != nil {
		return nil, err
	}

	declared, err := kernel.NewMoney(dto.DeclaredTotal)
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.OverallStatus)
	if err != nil {
		return nil, err
	}

	breakdown, err := breakdownToDomain(dto.Breakdown)
	if err != nil {
		return nil, err
	}

	lines := make([]*order.Line, 0, len(dto.Lines))
	for _, lineDTO := range dto.Lines {
		line, lineErr := lineToDomain(lineDTO)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	return order.RestoreOrder(id, customer, destination, lines, payment, declared, status, breakdown,
		dto.Version, dto.CreatedAt, dto.UpdatedAt)
}

func lineToDomain(dto LineDTO) (*order.Line, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return nil, err
	}

	brandID, err := domainUUID(dto.BrandID)
	if err != nil {
		return nil, err
	}

	unitPrice, err := kernel.NewMoney(dto.UnitPrice)
	if err != nil {
		return nil, err
	}

	subtotal, err := kernel.NewMoney(dto.Subtotal)
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return order.RestoreLine(id, productID, dto.ProductName, brandID, dto.BrandName, dto.Size,
		dto.Quantity, unitPrice, subtotal, status)
}

func breakdownToDomain(dto BreakdownDTO) (order.DeliveryBreakdown, error) {
	b := order.DeliveryBreakdown{
		Groups:         make([]order.BrandGroup, 0, len(dto.Groups)),
		Subtotal:       kernel.MustMoney(dto.Subtotal),
		DeliveryCharge: kernel.MustMoney(dto.DeliveryCharge),
		GrandTotal:     kernel.MustMoney(dto.GrandTotal),
		BrandCount:     dto.BrandCount,
	}

	for _, g := range dto.Groups {
		brandID, err := domainUUID(g.BrandID)
		if err != nil {
			return order.DeliveryBreakdown{}, err
		}

		members := make([]order.GroupLine, 0, len(g.Lines))
		for _, l := range g.Lines {
			productID, productErr := kernel.UUIDFromBytes(l.ProductID[:])
			if productErr != nil {
				return order.DeliveryBreakdown{}, productErr
			}
			members = append(members, order.GroupLine{
				ProductID: productID,
				Size:      l.Size,
				Quantity:  l.Quantity,
				Subtotal:  kernel.MustMoney(l.Subtotal),
			})
		}

		b.Groups = append(b.Groups, order.BrandGroup{
			BrandID:        brandID,
			BrandName:      g.BrandName,
			Lines:          members,
			Subtotal:       kernel.MustMoney(g.Subtotal),
			DeliveryCharge: kernel.MustMoney(g.DeliveryCharge),
			Total:          kernel.MustMoney(g.Total),
		})
	}

	return b, nil
}

func rawUUID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func domainUUID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil //nolint:nilnil // absent brand
	}
	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
