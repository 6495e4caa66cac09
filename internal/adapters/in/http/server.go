package http

import (
	"context"
	"net/http"
	"strings"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"go.uber.org/zap"
)

// IdempotencyKeyHeader lets clients retry order creation safely.
const IdempotencyKeyHeader = "Idempotency-Key"

type (
	CreateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error)
	}
	UpdateLineStatusHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateLineStatusCommand) ([]*order.Line, error)
	}
	ReplaceSizeStockHandler interface {
		Handle(ctx context.Context, cmd commands.ReplaceSizeStockCommand) (*catalog.Product, error)
	}
	QuoteDeliveryChargesHandler interface {
		Handle(ctx context.Context, query queries.QuoteDeliveryChargesQuery) (queries.BreakdownView, error)
	}
	ListBrandOrdersHandler interface {
		Handle(ctx context.Context, query queries.ListBrandOrdersQuery) ([]queries.OrderView, error)
	}
	ListOrdersHandler interface {
		Handle(ctx context.Context, query queries.ListOrdersQuery) ([]queries.OrderView, error)
	}
	GetOrderHandler interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (queries.OrderView, error)
	}
	GetSizeStockHandler interface {
		Handle(ctx context.Context, query queries.GetSizeStockQuery) ([]queries.GetSizeStockQueryResponse, error)
	}
	CheckAvailabilityHandler interface {
		Handle(ctx context.Context, query queries.CheckAvailabilityQuery) (queries.CheckAvailabilityQueryResponse, error)
	}
)

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	CreateOrder          CreateOrderHandler
	UpdateLineStatus     UpdateLineStatusHandler
	ReplaceSizeStock     ReplaceSizeStockHandler
	QuoteDeliveryCharges QuoteDeliveryChargesHandler
	ListBrandOrders      ListBrandOrdersHandler
	ListOrders           ListOrdersHandler
	GetOrder             GetOrderHandler
	GetSizeStock         GetSizeStockHandler
	CheckAvailability    CheckAvailabilityHandler
}

var _ ServerInterface = (*Server)(nil)

// Server implements ServerInterface on top of the command and query handlers.
// Idempotency is optional; without a store the Idempotency-Key header is ignored.
type Server struct {
	handlers    Handlers
	idempotency ports.IdempotencyStore
	logger      *zap.Logger
}

// NewServer creates a server. idempotency may be nil.
func NewServer(handlers Handlers, idempotency ports.IdempotencyStore, logger *zap.Logger) *Server {
	return &Server{
		handlers:    handlers,
		idempotency: idempotency,
		logger:      logger.With(zap.String("component", "http_server")),
	}
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	var req CreateOrderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	cmd, err := createOrderCommand(req)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	key := strings.TrimSpace(c.Request().Header.Get(IdempotencyKeyHeader))
	if key != "" && s.idempotency != nil {
		claimed, claimErr := s.idempotency.Claim(ctx, key)
		if claimErr != nil {
			return claimErr
		}
		if !claimed {
			return ErrDuplicateRequest
		}
	}

	placed, err := s.handlers.CreateOrder.Handle(ctx, cmd)
	if err != nil {
		if key != "" && s.idempotency != nil {
			if releaseErr := s.idempotency.Release(context.WithoutCancel(ctx), key); releaseErr != nil {
				s.logger.Warn("failed to release idempotency key", zap.String("key", key), zap.Error(releaseErr))
			}
		}
		return err
	}

	return ok(c, http.StatusCreated, "order placed", orderResponse(queries.NewOrderView(placed, nil)))
}

// QuoteDeliveryCharges handles POST /api/v1/delivery-charges/quote.
func (s *Server) QuoteDeliveryCharges(c echo.Context) error {
	var req QuoteRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	lines, err := requestedLines(req.Lines)
	if err != nil {
		return err
	}

	query, err := queries.NewQuoteDeliveryChargesQuery(lines, req.City)
	if err != nil {
		return err
	}

	breakdown, err := s.handlers.QuoteDeliveryCharges.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return ok(c, http.StatusOK, "delivery charges quoted", breakdownResponse(breakdown))
}

// ListBrandOrders handles GET /api/v1/brand/orders.
func (s *Server) ListBrandOrders(c echo.Context, params ListParams) error {
	actor, err := requireRole(c, RoleBrand, "list brand orders")
	if err != nil {
		return err
	}

	query, err := queries.NewListBrandOrdersQuery(actor.BrandID, page(params))
	if err != nil {
		return err
	}

	views, err := s.handlers.ListBrandOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return ok(c, http.StatusOK, "orders retrieved", orderResponses(views))
}

// UpdateBrandLineStatus handles PATCH /api/v1/brand/orders/{orderId}/status.
func (s *Server) UpdateBrandLineStatus(c echo.Context, orderID openapi_types.UUID) error {
	actor, err := requireRole(c, RoleBrand, "update line status")
	if err != nil {
		return err
	}

	var req UpdateStatusRequest
	if err = bindAndValidate(c, &req); err != nil {
		return err
	}

	target, err := order.ParseStatus(req.Status)
	if err != nil {
		return err
	}

	id, err := kernel.UUIDFromBytes(orderID[:])
	if err != nil {
		return err
	}

	cmd, err := commands.NewUpdateLineStatusCommand(id, actor.BrandID, target)
	if err != nil {
		return err
	}

	lines, err := s.handlers.UpdateLineStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ok(c, http.StatusOK, "line status updated", lineResponses(queries.NewLineViews(lines)))
}

// ListAllOrders handles GET /api/v1/admin/orders.
func (s *Server) ListAllOrders(c echo.Context, params ListParams) error {
	if _, err := requireRole(c, RoleAdmin, "list all orders"); err != nil {
		return err
	}

	query, err := queries.NewListOrdersQuery(page(params))
	if err != nil {
		return err
	}

	views, err := s.handlers.ListOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return ok(c, http.StatusOK, "orders retrieved", orderResponses(views))
}

// GetOrder handles GET /api/v1/admin/orders/{orderId}.
func (s *Server) GetOrder(c echo.Context, orderID openapi_types.UUID) error {
	if _, err := requireRole(c, RoleAdmin, "read orders"); err != nil {
		return err
	}

	id, err := kernel.UUIDFromBytes(orderID[:])
	if err != nil {
		return err
	}

	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return err
	}

	view, err := s.handlers.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return ok(c, http.StatusOK, "order retrieved", orderResponse(view))
}

// GetSizeStock handles GET /api/v1/products/{productId}/sizes.
func (s *Server) GetSizeStock(c echo.Context, productID openapi_types.UUID) error {
	id, err := kernel.UUIDFromBytes(productID[:])
	if err != nil {
		return err
	}

	query, err := queries.NewGetSizeStockQuery(id)
	if err != nil {
		return err
	}

	sizes, err := s.handlers.GetSizeStock.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	resp := make([]SizeResponse, 0, len(sizes))
	for _, size := range sizes {
		resp = append(resp, SizeResponse(size))
	}
	return ok(c, http.StatusOK, "sizes retrieved", resp)
}

// ReplaceSizeStock handles PUT /api/v1/products/{productId}/sizes.
func (s *Server) ReplaceSizeStock(c echo.Context, productID openapi_types.UUID) error {
	actor, err := requireRole(c, RoleBrand, "replace size stock")
	if err != nil {
		return err
	}

	var req ReplaceSizesRequest
	if err = bindAndValidate(c, &req); err != nil {
		return err
	}

	id, err := kernel.UUIDFromBytes(productID[:])
	if err != nil {
		return err
	}

	cmd, err := commands.NewReplaceSizeStockCommand(id, actor.BrandID, sizeStocks(req.Sizes))
	if err != nil {
		return err
	}

	product, err := s.handlers.ReplaceSizeStock.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ok(c, http.StatusOK, "sizes replaced", productStockResponse(product))
}

// CheckAvailability handles GET /api/v1/products/{productId}/availability.
func (s *Server) CheckAvailability(c echo.Context, productID openapi_types.UUID, params AvailabilityParams) error {
	id, err := kernel.UUIDFromBytes(productID[:])
	if err != nil {
		return err
	}

	size := ""
	if params.Size != nil {
		size = *params.Size
	}

	query, err := queries.NewCheckAvailabilityQuery(id, size, params.Quantity)
	if err != nil {
		return err
	}

	result, err := s.handlers.CheckAvailability.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return ok(c, http.StatusOK, "availability checked", AvailabilityResponse(result))
}

func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return err
	}
	return c.Validate(req)
}

func page(params ListParams) ports.Page {
	var p ports.Page
	if params.Limit != nil {
		p.Limit = *params.Limit
	}
	if params.Offset != nil {
		p.Offset = *params.Offset
	}
	return p
}

func createOrderCommand(req CreateOrderRequest) (commands.CreateOrderCommand, error) {
	customer, err := order.NewCustomer(req.Customer.Name, req.Customer.Email, req.Customer.Phone)
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}

	destination, err := kernel.NewDestination(req.Destination.City, req.Destination.Address)
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}

	payment, err := order.NewPayment(req.Payment.Reference, req.Payment.Method, req.Payment.Status)
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}

	lines, err := requestedLines(req.Lines)
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}

	declared, err := kernel.NewMoney(req.DeclaredTotal)
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}

	return commands.NewCreateOrderCommand(kernel.NewUUID(), customer, destination, lines, payment, declared)
}
