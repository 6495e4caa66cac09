package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ListParams are the paging parameters of list operations.
type ListParams struct {
	Limit  *int `form:"limit,omitempty" json:"limit,omitempty"`
	Offset *int `form:"offset,omitempty" json:"offset,omitempty"`
}

// AvailabilityParams are the query parameters of checkAvailability.
type AvailabilityParams struct {
	Size     *string `form:"size,omitempty" json:"size,omitempty"`
	Quantity int     `form:"quantity" json:"quantity"`
}

// ServerInterface lists the operations of openapi.yaml.
type ServerInterface interface {
	// (POST /api/v1/orders)
	CreateOrder(ctx echo.Context) error
	// (POST /api/v1/delivery-charges/quote)
	QuoteDeliveryCharges(ctx echo.Context) error
	// (GET /api/v1/brand/orders)
	ListBrandOrders(ctx echo.Context, params ListParams) error
	// (PATCH /api/v1/brand/orders/{orderId}/status)
	UpdateBrandLineStatus(ctx echo.Context, orderID openapi_types.UUID) error
	// (GET /api/v1/admin/orders)
	ListAllOrders(ctx echo.Context, params ListParams) error
	// (GET /api/v1/admin/orders/{orderId})
	GetOrder(ctx echo.Context, orderID openapi_types.UUID) error
	// (GET /api/v1/products/{productId}/sizes)
	GetSizeStock(ctx echo.Context, productID openapi_types.UUID) error
	// (PUT /api/v1/products/{productId}/sizes)
	ReplaceSizeStock(ctx echo.Context, productID openapi_types.UUID) error
	// (GET /api/v1/products/{productId}/availability)
	CheckAvailability(ctx echo.Context, productID openapi_types.UUID, params AvailabilityParams) error
}

// ServerInterfaceWrapper binds path and query parameters before calling the handler.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	return w.Handler.CreateOrder(ctx)
}

func (w *ServerInterfaceWrapper) QuoteDeliveryCharges(ctx echo.Context) error {
	return w.Handler.QuoteDeliveryCharges(ctx)
}

func (w *ServerInterfaceWrapper) ListBrandOrders(ctx echo.Context) error {
	params, err := bindListParams(ctx)
	if err != nil {
		return err
	}
	return w.Handler.ListBrandOrders(ctx, params)
}

func (w *ServerInterfaceWrapper) UpdateBrandLineStatus(ctx echo.Context) error {
	orderID, err := bindUUIDPathParam(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.UpdateBrandLineStatus(ctx, orderID)
}

func (w *ServerInterfaceWrapper) ListAllOrders(ctx echo.Context) error {
	params, err := bindListParams(ctx)
	if err != nil {
		return err
	}
	return w.Handler.ListAllOrders(ctx, params)
}

func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	orderID, err := bindUUIDPathParam(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.GetOrder(ctx, orderID)
}

func (w *ServerInterfaceWrapper) GetSizeStock(ctx echo.Context) error {
	productID, err := bindUUIDPathParam(ctx, "productId")
	if err != nil {
		return err
	}
	return w.Handler.GetSizeStock(ctx, productID)
}

func (w *ServerInterfaceWrapper) ReplaceSizeStock(ctx echo.Context) error {
	productID, err := bindUUIDPathParam(ctx, "productId")
	if err != nil {
		return err
	}
	return w.Handler.ReplaceSizeStock(ctx, productID)
}

func (w *ServerInterfaceWrapper) CheckAvailability(ctx echo.Context) error {
	productID, err := bindUUIDPathParam(ctx, "productId")
	if err != nil {
		return err
	}

	var params AvailabilityParams
	if err = runtime.BindQueryParameter("form", true, false, "size", ctx.QueryParams(), &params.Size); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid format for parameter size: "+err.Error())
	}
	if err = runtime.BindQueryParameter("form", true, true, "quantity", ctx.QueryParams(), &params.Quantity); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid format for parameter quantity: "+err.Error())
	}

	return w.Handler.CheckAvailability(ctx, productID, params)
}

func bindUUIDPathParam(ctx echo.Context, name string) (openapi_types.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return id, echo.NewHTTPError(http.StatusBadRequest, "invalid format for parameter "+name+": "+err.Error())
	}
	return id, nil
}

func bindListParams(ctx echo.Context) (ListParams, error) {
	var params ListParams
	if err := runtime.BindQueryParameter("form", true, false, "limit", ctx.QueryParams(), &params.Limit); err != nil {
		return params, echo.NewHTTPError(http.StatusBadRequest, "invalid format for parameter limit: "+err.Error())
	}
	if err := runtime.BindQueryParameter("form", true, false, "offset", ctx.QueryParams(), &params.Offset); err != nil {
		return params, echo.NewHTTPError(http.StatusBadRequest, "invalid format for parameter offset: "+err.Error())
	}
	return params, nil
}

// EchoRouter is the part of *echo.Echo and *echo.Group that RegisterHandlers needs.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds every operation of si to router.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	w := &ServerInterfaceWrapper{Handler: si}

	router.POST("/api/v1/orders", w.CreateOrder)
	router.POST("/api/v1/delivery-charges/quote", w.QuoteDeliveryCharges)
	router.GET("/api/v1/brand/orders", w.ListBrandOrders)
	router.PATCH("/api/v1/brand/orders/:orderId/status", w.UpdateBrandLineStatus)
	router.GET("/api/v1/admin/orders", w.ListAllOrders)
	router.GET("/api/v1/admin/orders/:orderId", w.GetOrder)
	router.GET("/api/v1/products/:productId/sizes", w.GetSizeStock)
	router.PUT("/api/v1/products/:productId/sizes", w.ReplaceSizeStock)
	router.GET("/api/v1/products/:productId/availability", w.CheckAvailability)
}
