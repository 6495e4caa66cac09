package http

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
)

// RouterConfig carries what NewRouter needs besides the server.
type RouterConfig struct {
	JWTSecret []byte
	Gatherer  prometheus.Gatherer
	Logger    *zap.Logger
}

// NewRouter builds the echo instance: access log, recovery, authentication, request
// validation against openapi.yaml, the API routes and the ops endpoints.
func NewRouter(ctx context.Context, server ServerInterface, cfg RouterConfig) (*echo.Echo, error) {
	doc, err := LoadOpenAPI(ctx)
	if err != nil {
		return nil, err
	}
	validateRequests, err := RequestValidator(doc)
	if err != nil {
		return nil, err
	}
	if err = RegisterSwagger(doc); err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewStructValidator()
	e.HTTPErrorHandler = ErrorHandler(cfg.Logger)

	e.Use(middleware.RequestLoggerWithConfig(accessLog(cfg.Logger)))
	e.Use(middleware.Recover())

	e.GET("/health", func(c echo.Context) error {
		return ok(c, http.StatusOK, "healthy", nil)
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("", Authenticate(cfg.JWTSecret), validateRequests)
	RegisterHandlers(api, server)

	return e, nil
}

func accessLog(logger *zap.Logger) middleware.RequestLoggerConfig {
	logger = logger.With(zap.String("component", "http_access"))

	return middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogRequestID: true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency.Round(time.Microsecond)),
				zap.String("remote_ip", v.RemoteIP),
			}
			if v.Error != nil {
				logger.Warn("request", append(fields, zap.Error(v.Error))...)
				return nil
			}
			logger.Info("request", fields...)
			return nil
		},
	}
}
