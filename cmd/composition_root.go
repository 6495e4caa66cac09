package cmd

import (
	httpadapter "storefront/internal/adapters/in/http"
	"storefront/internal/adapters/out/notification"
	"storefront/internal/adapters/out/postgres"
	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/services"
	"storefront/internal/core/ports"

	"github.com/go-faster/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	calculator services.DeliveryChargeCalculator
	metrics    ports.FulfilmentMetrics
	logger     *zap.Logger
}

func NewCompositionRoot(
	cfg Config,
	gormDB *gorm.DB,
	metrics ports.FulfilmentMetrics,
	logger *zap.Logger,
) (*CompositionRoot, error) {
	rates, err := cfg.DeliveryRates()
	if err != nil {
		return nil, err
	}
	calculator, err := services.NewDeliveryChargeCalculator(rates)
	if err != nil {
		return nil, errors.Wrap(err, "delivery charge calculator")
	}

	return &CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		calculator: calculator,
		metrics:    metrics,
		logger:     logger,
	}, nil
}

// readUoW returns a unit of work that is never begun; its repositories read outside
// any transaction.
func (c *CompositionRoot) readUoW() ports.UnitOfWork {
	return c.uowFactory.Create()
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.calculator, c.metrics, c.logger)
}

func (c *CompositionRoot) CreateUpdateLineStatusCommandHandler() (commands.UpdateLineStatusCommandHandler, error) {
	policy, err := c.cfg.TransitionPolicy()
	if err != nil {
		return commands.UpdateLineStatusCommandHandler{}, err
	}

	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateLineStatusCommandHandler(f, policy, c.cfg.Orders.MaxRetries, c.metrics, c.logger), nil
}

func (c *CompositionRoot) CreateReplaceSizeStockCommandHandler() commands.ReplaceSizeStockCommandHandler {
	var f commands.ProductUoWFactory = FuncProductUoWFactory(func() commands.ProductUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReplaceSizeStockCommandHandler(f)
}

func (c *CompositionRoot) CreateDispatchNotificationsCommandHandler() (commands.DispatchNotificationsCommandHandler, error) {
	renderer, err := notification.NewTemplateRenderer(c.cfg.StoreName)
	if err != nil {
		return commands.DispatchNotificationsCommandHandler{}, errors.Wrap(err, "notification templates")
	}

	var notifier ports.Notifier
	if c.cfg.SMTP.Host != "" {
		notifier = notification.NewSMTPNotifier(c.cfg.SMTPNotifierConfig(), c.logger)
	} else {
		c.logger.Warn("SMTP host is not configured, notifications are only logged")
		notifier = notification.NewLogNotifier(c.logger)
	}

	var f commands.OutboxUoWFactory = FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDispatchNotificationsCommandHandler(
		f, renderer, notifier, c.cfg.Notify.AdminEmail, c.metrics, c.logger,
	), nil
}

func (c *CompositionRoot) CreateQuoteDeliveryChargesQueryHandler() queries.QuoteDeliveryChargesQueryHandler {
	uow := c.readUoW()
	return queries.NewQuoteDeliveryChargesQueryHandler(uow.ProductRepository(), uow.BrandRepository(), c.calculator)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.readUoW().OrderRepository())
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.readUoW().OrderRepository())
}

func (c *CompositionRoot) CreateListBrandOrdersQueryHandler() queries.ListBrandOrdersQueryHandler {
	uow := c.readUoW()
	return queries.NewListBrandOrdersQueryHandler(uow.OrderRepository(), uow.BrandRepository())
}

func (c *CompositionRoot) CreateGetSizeStockQueryHandler() queries.GetSizeStockQueryHandler {
	return queries.NewGetSizeStockQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateCheckAvailabilityQueryHandler() queries.CheckAvailabilityQueryHandler {
	return queries.NewCheckAvailabilityQueryHandler(c.gormDB)
}

// CreateHTTPHandlers wires every use case served by the HTTP adapter.
func (c *CompositionRoot) CreateHTTPHandlers() (httpadapter.Handlers, error) {
	updateLineStatus, err := c.CreateUpdateLineStatusCommandHandler()
	if err != nil {
		return httpadapter.Handlers{}, err
	}

	return httpadapter.Handlers{
		CreateOrder:          c.CreateCreateOrderCommandHandler(),
		UpdateLineStatus:     updateLineStatus,
		ReplaceSizeStock:     c.CreateReplaceSizeStockCommandHandler(),
		QuoteDeliveryCharges: c.CreateQuoteDeliveryChargesQueryHandler(),
		ListBrandOrders:      c.CreateListBrandOrdersQueryHandler(),
		ListOrders:           c.CreateListOrdersQueryHandler(),
		GetOrder:             c.CreateGetOrderQueryHandler(),
		GetSizeStock:         c.CreateGetSizeStockQueryHandler(),
		CheckAvailability:    c.CreateCheckAvailabilityQueryHandler(),
	}, nil
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncProductUoWFactory func() commands.ProductUoW

func (f FuncProductUoWFactory) Create() commands.ProductUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}
