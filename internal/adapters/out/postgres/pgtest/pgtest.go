// Package pgtest starts a disposable PostgreSQL for integration tests and seeds
// storefront fixtures into it.
package pgtest

import (
	"context"
	"time"

	"storefront/internal/adapters/out/postgres"
	"storefront/internal/adapters/out/postgres/brandrepo"
	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/services"

	"github.com/shopspring/decimal"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

// Database is a running container with a migrated schema.
type Database struct {
	Container *tcpostgres.PostgresContainer
	DB        *gorm.DB
}

// Start runs postgres:15-alpine, connects through the production Open path and
// migrates the schema.
func Start(ctx context.Context) (*Database, error) {
	container, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, err
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	db, err := postgres.Open(dsn, postgres.PoolConfig{MaxOpenConns: 16})
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	if err = postgres.Migrate(db); err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	return &Database{Container: container, DB: db}, nil
}

// Reset empties every storefront table.
func (d *Database) Reset() error {
	return d.DB.Exec("TRUNCATE TABLE outbox_messages, order_lines, orders, size_buckets, products, brands").Error
}

// Terminate stops the container.
func (d *Database) Terminate(ctx context.Context) error {
	if d == nil || d.Container == nil {
		return nil
	}
	return d.Container.Terminate(ctx)
}

// SeedBrand inserts an approved brand.
func (d *Database) SeedBrand(ctx context.Context, name string) (*catalog.Brand, error) {
	brand, err := catalog.RestoreBrand(kernel.NewUUID(), name, name+"@brands.example.com", true)
	if err != nil {
		return nil, err
	}
	dto := brandrepo.FromDomain(brand)
	if err = d.DB.WithContext(ctx).Create(&dto).Error; err != nil {
		return nil, err
	}
	return brand, nil
}

// Money converts whole units, panicking on negative input.
func Money(units int64) kernel.Money {
	return kernel.MustMoney(decimal.NewFromInt(units))
}

// Calculator charges 60 inside Dhaka and 120 elsewhere.
func Calculator() services.DeliveryChargeCalculator {
	calc, err := services.NewDeliveryChargeCalculator(services.DeliveryRates{
		HomeCity:    "Dhaka",
		HomeRate:    Money(60),
		OutsideRate: Money(120),
	})
	if err != nil {
		panic(err)
	}
	return calc
}

// LineOf builds a pending line for product owned by brand.
func LineOf(product *catalog.Product, brand *catalog.Brand, size string, quantity int) (*order.Line, error) {
	brandID := brand.ID()
	return order.NewLine(kernel.NewUUID(), product.ID(), product.Name(), &brandID, brand.Name(), size, quantity,
		product.UnitPrice())
}

// PlaceOrder builds a newly placed order shipped to city, its placed event still pending.
func PlaceOrder(city string, lines ...*order.Line) (*order.Order, error) {
	chargeable := make([]services.ChargeableLine, 0, len(lines))
	for _, l := range lines {
		chargeable = append(chargeable, services.ChargeableLine{
			ProductID: l.ProductID(),
			Size:      l.Size(),
			Quantity:  l.Quantity(),
			Subtotal:  l.Subtotal(),
			BrandID:   l.BrandID(),
			BrandName: l.BrandName(),
		})
	}

	breakdown, err := Calculator().Calculate(chargeable, city)
	if err != nil {
		return nil, err
	}

	customer, err := order.NewCustomer("Rahim", "rahim@example.com", "+8801700000000")
	if err != nil {
		return nil, err
	}
	destination, err := kernel.NewDestination(city, "House 1, Road 2")
	if err != nil {
		return nil, err
	}
	payment, err := order.NewPayment("", "cod", "")
	if err != nil {
		return nil, err
	}

	return order.NewOrder(kernel.NewUUID(), customer, destination, lines, payment, breakdown.GrandTotal, breakdown)
}
