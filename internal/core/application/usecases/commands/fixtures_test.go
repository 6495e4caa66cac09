package commands_test

import (
	"testing"

	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/services"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func money(t *testing.T, units int64) kernel.Money {
	t.Helper()
	m, err := kernel.MoneyFromInt(units)
	require.NoError(t, err)
	return m
}

func calculator(t *testing.T) services.DeliveryChargeCalculator {
	t.Helper()
	c, err := services.NewDeliveryChargeCalculator(services.DeliveryRates{
		HomeCity:    "Dhaka",
		HomeRate:    money(t, 60),
		OutsideRate: money(t, 120),
	})
	require.NoError(t, err)
	return c
}

func approvedBrand(t *testing.T, name string) *catalog.Brand {
	t.Helper()
	b, err := catalog.RestoreBrand(kernel.NewUUID(), name, name+"@brands.example.com", true)
	require.NoError(t, err)
	return b
}

func sizedProduct(t *testing.T, brand *catalog.Brand, price int64, stock map[string]int, sizes ...string) *catalog.Product {
	t.Helper()
	buckets := make([]*catalog.SizeBucket, 0, len(sizes))
	for _, size := range sizes {
		b, err := catalog.NewSizeBucket(size, stock[size])
		require.NoError(t, err)
		buckets = append(buckets, b)
	}
	p, err := catalog.NewProduct(kernel.NewUUID(), brand.ID(), brand.Name()+" tee", money(t, price), buckets)
	require.NoError(t, err)
	return p
}

func customer(t *testing.T) order.Customer {
	t.Helper()
	c, err := order.NewCustomer("Rahim", "rahim@example.com", "+8801700000000")
	require.NoError(t, err)
	return c
}

func destination(t *testing.T, city string) kernel.Destination {
	t.Helper()
	d, err := kernel.NewDestination(city, "House 1, Road 2")
	require.NoError(t, err)
	return d
}

func cod(t *testing.T) order.Payment {
	t.Helper()
	p, err := order.NewPayment("", "cod", "")
	require.NoError(t, err)
	return p
}

// lineOf builds a pending line of product in size.
func lineOf(t *testing.T, product *catalog.Product, brand *catalog.Brand, size string, quantity int) *order.Line {
	t.Helper()
	brandID := brand.ID()
	l, err := order.NewLine(kernel.NewUUID(), product.ID(), product.Name(), &brandID, brand.Name(), size, quantity,
		product.UnitPrice())
	require.NoError(t, err)
	return l
}

// placedOrder places an order for lines shipped to city with the matching declared total.
func placedOrder(t *testing.T, city string, lines ...*order.Line) *order.Order {
	t.Helper()
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
	breakdown, err := calculator(t).Calculate(chargeable, city)
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewUUID(), customer(t), destination(t, city), lines, cod(t),
		breakdown.GrandTotal, breakdown)
	require.NoError(t, err)
	o.ClearDomainEvents()
	return o
}

func nopLogger() *zap.Logger {
	return zap.NewNop()
}
