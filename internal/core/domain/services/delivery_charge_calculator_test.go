package services_test

import (
	"errors"
	"testing"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/services"
	"storefront/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func money(v int64) kernel.Money {
	return kernel.MustMoney(decimal.NewFromInt(v))
}

func newCalculator(t *testing.T) services.DeliveryChargeCalculator {
	t.Helper()
	calc, err := services.NewDeliveryChargeCalculator(services.DeliveryRates{
		HomeCity:    "Dhaka",
		HomeRate:    money(60),
		OutsideRate: money(120),
	})
	require.NoError(t, err)
	return calc
}

func line(brandID *kernel.UUID, brandName string, qty int, subtotal int64) services.ChargeableLine {
	return services.ChargeableLine{
		ProductID: kernel.NewUUID(),
		Size:      "M",
		Quantity:  qty,
		Subtotal:  money(subtotal),
		BrandID:   brandID,
		BrandName: brandName,
	}
}

func TestDeliveryChargeCalculator_Calculate(t *testing.T) {
	calc := newCalculator(t)
	brandA := kernel.NewUUID()
	brandB := kernel.NewUUID()

	t.Run("two lines of one brand in Dhaka pay one low rate", func(t *testing.T) {
		breakdown, err := calc.Calculate([]services.ChargeableLine{
			line(&brandA, "Aarong", 1, 500),
			line(&brandA, "Aarong", 4, 2000),
		}, "Dhaka")

		require.NoError(t, err)
		require.Len(t, breakdown.Groups, 1)
		assert.Len(t, breakdown.Groups[0].Lines, 2)
		assert.Equal(t, 1, breakdown.BrandCount)
		assert.True(t, breakdown.DeliveryCharge.IsEqual(money(60)))
		assert.True(t, breakdown.Subtotal.IsEqual(money(2500)))
		assert.True(t, breakdown.GrandTotal.IsEqual(money(2560)))
		assert.True(t, breakdown.Groups[0].Total.IsEqual(money(2560)))
	})

	t.Run("two brands in Chittagong pay two high rates", func(t *testing.T) {
		breakdown, err := calc.Calculate([]services.ChargeableLine{
			line(&brandA, "Aarong", 1, 500),
			line(&brandB, "Yellow", 1, 700),
		}, "Chittagong")

		require.NoError(t, err)
		require.Len(t, breakdown.Groups, 2)
		assert.Equal(t, "Aarong", breakdown.Groups[0].BrandName)
		assert.Equal(t, "Yellow", breakdown.Groups[1].BrandName)
		assert.True(t, breakdown.DeliveryCharge.IsEqual(money(240)))
		assert.True(t, breakdown.Groups[1].DeliveryCharge.IsEqual(money(120)))
		assert.True(t, breakdown.GrandTotal.IsEqual(money(1440)))
	})

	t.Run("unresolved brand lines share one unknown group", func(t *testing.T) {
		breakdown, err := calc.Calculate([]services.ChargeableLine{
			line(nil, "", 1, 100),
			line(&brandA, "Aarong", 1, 100),
			line(nil, "", 2, 200),
		}, "Dhaka")

		require.NoError(t, err)
		require.Len(t, breakdown.Groups, 2)
		assert.True(t, breakdown.Groups[0].IsUnknown())
		assert.Equal(t, order.UnknownBrandName, breakdown.Groups[0].BrandName)
		assert.Len(t, breakdown.Groups[0].Lines, 2)
		assert.True(t, breakdown.DeliveryCharge.IsEqual(money(120)))
	})

	t.Run("charge is brand count times rate regardless of quantity", func(t *testing.T) {
		for _, qty := range []int{1, 5, 50} {
			breakdown, err := calc.Calculate([]services.ChargeableLine{
				line(&brandA, "Aarong", qty, 10),
				line(&brandB, "Yellow", qty, 10),
				line(&brandB, "Yellow", qty, 10),
			}, "Rajshahi")

			require.NoError(t, err)
			assert.True(t, breakdown.DeliveryCharge.IsEqual(money(120).Times(breakdown.BrandCount)))
		}
	})

	t.Run("should reject empty input and bad quantities", func(t *testing.T) {
		_, err := calc.Calculate(nil, "Dhaka")
		assert.ErrorIs(t, err, services.ErrNoChargeableLines)

		_, err = calc.Calculate([]services.ChargeableLine{line(&brandA, "Aarong", 0, 0)}, "Dhaka")
		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrValueIsInvalid))
	})
}

func TestDeliveryChargeCalculator_RateFor(t *testing.T) {
	calc := newCalculator(t)

	tests := []struct {
		city string
		want int64
	}{
		{"Dhaka", 60},
		{"dhaka", 60},
		{"  DHAKA\t", 60},
		{"Chittagong", 120},
		{"Dhaka North", 120},
		{"", 120},
	}
	for _, tt := range tests {
		t.Run(tt.city, func(t *testing.T) {
			assert.True(t, calc.RateFor(tt.city).IsEqual(money(tt.want)))
		})
	}
}

func TestNewDeliveryChargeCalculator(t *testing.T) {
	_, err := services.NewDeliveryChargeCalculator(services.DeliveryRates{HomeCity: "  "})

	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrValueIsRequired))
}
