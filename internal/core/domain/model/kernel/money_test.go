package kernel_test

import (
	"errors"
	"testing"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("should accept zero and positive amounts", func(t *testing.T) {
		for _, s := range []string{"0", "60", "1250.50"} {
			m, err := kernel.NewMoney(decimal.RequireFromString(s))

			require.NoError(t, err)
			assert.True(t, m.Decimal().Equal(decimal.RequireFromString(s)))
		}
	})

	t.Run("should reject negative amounts", func(t *testing.T) {
		_, err := kernel.NewMoney(decimal.NewFromInt(-1))

		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrValueIsInvalid))
	})

	t.Run("MustMoney panics on negative amounts", func(t *testing.T) {
		assert.Panics(t, func() { kernel.MustMoney(decimal.NewFromInt(-5)) })
	})
}

func TestMoney_Arithmetic(t *testing.T) {
	price := kernel.MustMoney(decimal.RequireFromString("499.99"))

	subtotal := price.Times(3)
	total := subtotal.Add(kernel.MustMoney(decimal.NewFromInt(120)))

	assert.Equal(t, "1499.97", subtotal.String())
	assert.Equal(t, "1619.97", total.String())
	assert.True(t, kernel.ZeroMoney().IsZero())
	assert.True(t, kernel.MustMoney(decimal.RequireFromString("2.00")).IsEqual(kernel.MustMoney(decimal.NewFromInt(2))))
}
