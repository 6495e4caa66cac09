package catalog_test

import (
	"errors"
	"testing"

	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bucket(t *testing.T, size string, stock int) *catalog.SizeBucket {
	t.Helper()
	b, err := catalog.NewSizeBucket(size, stock)
	require.NoError(t, err)
	return b
}

func createSizedProduct(t *testing.T, buckets ...*catalog.SizeBucket) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(
		kernel.NewUUID(),
		kernel.NewUUID(),
		"Cotton Panjabi",
		kernel.MustMoney(decimal.NewFromInt(1500)),
		buckets,
	)
	require.NoError(t, err)
	return p
}

func sumOfBuckets(p *catalog.Product) int {
	total := 0
	for _, b := range p.Sizes() {
		total += b.Stock()
	}
	return total
}

func TestNewProduct(t *testing.T) {
	t.Run("should derive totalStock from buckets", func(t *testing.T) {
		p := createSizedProduct(t, bucket(t, "S", 4), bucket(t, "M", 10), bucket(t, "L", 1))

		assert.Equal(t, 15, p.TotalStock())
		assert.True(t, p.HasSizes())
		assert.Equal(t, []string{"S", "M", "L"}, sizeLabels(p))
		require.NoError(t, p.Validate())
	})

	t.Run("should aggregate validation errors", func(t *testing.T) {
		p, err := catalog.NewProduct(kernel.UUID{}, kernel.UUID{}, "", kernel.ZeroMoney(), nil)

		require.Error(t, err)
		assert.Nil(t, p)
		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
		assert.ErrorIs(t, err, catalog.ErrNameIsRequired)
	})

	t.Run("should reject duplicate sizes", func(t *testing.T) {
		_, err := catalog.NewProduct(kernel.NewUUID(), kernel.NewUUID(), "Tee", kernel.ZeroMoney(),
			[]*catalog.SizeBucket{bucket(t, "M", 1), bucket(t, "M", 2)})

		require.Error(t, err)
		assert.Contains(t, err.Error(), `size "M" is listed twice`)
	})

	t.Run("restore ignores stored total when sizes exist", func(t *testing.T) {
		p, err := catalog.RestoreProduct(kernel.NewUUID(), kernel.NewUUID(), "Tee", kernel.ZeroMoney(),
			[]*catalog.SizeBucket{bucket(t, "M", 2)}, 99, 5)

		require.NoError(t, err)
		assert.Equal(t, 2, p.TotalStock())
		assert.Equal(t, 5, p.LifetimeSold())
	})
}

func sizeLabels(p *catalog.Product) []string {
	labels := make([]string, 0, len(p.Sizes()))
	for _, b := range p.Sizes() {
		labels = append(labels, b.Size())
	}
	return labels
}

func TestProduct_ConfirmThenDeliver(t *testing.T) {
	p := createSizedProduct(t, bucket(t, "S", 5), bucket(t, "M", 10))

	removed, err := p.DecrementOnConfirm("M", 3)
	require.NoError(t, err)

	m, ok := p.FindSize("M")
	require.True(t, ok)
	assert.Equal(t, 3, removed)
	assert.Equal(t, 7, m.Stock())
	assert.Equal(t, 12, p.TotalStock())

	require.NoError(t, p.RecordSaleOnDeliver("M", 3))

	assert.Equal(t, 3, m.Sold())
	assert.Equal(t, 7, m.Stock())
	assert.Equal(t, 3, p.LifetimeSold())
	assert.Equal(t, 12, p.TotalStock())
}

func TestProduct_TotalStockInvariant(t *testing.T) {
	p := createSizedProduct(t, bucket(t, "S", 2), bucket(t, "M", 10), bucket(t, "L", 0))

	steps := []struct {
		size string
		qty  int
	}{
		{"M", 3}, {"S", 5}, {"L", 1}, {"M", 7}, {"M", 1},
	}
	for _, s := range steps {
		_, err := p.DecrementOnConfirm(s.size, s.qty)
		require.NoError(t, err)
		assert.Equal(t, sumOfBuckets(p), p.TotalStock())
		for _, b := range p.Sizes() {
			assert.GreaterOrEqual(t, b.Stock(), 0)
		}
	}
	assert.Equal(t, 0, p.TotalStock())
}

func TestProduct_UnsizedFallback(t *testing.T) {
	p, err := catalog.NewUnsizedProduct(kernel.NewUUID(), kernel.NewUUID(), "Perfume", kernel.ZeroMoney(), 4)
	require.NoError(t, err)

	avail, err := p.Availability("any")
	require.NoError(t, err)
	assert.Equal(t, 4, avail)

	removed, err := p.DecrementOnConfirm("", 6)
	require.NoError(t, err)
	assert.Equal(t, 4, removed)
	assert.Equal(t, 0, p.TotalStock())

	require.NoError(t, p.RecordSaleOnDeliver("", 4))
	assert.Equal(t, 4, p.LifetimeSold())
}

func TestProduct_UnknownSize(t *testing.T) {
	p := createSizedProduct(t, bucket(t, "M", 10))

	_, err := p.Availability("XL")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrObjectNotFound))

	_, err = p.DecrementOnConfirm("XL", 1)
	assert.True(t, errors.Is(err, errs.ErrObjectNotFound))
	assert.Equal(t, 10, p.TotalStock())

	err = p.RecordSaleOnDeliver("XL", 1)
	assert.True(t, errors.Is(err, errs.ErrObjectNotFound))
	assert.Equal(t, 0, p.LifetimeSold())
}

func TestProduct_ReplaceSizes(t *testing.T) {
	p := createSizedProduct(t, bucket(t, "M", 10))

	require.NoError(t, p.ReplaceSizes([]*catalog.SizeBucket{bucket(t, "S", 1), bucket(t, "XL", 6)}))
	assert.Equal(t, 7, p.TotalStock())
	_, ok := p.FindSize("M")
	assert.False(t, ok)

	require.NoError(t, p.ReplaceSizes(nil))
	assert.False(t, p.HasSizes())
	assert.Equal(t, 0, p.TotalStock())
}

func TestProduct_SizesReturnsCopy(t *testing.T) {
	p := createSizedProduct(t, bucket(t, "M", 10))

	sizes := p.Sizes()
	sizes[0] = nil

	assert.NotNil(t, p.Sizes()[0])
}
