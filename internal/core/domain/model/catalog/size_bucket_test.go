package catalog_test

import (
	"errors"
	"testing"

	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSizeBucket(t *testing.T) {
	t.Run("should create bucket with nothing sold", func(t *testing.T) {
		bucket, err := catalog.NewSizeBucket(" M ", 10)

		require.NoError(t, err)
		assert.Equal(t, "M", bucket.Size())
		assert.Equal(t, 10, bucket.Stock())
		assert.Equal(t, 0, bucket.Sold())
		assert.True(t, bucket.Available())
		require.NoError(t, bucket.Validate())
	})

	t.Run("should reject blank size and negative stock together", func(t *testing.T) {
		bucket, err := catalog.NewSizeBucket("  ", -1)

		require.Error(t, err)
		assert.Nil(t, bucket)
		assert.True(t, errors.Is(err, errs.ErrValueIsRequired))
		assert.True(t, errors.Is(err, errs.ErrValueIsInvalid))
	})

	t.Run("should reject negative sold on restore", func(t *testing.T) {
		_, err := catalog.RestoreSizeBucket("L", 1, -3)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "sold is invalid")
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var bucket catalog.SizeBucket
		assert.ErrorIs(t, bucket.Validate(), catalog.ErrSizeBucketIsNotConstructed)

		var nilBucket *catalog.SizeBucket
		assert.ErrorIs(t, nilBucket.Validate(), catalog.ErrSizeBucketIsNotConstructed)
	})
}

func TestSizeBucket_Decrement(t *testing.T) {
	tests := []struct {
		name        string
		stock       int
		quantity    int
		wantRemoved int
		wantStock   int
	}{
		{"partial", 10, 3, 3, 7},
		{"exact", 3, 3, 3, 0},
		{"clamps at zero", 2, 5, 2, 0},
		{"already empty", 0, 1, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bucket, err := catalog.NewSizeBucket("M", tt.stock)
			require.NoError(t, err)

			removed, err := bucket.Decrement(tt.quantity)

			require.NoError(t, err)
			assert.Equal(t, tt.wantRemoved, removed)
			assert.Equal(t, tt.wantStock, bucket.Stock())
			assert.GreaterOrEqual(t, bucket.Stock(), 0)
		})
	}

	t.Run("should reject non-positive quantity", func(t *testing.T) {
		bucket, _ := catalog.NewSizeBucket("M", 5)

		_, err := bucket.Decrement(0)

		require.Error(t, err)
		assert.Equal(t, 5, bucket.Stock())
	})
}

func TestSizeBucket_RecordSale(t *testing.T) {
	bucket, err := catalog.RestoreSizeBucket("M", 7, 1)
	require.NoError(t, err)

	require.NoError(t, bucket.RecordSale(3))

	assert.Equal(t, 4, bucket.Sold())
	assert.Equal(t, 7, bucket.Stock(), "sales never touch remaining stock")
	assert.Error(t, bucket.RecordSale(-1))
}

func TestSizeBucket_Covers(t *testing.T) {
	bucket, _ := catalog.NewSizeBucket("S", 2)

	assert.True(t, bucket.Covers(2))
	assert.False(t, bucket.Covers(3))
	assert.False(t, bucket.Covers(0))
}
