package kernel_test

import (
	"errors"
	"testing"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDestination(t *testing.T) {
	t.Run("should trim city and address", func(t *testing.T) {
		d, err := kernel.NewDestination("  Dhaka ", " House 12, Road 5 ")

		require.NoError(t, err)
		assert.Equal(t, "Dhaka", d.City())
		assert.Equal(t, "House 12, Road 5", d.Address())
		assert.NoError(t, d.Validate())
	})

	t.Run("should allow an empty city", func(t *testing.T) {
		d, err := kernel.NewDestination("", "Somewhere")

		require.NoError(t, err)
		assert.Empty(t, d.City())
	})

	t.Run("should require an address", func(t *testing.T) {
		_, err := kernel.NewDestination("Dhaka", "   ")

		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrValueIsRequired))
	})

	t.Run("zero value is invalid", func(t *testing.T) {
		var d kernel.Destination
		assert.Error(t, d.Validate())
	})
}

func TestDestination_InCity(t *testing.T) {
	tests := []struct {
		city string
		want bool
	}{
		{"Dhaka", true},
		{"dhaka", true},
		{"  DHAKA  ", true},
		{"Chittagong", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.city, func(t *testing.T) {
			d, err := kernel.NewDestination(tt.city, "addr")
			require.NoError(t, err)

			assert.Equal(t, tt.want, d.InCity("Dhaka"))
		})
	}

	t.Run("empty home city never matches", func(t *testing.T) {
		d, _ := kernel.NewDestination("", "addr")
		assert.False(t, d.InCity(""))
	})
}
