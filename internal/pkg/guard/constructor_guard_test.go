package guard_test

import (
	"errors"
	"sync"
	"testing"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	errNotConstructed := errors.New("order must be created via NewOrder")

	t.Run("constructed guard passes", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errNotConstructed))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero value returns the given error", func(t *testing.T) {
		var g guard.ConstructorGuard

		assert.Equal(t, errNotConstructed, g.Validate(errNotConstructed))
	})

	t.Run("zero value falls back to the default error", func(t *testing.T) {
		var g guard.ConstructorGuard

		assert.Equal(t, guard.ErrDefaultConstructorGuard, g.Validate(nil))
	})
}

type validatable interface {
	Validate() error
}

// Commands and queries handed to handlers as zero values must be rejected with their own
// error, so a handler never acts on an empty order or product id.
func TestConstructorGuard_GuardsCommandsAndQueries(t *testing.T) {
	dispatch, err := commands.NewDispatchNotificationsCommand(10)
	require.NoError(t, err)
	getOrder, err := queries.NewGetOrderQuery(kernel.NewUUID())
	require.NoError(t, err)
	sizeStock, err := queries.NewGetSizeStockQuery(kernel.NewUUID())
	require.NoError(t, err)

	tests := []struct {
		name        string
		zero        validatable
		constructed validatable
		wantErr     error
	}{
		{
			name:        "dispatch notifications",
			zero:        commands.DispatchNotificationsCommand{},
			constructed: dispatch,
			wantErr:     commands.ErrDispatchNotificationsCommandIsNotConstructed,
		},
		{
			name:        "get order",
			zero:        queries.GetOrderQuery{},
			constructed: getOrder,
			wantErr:     queries.ErrGetOrderQueryIsNotConstructed,
		},
		{
			name:        "get size stock",
			zero:        queries.GetSizeStockQuery{},
			constructed: sizeStock,
			wantErr:     queries.ErrGetSizeStockQueryIsNotConstructed,
		},
		{
			name:    "update line status",
			zero:    commands.UpdateLineStatusCommand{},
			wantErr: commands.ErrUpdateLineStatusCommandIsNotConstructed,
		},
		{
			name:    "replace size stock",
			zero:    commands.ReplaceSizeStockCommand{},
			wantErr: commands.ErrReplaceSizeStockCommandIsNotConstructed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, tt.zero.Validate(), tt.wantErr)
			if tt.constructed != nil {
				require.NoError(t, tt.constructed.Validate())
			}
		})
	}
}

func TestConstructorGuard_ConcurrentValidate(t *testing.T) {
	constructed := guard.NewConstructorGuard()
	var zero guard.ConstructorGuard

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, constructed.Validate(nil))
			assert.Error(t, zero.Validate(nil))
		}()
	}
	wg.Wait()
}
