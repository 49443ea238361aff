package inventory_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/buyitem-api/internal/domain"
	"github.com/jhoicas/buyitem-api/internal/domain/inventory"
)

func TestDecrease(t *testing.T) {
	tests := []struct {
		name     string
		current  int64
		quantity int64
		want     int64
		wantErr  error
	}{
		{name: "parcial", current: 10, quantity: 3, want: 7},
		{name: "todo el stock", current: 5, quantity: 5, want: 0},
		{name: "excede stock", current: 5, quantity: 6, want: 5, wantErr: domain.ErrInsufficientStock},
		{name: "cero", current: 5, quantity: 0, want: 5, wantErr: domain.ErrInvalidInput},
		{name: "negativa", current: 5, quantity: -2, want: 5, wantErr: domain.ErrInvalidInput},
		{name: "sin stock", current: 0, quantity: 1, want: 0, wantErr: domain.ErrInsufficientStock},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := inventory.Decrease(tt.current, tt.quantity)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "error esperado %v, recibido %v", tt.wantErr, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, int64(0), "el stock nunca debe quedar negativo")
		})
	}
}

func TestIncrease(t *testing.T) {
	got, err := inventory.Increase(9, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(13), got)

	got, err = inventory.Increase(9, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, int64(9), got)

	got, err = inventory.Increase(math.MaxInt64-1, 2)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, int64(math.MaxInt64-1), got)
}
