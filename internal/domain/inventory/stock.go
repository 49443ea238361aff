package inventory

import (
	"fmt"
	"math"

	"github.com/jhoicas/buyitem-api/internal/domain"
)

// Operaciones de stock sobre un item.
const (
	OperationDispatch = "dispatch" // salida por venta/envío
	OperationBlock    = "block"    // reserva (hold) sin venta
	OperationRestock  = "restock"  // reposición
)

// ValidateQuantity exige cantidad estrictamente positiva.
func ValidateQuantity(quantity int64) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: la cantidad debe ser mayor que cero (recibido %d)", domain.ErrInvalidInput, quantity)
	}
	return nil
}

// Decrease calcula el stock tras una salida (dispatch o block).
// Si la cantidad no es válida o supera el stock actual devuelve error y el stock original.
func Decrease(current, quantity int64) (int64, error) {
	if err := ValidateQuantity(quantity); err != nil {
		return current, err
	}
	if quantity > current {
		return current, fmt.Errorf("%w: disponible %d, solicitado %d", domain.ErrInsufficientStock, current, quantity)
	}
	return current - quantity, nil
}

// Increase calcula el stock tras una reposición. No hay cota superior salvo el rango de int64.
func Increase(current, quantity int64) (int64, error) {
	if err := ValidateQuantity(quantity); err != nil {
		return current, err
	}
	if current > math.MaxInt64-quantity {
		return current, fmt.Errorf("%w: el stock resultante excede el máximo representable", domain.ErrInvalidInput)
	}
	return current + quantity, nil
}
