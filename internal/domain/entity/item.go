package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item representa una unidad vendible del inventario.
// Stock nunca queda negativo; Name es único.
type Item struct {
	ID          int64
	Name        string
	State       string // etiqueta libre de estado
	Description string
	Market      string // etiqueta libre de mercado
	Stock       int64
	PriceTag    decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
