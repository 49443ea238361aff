package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest entrada para crear un item.
type CreateItemRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	State       string          `json:"state"`
	Description string          `json:"description"`
	Market      string          `json:"market"`
	Stock       int64           `json:"stock" validate:"min=0"`
	PriceTag    decimal.Decimal `json:"priceTag"`
}

// UpdateItemRequest entrada parcial (merge): solo se aplican los campos presentes y no vacíos.
type UpdateItemRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	State       *string          `json:"state"`
	Description *string          `json:"description"`
	Market      *string          `json:"market"`
	Stock       *int64           `json:"stock" validate:"omitempty,min=0"`
	PriceTag    *decimal.Decimal `json:"priceTag"`
}

// StockQuantityRequest cuerpo de dispatch, block y restock.
type StockQuantityRequest struct {
	Quantity int64 `json:"quantity" validate:"required,min=1"`
}

// ItemResponse salida de un item.
type ItemResponse struct {
	ItemUID     int64           `json:"itemUid"`
	Name        string          `json:"name"`
	State       string          `json:"state"`
	Description string          `json:"description"`
	Market      string          `json:"market"`
	Stock       int64           `json:"stock"`
	PriceTag    decimal.Decimal `json:"priceTag"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// ItemBatchResponse resultado de una lectura por lista de IDs; Missing lista los IDs no encontrados.
type ItemBatchResponse struct {
	Items   []ItemResponse
	Missing []int64
}

// ReservationResponse salida de una reserva por usuario.
type ReservationResponse struct {
	ID        string    `json:"id"`
	ItemUID   int64     `json:"itemUid"`
	UserUID   int64     `json:"userUid"`
	Quantity  int64     `json:"quantity"`
	CreatedAt time.Time `json:"createdAt"`
}
