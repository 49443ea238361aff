package dto

import "time"

// CreateUserRequest entrada para crear un usuario.
type CreateUserRequest struct {
	FirstName string `json:"firstName" validate:"required,min=1,max=100"`
	LastName  string `json:"lastName" validate:"required,min=1,max=100"`
}

// UpdateUserRequest entrada parcial: solo sobrescriben los valores no vacíos.
type UpdateUserRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
}

// UserResponse salida de un usuario.
type UserResponse struct {
	UserUID   int64     `json:"userUid"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserBatchResponse resultado de una lectura por lista de IDs.
type UserBatchResponse struct {
	Users   []UserResponse
	Missing []int64
}
