package entity

import "time"

// Reservation registra stock bloqueado para un usuario concreto (block con usuario).
type Reservation struct {
	ID        string
	ItemID    int64
	UserID    int64
	Quantity  int64
	CreatedAt time.Time
}
