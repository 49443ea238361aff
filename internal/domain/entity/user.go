package entity

import "time"

// User representa una cuenta/cliente.
type User struct {
	ID        int64
	FirstName string
	LastName  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
