package ports

import (
	"context"

	"github.com/jhoicas/buyitem-api/internal/domain/repository"
)

// Repos agrupa los repositorios atados a una misma transacción.
type Repos struct {
	Items        repository.ItemRepository
	Users        repository.UserRepository
	Reservations repository.ReservationRepository
}

// TxRunner ejecuta fn dentro de una transacción: Commit si fn devuelve nil, Rollback en otro caso.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos Repos) error) error
}
