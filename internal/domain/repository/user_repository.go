package repository

import (
	"context"

	"github.com/jhoicas/buyitem-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByIDs(ctx context.Context, ids []int64) ([]*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	// Delete devuelve ErrUserNotFound si no se eliminó ninguna fila.
	Delete(ctx context.Context, id int64) error
}
