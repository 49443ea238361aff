package repository

import (
	"context"

	"github.com/jhoicas/buyitem-api/internal/domain/entity"
)

// ItemRepository define el puerto de persistencia para Item (DIP).
// Las lecturas por ID devuelven (nil, nil) si el item no existe.
type ItemRepository interface {
	// Create persiste el item y rellena ID, CreatedAt y UpdatedAt. ErrDuplicate si el nombre ya existe.
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id int64) (*entity.Item, error)
	// GetByIDForUpdate bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetByIDForUpdate(ctx context.Context, id int64) (*entity.Item, error)
	// GetByIDs devuelve solo los items encontrados, ordenados por ID.
	GetByIDs(ctx context.Context, ids []int64) ([]*entity.Item, error)
	List(ctx context.Context) ([]*entity.Item, error)
	// Update reemplaza todos los campos editables. ErrDuplicate si el nombre choca con otro item.
	Update(ctx context.Context, item *entity.Item) error
	// UpdateStock escribe solo Stock (y UpdatedAt).
	UpdateStock(ctx context.Context, item *entity.Item) error
	// Delete devuelve ErrItemNotFound si no se eliminó ninguna fila.
	Delete(ctx context.Context, id int64) error
}
