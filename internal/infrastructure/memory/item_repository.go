package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/buyitem-api/internal/domain"
	"github.com/jhoicas/buyitem-api/internal/domain/entity"
	"github.com/jhoicas/buyitem-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación en memoria de ItemRepository.
type ItemRepo struct {
	store *Store
	tx    *state
}

func nameTaken(st *state, name string, exceptID int64) bool {
	for id, it := range st.items {
		if id != exceptID && it.Name == name {
			return true
		}
	}
	return false
}

// Create asigna ID y timestamps. ErrDuplicate si el nombre ya existe.
func (r *ItemRepo) Create(_ context.Context, item *entity.Item) error {
	return r.store.view(r.tx, func(st *state) error {
		if nameTaken(st, item.Name, 0) {
			return domain.ErrDuplicate
		}
		st.nextItemID++
		now := r.store.now()
		item.ID = st.nextItemID
		item.CreatedAt = now
		item.UpdatedAt = now
		st.items[item.ID] = *item
		return nil
	})
}

// GetByID devuelve una copia del item o nil si no existe.
func (r *ItemRepo) GetByID(_ context.Context, id int64) (*entity.Item, error) {
	var out *entity.Item
	err := r.store.view(r.tx, func(st *state) error {
		if it, ok := st.items[id]; ok {
			out = &it
		}
		return nil
	})
	return out, err
}

// GetByIDForUpdate equivale a GetByID: dentro de Run el almacén completo ya está bloqueado.
func (r *ItemRepo) GetByIDForUpdate(ctx context.Context, id int64) (*entity.Item, error) {
	return r.GetByID(ctx, id)
}

// GetByIDs devuelve los items existentes ordenados por ID.
func (r *ItemRepo) GetByIDs(_ context.Context, ids []int64) ([]*entity.Item, error) {
	var list []*entity.Item
	err := r.store.view(r.tx, func(st *state) error {
		seen := make(map[int64]bool, len(ids))
		for _, id := range ids {
			if seen[id] {
				continue
			}
			seen[id] = true
			if it, ok := st.items[id]; ok {
				list = append(list, &it)
			}
		}
		return nil
	})
	sortItems(list)
	return list, err
}

// List devuelve todos los items ordenados por ID.
func (r *ItemRepo) List(_ context.Context) ([]*entity.Item, error) {
	var list []*entity.Item
	err := r.store.view(r.tx, func(st *state) error {
		list = make([]*entity.Item, 0, len(st.items))
		for _, it := range st.items {
			it := it
			list = append(list, &it)
		}
		return nil
	})
	sortItems(list)
	return list, err
}

// Update reemplaza los campos editables conservando CreatedAt.
func (r *ItemRepo) Update(_ context.Context, item *entity.Item) error {
	return r.store.view(r.tx, func(st *state) error {
		current, ok := st.items[item.ID]
		if !ok {
			return domain.ErrItemNotFound
		}
		if nameTaken(st, item.Name, item.ID) {
			return domain.ErrDuplicate
		}
		item.CreatedAt = current.CreatedAt
		item.UpdatedAt = r.store.now()
		st.items[item.ID] = *item
		return nil
	})
}

// UpdateStock escribe solo el stock.
func (r *ItemRepo) UpdateStock(_ context.Context, item *entity.Item) error {
	return r.store.view(r.tx, func(st *state) error {
		current, ok := st.items[item.ID]
		if !ok {
			return domain.ErrItemNotFound
		}
		if item.Stock < 0 {
			return domain.ErrInsufficientStock
		}
		current.Stock = item.Stock
		current.UpdatedAt = r.store.now()
		item.UpdatedAt = current.UpdatedAt
		st.items[item.ID] = current
		return nil
	})
}

// Delete elimina el item y sus reservas (equivalente a ON DELETE CASCADE).
func (r *ItemRepo) Delete(_ context.Context, id int64) error {
	return r.store.view(r.tx, func(st *state) error {
		if _, ok := st.items[id]; !ok {
			return domain.ErrItemNotFound
		}
		delete(st.items, id)
		kept := st.reservations[:0]
		for _, res := range st.reservations {
			if res.ItemID != id {
				kept = append(kept, res)
			}
		}
		st.reservations = kept
		return nil
	})
}

func sortItems(list []*entity.Item) {
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
}
