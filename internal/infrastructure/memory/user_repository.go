package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/buyitem-api/internal/domain"
	"github.com/jhoicas/buyitem-api/internal/domain/entity"
	"github.com/jhoicas/buyitem-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación en memoria de UserRepository.
type UserRepo struct {
	store *Store
	tx    *state
}

// Create asigna ID y timestamps.
func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	return r.store.view(r.tx, func(st *state) error {
		st.nextUserID++
		now := r.store.now()
		user.ID = st.nextUserID
		user.CreatedAt = now
		user.UpdatedAt = now
		st.users[user.ID] = *user
		return nil
	})
}

// GetByID devuelve una copia del usuario o nil si no existe.
func (r *UserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	var out *entity.User
	err := r.store.view(r.tx, func(st *state) error {
		if u, ok := st.users[id]; ok {
			out = &u
		}
		return nil
	})
	return out, err
}

// GetByIDs devuelve los usuarios existentes ordenados por ID.
func (r *UserRepo) GetByIDs(_ context.Context, ids []int64) ([]*entity.User, error) {
	var list []*entity.User
	err := r.store.view(r.tx, func(st *state) error {
		seen := make(map[int64]bool, len(ids))
		for _, id := range ids {
			if seen[id] {
				continue
			}
			seen[id] = true
			if u, ok := st.users[id]; ok {
				list = append(list, &u)
			}
		}
		return nil
	})
	sortUsers(list)
	return list, err
}

// List devuelve todos los usuarios ordenados por ID.
func (r *UserRepo) List(_ context.Context) ([]*entity.User, error) {
	var list []*entity.User
	err := r.store.view(r.tx, func(st *state) error {
		list = make([]*entity.User, 0, len(st.users))
		for _, u := range st.users {
			u := u
			list = append(list, &u)
		}
		return nil
	})
	sortUsers(list)
	return list, err
}

// Update reemplaza nombre y apellido.
func (r *UserRepo) Update(_ context.Context, user *entity.User) error {
	return r.store.view(r.tx, func(st *state) error {
		current, ok := st.users[user.ID]
		if !ok {
			return domain.ErrUserNotFound
		}
		user.CreatedAt = current.CreatedAt
		user.UpdatedAt = r.store.now()
		st.users[user.ID] = *user
		return nil
	})
}

// Delete elimina el usuario y sus reservas (equivalente a ON DELETE CASCADE).
func (r *UserRepo) Delete(_ context.Context, id int64) error {
	return r.store.view(r.tx, func(st *state) error {
		if _, ok := st.users[id]; !ok {
			return domain.ErrUserNotFound
		}
		delete(st.users, id)
		kept := st.reservations[:0]
		for _, res := range st.reservations {
			if res.UserID != id {
				kept = append(kept, res)
			}
		}
		st.reservations = kept
		return nil
	})
}

func sortUsers(list []*entity.User) {
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
}
