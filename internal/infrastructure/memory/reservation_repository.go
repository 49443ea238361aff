package memory

import (
	"context"

	"github.com/jhoicas/buyitem-api/internal/domain"
	"github.com/jhoicas/buyitem-api/internal/domain/entity"
	"github.com/jhoicas/buyitem-api/internal/domain/repository"
)

var _ repository.ReservationRepository = (*ReservationRepo)(nil)

// ReservationRepo implementación en memoria de ReservationRepository.
type ReservationRepo struct {
	store *Store
	tx    *state
}

// Create registra la reserva; item y usuario deben existir (claves foráneas).
func (r *ReservationRepo) Create(_ context.Context, res *entity.Reservation) error {
	return r.store.view(r.tx, func(st *state) error {
		if _, ok := st.items[res.ItemID]; !ok {
			return domain.ErrItemNotFound
		}
		if _, ok := st.users[res.UserID]; !ok {
			return domain.ErrUserNotFound
		}
		res.CreatedAt = r.store.now()
		st.reservations = append(st.reservations, *res)
		return nil
	})
}

// ListByItem devuelve las reservas del item en orden de creación.
func (r *ReservationRepo) ListByItem(_ context.Context, itemID int64) ([]*entity.Reservation, error) {
	var list []*entity.Reservation
	err := r.store.view(r.tx, func(st *state) error {
		for _, res := range st.reservations {
			if res.ItemID == itemID {
				res := res
				list = append(list, &res)
			}
		}
		return nil
	})
	return list, err
}
