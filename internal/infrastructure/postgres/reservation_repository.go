package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/buyitem-api/internal/domain"
	"github.com/jhoicas/buyitem-api/internal/domain/entity"
	"github.com/jhoicas/buyitem-api/internal/domain/repository"
)

var _ repository.ReservationRepository = (*ReservationRepo)(nil)

// ReservationRepo persiste item_reservations.
type ReservationRepo struct {
	q Querier
}

// NewReservationRepository construye el adaptador de reservas.
func NewReservationRepository(q Querier) *ReservationRepo {
	return &ReservationRepo{q: q}
}

// Create inserta la reserva. Una FK rota se traduce a ErrNotFound.
func (r *ReservationRepo) Create(ctx context.Context, res *entity.Reservation) error {
	err := r.q.QueryRow(ctx,
		`INSERT INTO item_reservations (id, item_id, user_id, quantity) VALUES ($1, $2, $3, $4) RETURNING created_at`,
		res.ID, res.ItemID, res.UserID, res.Quantity,
	).Scan(&res.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: item %d o usuario %d", domain.ErrNotFound, res.ItemID, res.UserID)
		}
		return fmt.Errorf("insert reservation: %w", err)
	}
	return nil
}

// ListByItem lista las reservas de un item en orden de creación.
func (r *ReservationRepo) ListByItem(ctx context.Context, itemID int64) ([]*entity.Reservation, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, item_id, user_id, quantity, created_at FROM item_reservations WHERE item_id = $1 ORDER BY created_at, id`,
		itemID,
	)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Reservation
	for rows.Next() {
		var res entity.Reservation
		if err := rows.Scan(&res.ID, &res.ItemID, &res.UserID, &res.Quantity, &res.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan reservation: %w", err)
		}
		list = append(list, &res)
	}
	return list, rows.Err()
}
