package repository

import (
	"context"

	"github.com/jhoicas/buyitem-api/internal/domain/entity"
)

// ReservationRepository persiste las reservas por usuario generadas por block.
type ReservationRepository interface {
	Create(ctx context.Context, reservation *entity.Reservation) error
	ListByItem(ctx context.Context, itemID int64) ([]*entity.Reservation, error)
}
