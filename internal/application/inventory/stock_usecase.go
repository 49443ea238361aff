package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/buyitem-api/internal/application/dto"
	"github.com/jhoicas/buyitem-api/internal/application/ports"
	"github.com/jhoicas/buyitem-api/internal/domain"
	"github.com/jhoicas/buyitem-api/internal/domain/entity"
	"github.com/jhoicas/buyitem-api/internal/domain/inventory"
	"github.com/jhoicas/buyitem-api/internal/domain/repository"
	"github.com/jhoicas/buyitem-api/pkg/logger"
)

// StockUseCase aplica dispatch, block y restock sobre el stock de un item.
// Cada operación corre en su propia transacción: bloqueo de fila (SELECT FOR UPDATE),
// regla de dominio y escritura, con Commit o Rollback.
type StockUseCase struct {
	txRunner     ports.TxRunner
	itemRepo     repository.ItemRepository
	reservations repository.ReservationRepository
	observer     StockObserver
	log          *logger.Logger
}

// NewStockUseCase construye el caso de uso. observer y log pueden ser nil.
func NewStockUseCase(
	txRunner ports.TxRunner,
	itemRepo repository.ItemRepository,
	reservations repository.ReservationRepository,
	observer StockObserver,
	log *logger.Logger,
) *StockUseCase {
	if observer == nil {
		observer = noopObserver{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &StockUseCase{
		txRunner:     txRunner,
		itemRepo:     itemRepo,
		reservations: reservations,
		observer:     observer,
		log:          log,
	}
}

// Dispatch descuenta stock por venta o envío.
func (uc *StockUseCase) Dispatch(ctx context.Context, itemID, quantity int64) error {
	return uc.apply(ctx, inventory.OperationDispatch, itemID, quantity, nil)
}

// Block descuenta stock como reserva. Con userID registra la reserva a nombre del usuario,
// que debe existir.
func (uc *StockUseCase) Block(ctx context.Context, itemID, quantity int64, userID *int64) error {
	return uc.apply(ctx, inventory.OperationBlock, itemID, quantity, userID)
}

// Restock suma stock.
func (uc *StockUseCase) Restock(ctx context.Context, itemID, quantity int64) error {
	return uc.apply(ctx, inventory.OperationRestock, itemID, quantity, nil)
}

func (uc *StockUseCase) apply(ctx context.Context, operation string, itemID, quantity int64, userID *int64) (err error) {
	start := time.Now()
	var before, after int64
	defer func() {
		uc.observer.Observe(operation, quantity, err, time.Since(start))
		if err != nil {
			uc.log.Warn().Err(err).
				Str("operation", operation).
				Int64("item_id", itemID).
				Int64("quantity", quantity).
				Msg("operación de stock rechazada")
			return
		}
		ev := uc.log.Info().
			Str("operation", operation).
			Int64("item_id", itemID).
			Int64("quantity", quantity).
			Int64("stock_before", before).
			Int64("stock_after", after)
		if userID != nil {
			ev = ev.Int64("user_id", *userID)
		}
		ev.Msg("stock actualizado")
	}()

	// Validar antes de abrir la transacción
	if err := inventory.ValidateQuantity(quantity); err != nil {
		return err
	}

	return uc.txRunner.Run(ctx, func(repos ports.Repos) error {
		// Bloquea la fila del item hasta el Commit
		item, err := repos.Items.GetByIDForUpdate(ctx, itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrItemNotFound
		}
		if userID != nil {
			user, err := repos.Users.GetByID(ctx, *userID)
			if err != nil {
				return err
			}
			if user == nil {
				return domain.ErrUserNotFound
			}
		}

		var next int64
		if operation == inventory.OperationRestock {
			next, err = inventory.Increase(item.Stock, quantity)
		} else {
			next, err = inventory.Decrease(item.Stock, quantity)
		}
		if err != nil {
			return err
		}

		before = item.Stock
		item.Stock = next
		if err := repos.Items.UpdateStock(ctx, item); err != nil {
			return err
		}
		after = next

		if userID == nil {
			return nil
		}
		return repos.Reservations.Create(ctx, &entity.Reservation{
			ID:       uuid.New().String(),
			ItemID:   itemID,
			UserID:   *userID,
			Quantity: quantity,
		})
	})
}

// Reservations lista las reservas por usuario de un item. ErrItemNotFound si el item no existe.
func (uc *StockUseCase) Reservations(ctx context.Context, itemID int64) ([]dto.ReservationResponse, error) {
	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrItemNotFound
	}
	list, err := uc.reservations.ListByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReservationResponse, 0, len(list))
	for _, r := range list {
		out = append(out, dto.ReservationResponse{
			ID:        r.ID,
			ItemUID:   r.ItemID,
			UserUID:   r.UserID,
			Quantity:  r.Quantity,
			CreatedAt: r.CreatedAt,
		})
	}
	return out, nil
}
