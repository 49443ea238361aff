package inventory

import (
	"context"

	"github.com/jhoicas/buyitem-api/internal/application/dto"
	"github.com/jhoicas/buyitem-api/internal/domain"
	"github.com/jhoicas/buyitem-api/internal/domain/inventory"
)

// ApplyFromRequest adapta el cuerpo HTTP {quantity} a la operación indicada (dispatch, block o restock).
// userID solo es válido para block.
func (uc *StockUseCase) ApplyFromRequest(ctx context.Context, operation string, itemID int64, userID *int64, in dto.StockQuantityRequest) error {
	switch operation {
	case inventory.OperationDispatch:
		return uc.Dispatch(ctx, itemID, in.Quantity)
	case inventory.OperationBlock:
		return uc.Block(ctx, itemID, in.Quantity, userID)
	case inventory.OperationRestock:
		return uc.Restock(ctx, itemID, in.Quantity)
	}
	return domain.ErrInvalidInput
}
