package usecase

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/buyitem-api/internal/application/dto"
	"github.com/jhoicas/buyitem-api/internal/application/ports"
	"github.com/jhoicas/buyitem-api/internal/domain"
	"github.com/jhoicas/buyitem-api/internal/domain/entity"
	"github.com/jhoicas/buyitem-api/internal/domain/repository"
)

// ItemUseCase casos de uso CRUD para items. El stock también se mueve vía inventory.StockUseCase.
type ItemUseCase struct {
	repo     repository.ItemRepository
	txRunner ports.TxRunner
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(repo repository.ItemRepository, txRunner ports.TxRunner) *ItemUseCase {
	return &ItemUseCase{repo: repo, txRunner: txRunner}
}

// Create crea un nuevo item. ErrDuplicate si el nombre ya existe.
func (uc *ItemUseCase) Create(ctx context.Context, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput)
	}
	if err := validateStockAndPrice(in.Stock, in.PriceTag); err != nil {
		return nil, err
	}
	item := &entity.Item{
		Name:        name,
		State:       strings.TrimSpace(in.State),
		Description: strings.TrimSpace(in.Description),
		Market:      strings.TrimSpace(in.Market),
		Stock:       in.Stock,
		PriceTag:    in.PriceTag,
	}
	if err := uc.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// GetByID obtiene un item por ID. ErrItemNotFound si no existe.
func (uc *ItemUseCase) GetByID(ctx context.Context, id int64) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrItemNotFound
	}
	return toItemResponse(item), nil
}

// GetByIDs devuelve los items encontrados y, aparte, los IDs que no existen (sin fallar).
func (uc *ItemUseCase) GetByIDs(ctx context.Context, ids []int64) (*dto.ItemBatchResponse, error) {
	ids = uniqueIDs(ids)
	list, err := uc.repo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	found := make(map[int64]bool, len(list))
	out := &dto.ItemBatchResponse{Items: make([]dto.ItemResponse, 0, len(list))}
	for _, it := range list {
		found[it.ID] = true
		out.Items = append(out.Items, *toItemResponse(it))
	}
	out.Missing = missingIDs(ids, found)
	return out, nil
}

// List lista todos los items ordenados por ID.
func (uc *ItemUseCase) List(ctx context.Context) ([]dto.ItemResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ItemResponse, 0, len(list))
	for _, it := range list {
		items = append(items, *toItemResponse(it))
	}
	return items, nil
}

// Update aplica un merge sobre el item: solo sobrescriben los campos presentes
// (strings además no vacíos). La fila queda bloqueada durante el read-modify-write.
func (uc *ItemUseCase) Update(ctx context.Context, id int64, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	if err := validatePatch(in); err != nil {
		return nil, err
	}
	var out *dto.ItemResponse
	err := uc.txRunner.Run(ctx, func(repos ports.Repos) error {
		updated, err := mergeAndSave(ctx, repos.Items, id, in)
		if err != nil {
			return err
		}
		out = toItemResponse(updated)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateList aplica el mismo merge a todos los IDs dentro de una sola transacción.
// Si algún ID no existe no se modifica ningún item (ErrItemNotFound).
// Las filas se bloquean en orden ascendente de ID y la respuesta sigue ese orden.
func (uc *ItemUseCase) UpdateList(ctx context.Context, ids []int64, in dto.UpdateItemRequest) ([]dto.ItemResponse, error) {
	ids = uniqueIDs(ids)
	slices.Sort(ids)
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: idList vacío", domain.ErrInvalidInput)
	}
	if err := validatePatch(in); err != nil {
		return nil, err
	}
	out := make([]dto.ItemResponse, 0, len(ids))
	err := uc.txRunner.Run(ctx, func(repos ports.Repos) error {
		for _, id := range ids {
			updated, err := mergeAndSave(ctx, repos.Items, id, in)
			if err != nil {
				return err
			}
			out = append(out, *toItemResponse(updated))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete elimina un item por ID. ErrItemNotFound si no existe.
func (uc *ItemUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}

func mergeAndSave(ctx context.Context, repo repository.ItemRepository, id int64, in dto.UpdateItemRequest) (*entity.Item, error) {
	item, err := repo.GetByIDForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("%w: id %d", domain.ErrItemNotFound, id)
	}
	applyItemPatch(item, in)
	if err := repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// applyItemPatch copia campo a campo lo que trae el request parcial.
func applyItemPatch(item *entity.Item, in dto.UpdateItemRequest) {
	if v, ok := nonBlank(in.Name); ok {
		item.Name = v
	}
	if v, ok := nonBlank(in.State); ok {
		item.State = v
	}
	if v, ok := nonBlank(in.Description); ok {
		item.Description = v
	}
	if v, ok := nonBlank(in.Market); ok {
		item.Market = v
	}
	if in.Stock != nil {
		item.Stock = *in.Stock
	}
	if in.PriceTag != nil {
		item.PriceTag = *in.PriceTag
	}
}

func validatePatch(in dto.UpdateItemRequest) error {
	stock := int64(0)
	if in.Stock != nil {
		stock = *in.Stock
	}
	price := decimal.Zero
	if in.PriceTag != nil {
		price = *in.PriceTag
	}
	return validateStockAndPrice(stock, price)
}

// Límites de la columna price_tag NUMERIC(14,2).
const priceScale = 2

var maxPriceTag = decimal.New(1, 12)

func validateStockAndPrice(stock int64, price decimal.Decimal) error {
	if stock < 0 {
		return fmt.Errorf("%w: stock no puede ser negativo", domain.ErrInvalidInput)
	}
	if price.IsNegative() {
		return fmt.Errorf("%w: priceTag no puede ser negativo", domain.ErrInvalidInput)
	}
	if !price.Equal(price.Round(priceScale)) {
		return fmt.Errorf("%w: priceTag admite como máximo %d decimales", domain.ErrInvalidInput, priceScale)
	}
	if price.GreaterThanOrEqual(maxPriceTag) {
		return fmt.Errorf("%w: priceTag debe ser menor que %s", domain.ErrInvalidInput, maxPriceTag)
	}
	return nil
}

func toItemResponse(it *entity.Item) *dto.ItemResponse {
	if it == nil {
		return nil
	}
	return &dto.ItemResponse{
		ItemUID:     it.ID,
		Name:        it.Name,
		State:       it.State,
		Description: it.Description,
		Market:      it.Market,
		Stock:       it.Stock,
		PriceTag:    it.PriceTag,
		CreatedAt:   it.CreatedAt,
		UpdatedAt:   it.UpdatedAt,
	}
}
