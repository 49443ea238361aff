package postgres_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/buyitem-api/internal/application/dto"
	"github.com/jhoicas/buyitem-api/internal/application/ports"
	"github.com/jhoicas/buyitem-api/internal/application/usecase"
	"github.com/jhoicas/buyitem-api/internal/domain"
	"github.com/jhoicas/buyitem-api/internal/domain/entity"
	"github.com/jhoicas/buyitem-api/internal/infrastructure/postgres"
	"github.com/jhoicas/buyitem-api/pkg/config"
)

// openTestPool conecta a TEST_DATABASE_URL y recrea el esquema desde migrations/.
// Sin la variable el test se omite.
func openTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL no definido; se omiten tests de integración con PostgreSQL")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: dsn, MaxConns: 4})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	down, err := os.ReadFile(filepath.Join("..", "..", "..", "migrations", "000001_init.down.sql"))
	require.NoError(t, err)
	up, err := os.ReadFile(filepath.Join("..", "..", "..", "migrations", "000001_init.up.sql"))
	require.NoError(t, err)

	_, err = pool.Exec(ctx, string(down))
	require.NoError(t, err)
	_, err = pool.Exec(ctx, string(up))
	require.NoError(t, err)
	return pool
}

// ─── Items ───────────────────────────────────────────────────────────────────

func TestItemRepo_CRUD(t *testing.T) {
	pool := openTestPool(t)
	ctx := context.Background()
	repo := postgres.NewItemRepository(pool)

	item := &entity.Item{
		Name:     "widget",
		State:    "nuevo",
		Market:   "retail",
		Stock:    10,
		PriceTag: decimal.RequireFromString("5.00"),
	}
	require.NoError(t, repo.Create(ctx, item))
	assert.NotZero(t, item.ID)
	assert.False(t, item.CreatedAt.IsZero())

	got, err := repo.GetByID(ctx, item.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "widget", got.Name)
	assert.True(t, got.PriceTag.Equal(decimal.RequireFromString("5")))

	err = repo.Create(ctx, &entity.Item{Name: "widget"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	got.State = "usado"
	require.NoError(t, repo.Update(ctx, got))

	list, err := repo.GetByIDs(ctx, []int64{item.ID, 9999})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "usado", list[0].State)

	require.NoError(t, repo.Delete(ctx, item.ID))
	assert.ErrorIs(t, repo.Delete(ctx, item.ID), domain.ErrItemNotFound)

	missing, err := repo.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestItemRepo_UpdateStockRespetaCheck(t *testing.T) {
	pool := openTestPool(t)
	ctx := context.Background()
	repo := postgres.NewItemRepository(pool)

	item := &entity.Item{Name: "tornillo", Stock: 3}
	require.NoError(t, repo.Create(ctx, item))

	item.Stock = -1
	assert.ErrorIs(t, repo.UpdateStock(ctx, item), domain.ErrInsufficientStock)

	item.Stock = 7
	require.NoError(t, repo.UpdateStock(ctx, item))
	got, err := repo.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.Stock)
}

func TestItemRepo_PrecioFueraDeRango(t *testing.T) {
	pool := openTestPool(t)
	repo := postgres.NewItemRepository(pool)

	err := repo.Create(context.Background(), &entity.Item{
		Name:     "caro",
		PriceTag: decimal.RequireFromString("10000000000000.00"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ─── Transacciones y reservas ────────────────────────────────────────────────

func TestItemUseCase_UpdateListConcurrenteOrdenInverso(t *testing.T) {
	pool := openTestPool(t)
	ctx := context.Background()
	uc := usecase.NewItemUseCase(postgres.NewItemRepository(pool), postgres.NewTxRunner(pool))

	a, err := uc.Create(ctx, dto.CreateItemRequest{Name: "a"})
	require.NoError(t, err)
	b, err := uc.Create(ctx, dto.CreateItemRequest{Name: "b"})
	require.NoError(t, err)

	const rounds = 25
	errs := make(chan error, 2*rounds)
	var wg sync.WaitGroup
	for i := 0; i < rounds; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := uc.UpdateList(ctx, []int64{a.ItemUID, b.ItemUID}, dto.UpdateItemRequest{Market: strPtr("retail")})
			errs <- err
		}()
		go func() {
			defer wg.Done()
			_, err := uc.UpdateList(ctx, []int64{b.ItemUID, a.ItemUID}, dto.UpdateItemRequest{Market: strPtr("online")})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err, "lotes con IDs en orden inverso no deben abortar por deadlock")
	}
}

func strPtr(s string) *string { return &s }

func TestTxRunner_RollbackDescartaCambios(t *testing.T) {
	pool := openTestPool(t)
	ctx := context.Background()
	items := postgres.NewItemRepository(pool)
	item := &entity.Item{Name: "tuerca", Stock: 5}
	require.NoError(t, items.Create(ctx, item))

	boom := errors.New("boom")
	err := postgres.NewTxRunner(pool).Run(ctx, func(r ports.Repos) error {
		locked, err := r.Items.GetByIDForUpdate(ctx, item.ID)
		if err != nil {
			return err
		}
		locked.Stock = 0
		if err := r.Items.UpdateStock(ctx, locked); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := items.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.Stock)
}

func TestReservationRepo_CreateYListByItem(t *testing.T) {
	pool := openTestPool(t)
	ctx := context.Background()
	item := &entity.Item{Name: "arandela", Stock: 5}
	require.NoError(t, postgres.NewItemRepository(pool).Create(ctx, item))
	user := &entity.User{FirstName: "Ana", LastName: "Gómez"}
	require.NoError(t, postgres.NewUserRepository(pool).Create(ctx, user))

	repo := postgres.NewReservationRepository(pool)
	res := &entity.Reservation{ID: uuid.NewString(), ItemID: item.ID, UserID: user.ID, Quantity: 2}
	require.NoError(t, repo.Create(ctx, res))

	err := repo.Create(ctx, &entity.Reservation{ID: uuid.NewString(), ItemID: item.ID, UserID: 9999, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := repo.ListByItem(ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, user.ID, list[0].UserID)
	assert.Equal(t, int64(2), list[0].Quantity)
}

// ─── Usuarios ────────────────────────────────────────────────────────────────

func TestUserRepo_CRUD(t *testing.T) {
	pool := openTestPool(t)
	ctx := context.Background()
	repo := postgres.NewUserRepository(pool)

	user := &entity.User{FirstName: "Luis", LastName: "Pérez"}
	require.NoError(t, repo.Create(ctx, user))

	user.LastName = "Ramírez"
	require.NoError(t, repo.Update(ctx, user))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Ramírez", all[0].LastName)

	require.NoError(t, repo.Delete(ctx, user.ID))
	assert.ErrorIs(t, repo.Delete(ctx, user.ID), domain.ErrUserNotFound)
	assert.ErrorIs(t, repo.Update(ctx, user), domain.ErrNotFound)
}
