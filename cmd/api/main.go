package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/buyitem-api/internal/application/inventory"
	"github.com/jhoicas/buyitem-api/internal/application/ports"
	"github.com/jhoicas/buyitem-api/internal/application/usecase"
	"github.com/jhoicas/buyitem-api/internal/domain/repository"
	"github.com/jhoicas/buyitem-api/internal/infrastructure/memory"
	"github.com/jhoicas/buyitem-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/buyitem-api/internal/infrastructure/pdf"
	"github.com/jhoicas/buyitem-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/buyitem-api/internal/interfaces/http"
	"github.com/jhoicas/buyitem-api/pkg/config"
	"github.com/jhoicas/buyitem-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

// storage agrupa los puertos de persistencia del backend elegido.
type storage struct {
	items        repository.ItemRepository
	users        repository.UserRepository
	reservations repository.ReservationRepository
	tx           ports.TxRunner
	pinger       httpRouter.Pinger
	close        func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st, err := openStorage(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer st.close()

	var observer inventory.StockObserver
	var metricsHandler fiber.Handler
	if cfg.Metrics.Enabled {
		observer = metrics.NewStockMetrics(prometheus.DefaultRegisterer)
		metricsHandler = adaptor.HTTPHandler(promhttp.Handler())
	}

	itemUC := usecase.NewItemUseCase(st.items, st.tx)
	userUC := usecase.NewUserUseCase(st.users)
	stockUC := inventory.NewStockUseCase(st.tx, st.items, st.reservations, observer, log)
	reportUC := inventory.NewReportUseCase(
		st.items,
		infrapdf.NewMarotoStockReportGenerator(cfg.App.Name),
		int64(cfg.Report.LowStockThreshold),
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "BuyItem API",
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("swagger deshabilitado: archivo no encontrado")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		ItemUC:    itemUC,
		UserUC:    userUC,
		StockUC:   stockUC,
		ReportUC:  reportUC,
		Storage:   st.pinger,
		Metrics:   metricsHandler,
		JWTSecret: cfg.JWT.Secret,
		Log:       log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func openStorage(ctx context.Context, cfg *config.Config) (*storage, error) {
	if cfg.Storage.Driver == config.StorageDriverMemory {
		store := memory.NewStore()
		return &storage{
			items:        store.Items(),
			users:        store.Users(),
			reservations: store.Reservations(),
			tx:           store,
			pinger:       store,
			close:        func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	return &storage{
		items:        postgres.NewItemRepository(pool),
		users:        postgres.NewUserRepository(pool),
		reservations: postgres.NewReservationRepository(pool),
		tx:           postgres.NewTxRunner(pool),
		pinger:       pool,
		close:        pool.Close,
	}, nil
}
