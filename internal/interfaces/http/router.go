package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/buyitem-api/internal/application/inventory"
	"github.com/jhoicas/buyitem-api/internal/application/usecase"
	"github.com/jhoicas/buyitem-api/pkg/jwt"
	"github.com/jhoicas/buyitem-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ItemUC   *usecase.ItemUseCase
	UserUC   *usecase.UserUseCase
	StockUC  *inventory.StockUseCase
	ReportUC *inventory.ReportUseCase
	Storage  Pinger
	// Metrics handler de /metrics; nil lo deshabilita.
	Metrics fiber.Handler
	// JWTSecret vacío deja las rutas sin autenticación.
	JWTSecret string
	Log       *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Log != nil {
		app.Use(RequestLogger(deps.Log))
	}

	// Público
	app.Get("/health", Health(deps.Storage))
	if deps.Metrics != nil {
		app.Get("/metrics", deps.Metrics)
	}

	// Con JWT_SECRET: lectura para cualquier rol, escritura CRUD solo admin,
	// movimientos de stock admin u operator.
	var auth, read, write, stock fiber.Handler = passthrough, passthrough, passthrough, passthrough
	if deps.JWTSecret != "" {
		auth = AuthMiddleware(deps.JWTSecret)
		read = RequireRole(jwt.RoleAdmin, jwt.RoleOperator)
		write = RequireRole(jwt.RoleAdmin)
		stock = RequireRole(jwt.RoleAdmin, jwt.RoleOperator)
	}

	// Items. Las rutas literales van antes de /:id.
	items := app.Group("/items", auth)
	itemHandler := NewItemHandler(deps.ItemUC)
	inventoryHandler := NewInventoryHandler(deps.StockUC, deps.ReportUC)
	items.Post("/", write, itemHandler.Create)
	items.Get("/all", read, itemHandler.List)
	items.Get("/getItems", read, itemHandler.GetByIDs)
	items.Get("/report", read, inventoryHandler.StockReport)
	items.Patch("/updateItems", write, itemHandler.UpdateList)
	items.Get("/:id", read, itemHandler.GetByID)
	items.Patch("/:id", write, itemHandler.Update)
	items.Delete("/:id", write, itemHandler.Delete)
	items.Get("/:id/reservations", read, inventoryHandler.Reservations)
	items.Post("/:id/dispatch", stock, inventoryHandler.Dispatch)
	items.Post("/:id/block", stock, inventoryHandler.Block)
	items.Post("/:id/restock", stock, inventoryHandler.Restock)
	items.Post("/:id/:user/block", stock, inventoryHandler.BlockForUser)

	// Users
	users := app.Group("/user", auth)
	userHandler := NewUserHandler(deps.UserUC)
	users.Post("/", write, userHandler.Create)
	users.Get("/all", read, userHandler.List)
	users.Get("/getUsers", read, userHandler.GetByIDs)
	users.Get("/:id", read, userHandler.GetByID)
	users.Patch("/:id", write, userHandler.Update)
}
