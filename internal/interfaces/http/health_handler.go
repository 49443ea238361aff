package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Pinger es el contrato mínimo que necesita /health para verificar el almacenamiento.
// Lo implementan *pgxpool.Pool y *memory.Store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Health godoc
// @Summary      Estado del servicio
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /health [get]
func Health(p Pinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if p != nil {
			ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
			defer cancel()
			if err := p.Ping(ctx); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "storage": err.Error()})
			}
		}
		return c.JSON(fiber.Map{"status": "ok"})
	}
}
