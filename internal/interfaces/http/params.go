package http

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// HeaderMissingIDs lista, separados por coma, los IDs pedidos en una lectura por lote que no existen.
const HeaderMissingIDs = "X-Missing-Ids"

// paramID lee un parámetro de ruta numérico positivo.
func paramID(c *fiber.Ctx, name string) (int64, error) {
	raw := c.Params(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s inválido: %q", name, raw)
	}
	return id, nil
}

// queryIDList lee idList como lista separada por comas y/o parámetro repetido:
// ?idList=1,2&idList=3 → [1 2 3].
func queryIDList(c *fiber.Ctx) ([]int64, error) {
	var ids []int64
	for _, raw := range c.Context().QueryArgs().PeekMulti("idList") {
		for _, part := range strings.Split(string(raw), ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseInt(part, 10, 64)
			if err != nil || id <= 0 {
				return nil, fmt.Errorf("idList contiene un id inválido: %q", part)
			}
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func setMissingIDs(c *fiber.Ctx, missing []int64) {
	if len(missing) == 0 {
		return
	}
	parts := make([]string, len(missing))
	for i, id := range missing {
		parts[i] = strconv.FormatInt(id, 10)
	}
	c.Set(HeaderMissingIDs, strings.Join(parts, ","))
}
