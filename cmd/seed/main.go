// seed carga items y usuarios de demostración en PostgreSQL y, si JWT_SECRET
// está definido, imprime un token admin para probar la API. Es idempotente:
// omite items con nombre existente y usuarios con el mismo nombre y apellido.
//
// Uso: go run ./cmd/seed [-catalog items.csv] [-charset latin1]
// El CSV tiene cabecera name,state,description,market,stock,priceTag. Sin -catalog
// se usa el catálogo embebido.
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/buyitem-api/internal/application/dto"
	"github.com/jhoicas/buyitem-api/internal/application/usecase"
	"github.com/jhoicas/buyitem-api/internal/domain"
	"github.com/jhoicas/buyitem-api/internal/infrastructure/postgres"
	"github.com/jhoicas/buyitem-api/pkg/config"
	"github.com/jhoicas/buyitem-api/pkg/jwt"
	"github.com/jhoicas/buyitem-api/pkg/logger"
)

const defaultCatalog = `name,state,description,market,stock,priceTag
widget,nuevo,Widget estándar,retail,10,5.00
tornillo M6,nuevo,Caja x100,mayorista,250,12.50
taladro,usado,Taladro percutor 600W,online,3,189.90
`

var demoUsers = []dto.CreateUserRequest{
	{FirstName: "Ana", LastName: "Gómez"},
	{FirstName: "Luis", LastName: "Pérez"},
}

func main() {
	catalogPath := flag.String("catalog", "", "CSV con items a cargar")
	charset := flag.String("charset", "utf-8", "codificación del CSV: utf-8 | latin1")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})
	if err := requirePostgres(cfg.Storage); err != nil {
		log.Fatal().Err(err).Msg("seed")
	}

	var src io.Reader = strings.NewReader(defaultCatalog)
	if *catalogPath != "" {
		f, err := os.Open(*catalogPath)
		if err != nil {
			log.Fatal().Err(err).Str("file", *catalogPath).Msg("abrir catálogo")
		}
		defer f.Close()
		src = f
	}
	items, err := parseCatalog(src, *charset)
	if err != nil {
		log.Fatal().Err(err).Msg("leer catálogo")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	itemUC := usecase.NewItemUseCase(postgres.NewItemRepository(pool), postgres.NewTxRunner(pool))
	userUC := usecase.NewUserUseCase(postgres.NewUserRepository(pool))

	created, skipped := 0, 0
	for _, in := range items {
		_, err := itemUC.Create(ctx, in)
		switch {
		case err == nil:
			created++
		case errors.Is(err, domain.ErrDuplicate):
			skipped++
		default:
			log.Fatal().Err(err).Str("item", in.Name).Msg("crear item")
		}
	}
	existing, err := userUC.List(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("listar usuarios")
	}
	pending := missingUsers(demoUsers, existing)
	for _, in := range pending {
		if _, err := userUC.Create(ctx, in); err != nil {
			log.Fatal().Err(err).Msg("crear usuario")
		}
	}
	log.Info().Int("items", created).Int("duplicados", skipped).Int("usuarios", len(pending)).Msg("seed completado")

	if cfg.JWT.Enabled() {
		tok, err := jwt.Generate(cfg.JWT.Secret, "seed-admin", jwt.RoleAdmin, cfg.JWT.Issuer, cfg.JWT.Expiration)
		if err != nil {
			log.Fatal().Err(err).Msg("generar token")
		}
		fmt.Printf("Authorization: Bearer %s\n", tok)
	}
}

// requirePostgres rechaza drivers cuyo contenido no sobrevive al proceso de seed.
func requirePostgres(cfg config.StorageConfig) error {
	if cfg.Driver != config.StorageDriverPostgres {
		return fmt.Errorf("seed requiere STORAGE_DRIVER=postgres, no %q: el almacenamiento en memoria se pierde al terminar", cfg.Driver)
	}
	return nil
}

// missingUsers devuelve los usuarios de want que aún no existen (mismo nombre y apellido).
func missingUsers(want []dto.CreateUserRequest, existing []dto.UserResponse) []dto.CreateUserRequest {
	have := make(map[[2]string]bool, len(existing))
	for _, u := range existing {
		have[[2]string{u.FirstName, u.LastName}] = true
	}
	var out []dto.CreateUserRequest
	for _, u := range want {
		if !have[[2]string{u.FirstName, u.LastName}] {
			out = append(out, u)
		}
	}
	return out
}

// parseCatalog lee el CSV de items. charset latin1 decodifica ISO-8859-1 (exportes de hojas de cálculo).
func parseCatalog(r io.Reader, charset string) ([]dto.CreateItemRequest, error) {
	switch strings.ToLower(strings.TrimSpace(charset)) {
	case "", "utf-8", "utf8":
	case "latin1", "iso-8859-1", "iso8859-1":
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	default:
		return nil, fmt.Errorf("charset no soportado: %q", charset)
	}

	rows, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	out := make([]dto.CreateItemRequest, 0, len(rows)-1)
	for i, row := range rows[1:] {
		line := i + 2
		if len(row) != 6 {
			return nil, fmt.Errorf("línea %d: se esperaban 6 columnas, hay %d", line, len(row))
		}
		stock, err := strconv.ParseInt(strings.TrimSpace(row[4]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("línea %d: stock inválido %q", line, row[4])
		}
		price, err := decimal.NewFromString(strings.TrimSpace(row[5]))
		if err != nil {
			return nil, fmt.Errorf("línea %d: priceTag inválido %q", line, row[5])
		}
		out = append(out, dto.CreateItemRequest{
			Name:        strings.TrimSpace(row[0]),
			State:       strings.TrimSpace(row[1]),
			Description: strings.TrimSpace(row[2]),
			Market:      strings.TrimSpace(row[3]),
			Stock:       stock,
			PriceTag:    price,
		})
	}
	return out, nil
}
