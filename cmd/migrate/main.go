package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/jhoicas/buyitem-api/pkg/config"
	"github.com/jhoicas/buyitem-api/pkg/logger"
)

func main() {
	flag.Parse()
	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})

	m, err := migrate.New("file://"+cfg.Migration.Path, cfg.DB.ConnectionString())
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Migration.Path).Msg("inicializar migraciones")
	}
	defer m.Close()
	m.Log = &migrateLogger{log: log, verbose: cfg.Log.Level == "debug" || cfg.Log.Level == "trace"}

	switch args[0] {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatal().Err(err).Msg("migrate up")
		}
		log.Info().Msg("migraciones aplicadas")

	case "down":
		steps, err := parseSteps(args[1:])
		if err != nil {
			log.Fatal().Err(err).Msg("migrate down")
		}
		if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatal().Err(err).Msg("migrate down")
		}
		log.Info().Int("steps", steps).Msg("migraciones revertidas")

	case "version":
		v, dirty, err := m.Version()
		if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
			log.Fatal().Err(err).Msg("migrate version")
		}
		fmt.Printf("version: %d  dirty: %v\n", v, dirty)

	case "force":
		if len(args) < 2 {
			log.Fatal().Msg("force: falta la versión")
		}
		v, err := strconv.Atoi(args[1])
		if err != nil {
			log.Fatal().Str("version", args[1]).Msg("force: versión inválida")
		}
		if err := m.Force(v); err != nil {
			log.Fatal().Err(err).Msg("migrate force")
		}
		log.Info().Int("version", v).Msg("versión forzada")

	default:
		usage()
		os.Exit(1)
	}
}

// parseSteps lee el número de pasos de "down"; por defecto 1.
func parseSteps(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return 0, fmt.Errorf("número de pasos inválido %q", args[0])
	}
	return n, nil
}

// migrateLogger adapta el logger de la app a migrate.Logger.
type migrateLogger struct {
	log     *logger.Logger
	verbose bool
}

func (l *migrateLogger) Printf(format string, v ...any) {
	l.log.Info().Msgf(format, v...)
}

func (l *migrateLogger) Verbose() bool { return l.verbose }

func usage() {
	fmt.Fprintln(os.Stderr, `Uso: migrate <comando> [args]

Comandos:
  up           Aplica todas las migraciones pendientes
  down [N]     Revierte N migraciones (por defecto 1)
  version      Muestra la versión actual
  force <V>    Fuerza la versión (estado dirty)

Entorno:
  DATABASE_URL o DB_HOST/DB_PORT/DB_USER/DB_PASSWORD/DB_NAME
  MIGRATIONS_PATH   Directorio de migraciones (por defecto ./migrations)`)
}
