package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/tu-usuario/gestion-pro/pkg/config"
	"github.com/tu-usuario/gestion-pro/pkg/logger"
)

// Runner de migraciones goose. Uso:
//
//	go run ./cmd/migrate -cmd up
//	go run ./cmd/migrate -cmd status
//	go run ./cmd/migrate -cmd down
func main() {
	cmd := flag.String("cmd", "up", "comando goose: up|down|status|version")
	dir := flag.String("dir", "db/migrations", "directorio de migraciones")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	db, err := sql.Open("pgx", cfg.DB.ConnectionString())
	if err != nil {
		log.Fatal().Err(err).Msg("abrir conexión a PostgreSQL")
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatal().Err(err).Msg("dialecto goose")
	}

	ctx := context.Background()
	if err := goose.RunContext(ctx, *cmd, db, *dir); err != nil {
		log.Fatal().Err(err).Str("cmd", *cmd).Msg("migración fallida")
	}

	log.Info().Str("cmd", *cmd).Str("dir", *dir).Msg("migración completada")
}
