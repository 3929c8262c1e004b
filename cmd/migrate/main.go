package main

import (
	"flag"
	"os"

	"github.com/dafibh/finboard/finboard-backend/internal/config"
	"github.com/dafibh/finboard/finboard-backend/internal/repository/postgres"
	"github.com/dafibh/finboard/finboard-backend/internal/repository/sqlite"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	flag.Usage = func() {
		os.Stderr.WriteString("usage: migrate [up|down|version]\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	command := "up"
	if flag.NArg() > 0 {
		command = flag.Arg(0)
	}

	cfg, err := config.LoadStorage()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if cfg.StorageDriver == config.StorageSQLite {
		if command != "up" {
			log.Fatal().Str("command", command).Msg("SQLite storage only supports up")
		}
		if err := sqlite.RunMigrations(cfg.SQLitePath); err != nil {
			log.Fatal().Err(err).Msg("Failed to run migrations")
		}
		log.Info().Str("path", cfg.SQLitePath).Msg("Migrations applied")
		return
	}

	switch command {
	case "up":
		if err := postgres.RunMigrations(cfg.DatabaseURL); err != nil {
			log.Fatal().Err(err).Msg("Failed to run migrations")
		}
		log.Info().Msg("Migrations applied")
	case "down":
		if err := postgres.RollbackMigrations(cfg.DatabaseURL); err != nil {
			log.Fatal().Err(err).Msg("Failed to roll back migration")
		}
		log.Info().Msg("Rolled back one migration")
	case "version":
		version, dirty, err := postgres.MigrationVersion(cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to read migration version")
		}
		log.Info().Uint("version", version).Bool("dirty", dirty).Msg("Migration version")
	default:
		flag.Usage()
		os.Exit(2)
	}
}
