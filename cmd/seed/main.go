package main

import (
	"context"
	"flag"
	"math/rand/v2"
	"os"
	"time"

	"github.com/dafibh/finboard/finboard-backend/internal/config"
	"github.com/dafibh/finboard/finboard-backend/internal/domain"
	"github.com/dafibh/finboard/finboard-backend/internal/repository/postgres"
	"github.com/dafibh/finboard/finboard-backend/internal/repository/sqlite"
	"github.com/dafibh/finboard/finboard-backend/internal/seed"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	userID = flag.String("user", seed.DefaultUserID, "User ID that owns the generated ledger")
	days   = flag.Int("days", seed.DefaultDays, "Number of days before today to generate transactions for")
	seedN  = flag.Uint64("seed", uint64(time.Now().UnixNano()), "Random seed")
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	flag.Parse()

	cfg, err := config.LoadStorage()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if cfg.IsProduction() {
		log.Fatal().Msg("Refusing to seed a production database")
	}

	ctx := context.Background()

	var writer domain.LedgerWriter
	if cfg.StorageDriver == config.StorageSQLite {
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to open database")
		}
		defer db.Close()
		writer = sqlite.NewLedgerRepository(db)
	} else {
		if err := postgres.RunMigrations(cfg.DatabaseURL); err != nil {
			log.Fatal().Err(err).Msg("Failed to run migrations")
		}
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to database")
		}
		defer pool.Close()
		writer = postgres.NewLedgerRepository(pool)
	}

	ledger := seed.Generate(rand.New(rand.NewPCG(*seedN, *seedN)), *userID, time.Now(), *days)
	if err := seed.Write(ctx, writer, ledger); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed database")
	}

	log.Info().
		Str("user_id", *userID).
		Int("accounts", len(ledger.Accounts)).
		Int("categories", len(ledger.Categories)).
		Int("transactions", len(ledger.Transactions)).
		Msg("Seeded database")
}
