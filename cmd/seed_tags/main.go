package main

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"

	"github.com/pageza/cookbook/backend/config"
	"github.com/pageza/cookbook/backend/internal/database"
	"github.com/pageza/cookbook/backend/internal/logging"
	"github.com/pageza/cookbook/backend/internal/seed"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: "console"})

	db, err := database.Open(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer database.Close(db)

	if err := database.RunMigrations(db, cfg.MigrationsDir); err != nil {
		logging.Fatal().Err(err).Msg("failed to run migrations")
	}

	inserted, err := seed.SeedTags(context.Background(), db)
	if err != nil {
		logging.Fatal().Err(err).Msg("seeding tags failed")
	}
	fmt.Printf("Seeded %d of %d default tags\n", inserted, len(seed.DefaultTags))
	if inserted > 0 {
		logging.Warn().Int64("inserted", inserted).Msg("send SIGHUP to running API instances to pick up the new tags")
	}
}
