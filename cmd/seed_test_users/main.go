package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/pageza/cookbook/backend/config"
	"github.com/pageza/cookbook/backend/internal/database"
	"github.com/pageza/cookbook/backend/internal/logging"
	"github.com/pageza/cookbook/backend/internal/seed"
)

func main() {
	password := flag.String("password", "testpassword123", "Password for every demo account")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: "console"})

	if cfg.IsProduction() {
		logging.Fatal().Msg("refusing to create demo accounts in production")
	}

	db, err := database.Open(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer database.Close(db)

	if err := database.RunMigrations(db, cfg.MigrationsDir); err != nil {
		logging.Fatal().Err(err).Msg("failed to run migrations")
	}

	inserted, err := seed.SeedDemoUsers(context.Background(), db, *password, bcrypt.DefaultCost)
	if err != nil {
		logging.Fatal().Err(err).Msg("seeding users failed")
	}

	fmt.Printf("Created %d demo users\n", inserted)
	for _, u := range seed.DemoUsers {
		fmt.Printf("  %-12s %-26s %s\n", u.Username, u.Email, u.Role)
	}
}
