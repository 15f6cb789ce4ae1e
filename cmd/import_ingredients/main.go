package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/pageza/cookbook/backend/config"
	"github.com/pageza/cookbook/backend/internal/database"
	"github.com/pageza/cookbook/backend/internal/logging"
	"github.com/pageza/cookbook/backend/internal/seed"
)

func main() {
	path := flag.String("file", "data/ingredients.csv", "CSV file with name,measurement_unit rows")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [-file path]\n\n", os.Args[0])
		fmt.Fprintln(flag.CommandLine.Output(), "Imports ingredients, skipping rows that already exist. Running API")
		fmt.Fprintln(flag.CommandLine.Output(), "instances keep their ingredient list until they receive SIGHUP.")
		fmt.Fprintln(flag.CommandLine.Output())
		flag.PrintDefaults()
	}
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: "console"})

	f, err := os.Open(*path)
	if err != nil {
		logging.Fatal().Err(err).Str("file", *path).Msg("failed to open ingredients file")
	}
	defer f.Close()

	db, err := database.Open(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer database.Close(db)

	if err := database.RunMigrations(db, cfg.MigrationsDir); err != nil {
		logging.Fatal().Err(err).Msg("failed to run migrations")
	}

	inserted, err := seed.ImportIngredients(context.Background(), db, f)
	if err != nil {
		logging.Fatal().Err(err).Msg("import failed")
	}
	fmt.Printf("Imported %d ingredients from %s\n", inserted, *path)
	if inserted > 0 {
		logging.Warn().Int64("inserted", inserted).Msg("send SIGHUP to running API instances to pick up the new ingredients")
	}
}
