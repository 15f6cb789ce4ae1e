package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/pageza/cookbook/backend/config"
	"github.com/pageza/cookbook/backend/internal/database"
	"github.com/pageza/cookbook/backend/internal/logging"
)

func main() {
	rollback := flag.Bool("rollback", false, "Rollback the last migration")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: "console"})

	// DATABASE_URL wins over the individual DB_* settings
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = cfg.DSN()
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL UNIQUE,
			applied_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		logging.Fatal().Err(err).Msg("failed to create migrations table")
	}

	if *rollback {
		name, err := rollbackLast(db, cfg.MigrationsDir)
		if err != nil {
			logging.Fatal().Err(err).Msg("rollback failed")
		}
		fmt.Printf("Successfully rolled back migration: %s\n", name)
		return
	}

	applied, err := applyPending(db, cfg.MigrationsDir)
	if err != nil {
		logging.Fatal().Err(err).Msg("migration failed")
	}
	fmt.Printf("All migrations applied successfully (%d new).\n", applied)
}

func applyPending(db *sql.DB, dir string) (int, error) {
	files, err := database.MigrationFiles(dir)
	if err != nil {
		return 0, err
	}

	applied := 0
	for _, name := range files {
		var exists bool
		if err := db.QueryRow("SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE name = $1)", name).Scan(&exists); err != nil {
			return applied, fmt.Errorf("failed to check migration status: %w", err)
		}
		if exists {
			fmt.Printf("Migration already applied: %s\n", name)
			continue
		}

		content, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return applied, fmt.Errorf("failed to read migration %s: %w", name, err)
		}

		err = inTx(db, func(tx *sql.Tx) error {
			if _, err := tx.Exec(string(content)); err != nil {
				return fmt.Errorf("failed to apply migration %s: %w", name, err)
			}
			if _, err := tx.Exec("INSERT INTO schema_migrations (name) VALUES ($1)", name); err != nil {
				return fmt.Errorf("failed to record migration: %w", err)
			}
			return nil
		})
		if err != nil {
			return applied, err
		}

		fmt.Printf("Successfully applied migration: %s\n", name)
		applied++
	}
	return applied, nil
}

func rollbackLast(db *sql.DB, dir string) (string, error) {
	var name string
	err := db.QueryRow("SELECT name FROM schema_migrations ORDER BY applied_at DESC, id DESC LIMIT 1").Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", errors.New("no migrations to rollback")
	}
	if err != nil {
		return "", fmt.Errorf("failed to get last migration: %w", err)
	}

	content, err := os.ReadFile(filepath.Join(dir, database.RollbackFile(name)))
	if err != nil {
		return "", fmt.Errorf("failed to read rollback file: %w", err)
	}

	return name, inTx(db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(string(content)); err != nil {
			return fmt.Errorf("failed to execute rollback: %w", err)
		}
		if _, err := tx.Exec("DELETE FROM schema_migrations WHERE name = $1", name); err != nil {
			return fmt.Errorf("failed to remove migration record: %w", err)
		}
		return nil
	})
}

func inTx(db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
