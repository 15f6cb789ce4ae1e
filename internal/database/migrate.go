package database

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gorm.io/gorm"

	"github.com/pageza/cookbook/backend/internal/logging"
	"github.com/pageza/cookbook/backend/internal/model"
)

const rollbackSuffix = "_rollback.sql"

// MigrationFiles returns the forward migration files in dir, in apply order
func MigrationFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".sql") || strings.HasSuffix(name, rollbackSuffix) {
			continue
		}
		files = append(files, name)
	}
	sort.Strings(files)
	return files, nil
}

// RollbackFile returns the rollback script name for a migration file
func RollbackFile(name string) string {
	return strings.TrimSuffix(name, ".sql") + rollbackSuffix
}

// RunMigrations brings the schema up to date. SQLite uses AutoMigrate;
// postgres applies every pending .sql file in migrationsDir.
func RunMigrations(db *gorm.DB, migrationsDir string) error {
	if db.Dialector.Name() == "sqlite" {
		logging.Info().Msg("using gorm auto-migration for sqlite")
		return db.AutoMigrate(model.All()...)
	}

	files, err := MigrationFiles(migrationsDir)
	if err != nil {
		return err
	}

	if err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL UNIQUE,
			applied_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`).Error; err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	for _, name := range files {
		var count int64
		if err := db.Table("schema_migrations").Where("name = ?", name).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check migration status: %w", err)
		}
		if count > 0 {
			logging.Debug().Str("migration", name).Msg("already applied")
			continue
		}

		content, err := os.ReadFile(filepath.Join(migrationsDir, name))
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", name, err)
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Exec(string(content)).Error; err != nil {
				return fmt.Errorf("failed to execute migration %s: %w", name, err)
			}
			if err := tx.Exec("INSERT INTO schema_migrations (name) VALUES (?)", name).Error; err != nil {
				return fmt.Errorf("failed to record migration %s: %w", name, err)
			}
			return nil
		})
		if err != nil {
			return err
		}

		logging.Info().Str("migration", name).Msg("applied migration")
	}

	return nil
}
