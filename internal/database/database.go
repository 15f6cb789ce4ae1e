package database

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/pageza/cookbook/backend/config"
	"github.com/pageza/cookbook/backend/internal/logging"
)

// Open connects to the database selected by cfg.DBDriver
func Open(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "postgres":
		logging.Info().
			Str("host", cfg.DBHost).
			Str("port", cfg.DBPort).
			Str("user", cfg.DBUser).
			Msg("connecting to postgres")
		dialector = postgres.Open(cfg.DSN())
	case "sqlite":
		logging.Info().Str("path", cfg.SQLitePath).Msg("opening sqlite database")
		// foreign keys are off by default in sqlite
		dialector = sqlite.Open(cfg.SQLitePath + "?_foreign_keys=on")
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}

	level := gormlogger.Warn
	if cfg.LogLevel == "debug" {
		level = gormlogger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logging.NewGormLogger(level, 200*time.Millisecond),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("error getting sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.DBConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("error connecting to the database: %w", err)
	}

	logging.Info().Str("driver", cfg.DBDriver).Msg("database connected")
	return db, nil
}

// HealthCheck checks if the database is accessible
func HealthCheck(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the underlying connection pool
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
