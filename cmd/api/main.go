package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pageza/cookbook/backend/config"
	"github.com/pageza/cookbook/backend/internal/api"
	"github.com/pageza/cookbook/backend/internal/database"
	"github.com/pageza/cookbook/backend/internal/logging"
	"github.com/pageza/cookbook/backend/internal/middleware"
	"github.com/pageza/cookbook/backend/internal/server"
	"github.com/pageza/cookbook/backend/internal/service"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Caller: cfg.LogCaller})

	if err := config.ValidateConfig(cfg); err != nil {
		logging.Fatal().Err(err).Msg("invalid configuration")
	}

	db, err := database.Open(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer database.Close(db)

	if err := database.RunMigrations(db, cfg.MigrationsDir); err != nil {
		logging.Fatal().Err(err).Msg("failed to run migrations")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Redis only backs the recipe creation limit
	var redisClient *redis.Client
	if cfg.RateLimitRecipeCreate > 0 {
		redisClient, err = database.NewRedisClient(cfg)
		if err != nil {
			logging.Warn().Err(err).Msg("redis unavailable, recipe creation is not rate limited")
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	s3Config, err := config.NewS3Config(ctx, cfg)
	if err != nil {
		logging.Warn().Err(err).Msg("s3 unavailable, recipe images are served as stored")
		s3Config = nil
	}
	images := service.NewImageResolver(s3Config)

	catalog, err := service.NewCatalogStore(ctx, db)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load catalog")
	}
	catalogService := service.NewCatalogService(catalog)
	go reloadOnHangup(ctx, catalogService)

	authService := service.NewAuthService(db, cfg.JWTSecret, cfg.JWTTTL)

	var limiter *middleware.RateLimiter
	if redisClient != nil {
		limiter = middleware.NewRecipeCreationRateLimiter(redisClient, cfg.RateLimitRecipeCreate, cfg.RateLimitWindow)
	}

	srv, err := server.New(cfg, api.Dependencies{
		Auth:          authService,
		Users:         service.NewUserService(db),
		Catalog:       catalogService,
		Recipes:       service.NewRecipeService(db, catalog, images),
		Social:        service.NewSocialService(db, images),
		Shopping:      service.NewShoppingListService(db),
		RecipeLimiter: limiter,
		HealthCheck:   healthCheck(db, redisClient),
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to create server")
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		if err != nil {
			logging.Fatal().Err(err).Msg("server error")
		}
	case <-ctx.Done():
		logging.Info().Msg("received shutdown signal")
	}

	if err := srv.Shutdown(context.Background()); err != nil {
		logging.Error().Err(err).Msg("server shutdown error")
		os.Exit(1)
	}
	logging.Info().Msg("server stopped")
}

// reloadOnHangup refreshes tags and ingredients on SIGHUP, e.g. after an import
func reloadOnHangup(ctx context.Context, catalog *service.CatalogService) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
			if err := catalog.Reload(ctx); err != nil {
				logging.Error().Err(err).Msg("catalog reload failed")
				continue
			}
			logging.Info().Msg("catalog reloaded")
		}
	}
}

func healthCheck(db *gorm.DB, redisClient *redis.Client) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if err := database.HealthCheck(ctx, db); err != nil {
			return err
		}
		if redisClient != nil {
			return redisClient.Ping(ctx).Err()
		}
		return nil
	}
}
