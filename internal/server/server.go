package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/cookbook/backend/config"
	"github.com/pageza/cookbook/backend/internal/api"
	"github.com/pageza/cookbook/backend/internal/logging"
	"github.com/pageza/cookbook/backend/internal/router"
	"github.com/pageza/cookbook/backend/internal/validation"
)

// Server represents the HTTP server
type Server struct {
	cfg    *config.Config
	router *gin.Engine
	http   *http.Server
}

// New creates a new server instance
func New(cfg *config.Config, deps api.Dependencies) (*Server, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := validation.RegisterGinValidators(); err != nil {
		return nil, err
	}

	if deps.Paginator.DefaultLimit == 0 {
		deps.Paginator = api.Paginator{
			DefaultLimit: cfg.PageSize,
			MaxLimit:     cfg.MaxPageSize,
			PublicURL:    cfg.PublicURL,
		}
	}

	engine := router.SetupRouter(cfg.CORSAllowedOrigins, deps)
	return &Server{
		cfg:    cfg,
		router: engine,
		http: &http.Server{
			Addr:         cfg.ServerAddr(),
			Handler:      engine,
			ReadTimeout:  cfg.ServerReadTimeout,
			WriteTimeout: cfg.ServerWriteTimeout,
		},
	}, nil
}

// Handler exposes the router, mostly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until Shutdown is called
func (s *Server) Start() error {
	logging.Info().Str("addr", s.http.Addr).Msg("starting server")
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server, waiting at most the configured
// shutdown timeout for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.ServerShutdownTimeout)
	defer cancel()

	logging.Info().Msg("shutting down server")
	return s.http.Shutdown(ctx)
}
