package router

import (
	"github.com/gin-gonic/gin"

	"github.com/pageza/cookbook/backend/internal/api"
	"github.com/pageza/cookbook/backend/internal/middleware"
)

// SetupRouter builds the engine with the middleware stack and all routes.
// ErrorHandler runs innermost so the logger and metrics see the final status.
func SetupRouter(allowedOrigins []string, deps api.Dependencies) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.RequestLogger(),
		middleware.Metrics(),
		middleware.CORS(allowedOrigins),
		middleware.ErrorHandler(),
	)

	api.RegisterRoutes(router, deps)
	return router
}
