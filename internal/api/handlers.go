package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pageza/cookbook/backend/internal/apperr"
	"github.com/pageza/cookbook/backend/internal/middleware"
	"github.com/pageza/cookbook/backend/internal/service"
)

// Dependencies are the services the HTTP layer is built on
type Dependencies struct {
	Auth     service.IAuthService
	Users    service.IUserService
	Catalog  service.ICatalogService
	Recipes  service.IRecipeService
	Social   service.ISocialService
	Shopping service.IShoppingListService
	// RecipeLimiter is nil when Redis is not configured
	RecipeLimiter *middleware.RateLimiter
	Paginator     Paginator
	// HealthCheck pings the backing stores
	HealthCheck func(ctx context.Context) error
}

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine, deps Dependencies) {
	router.GET("/health", healthHandler(deps.HealthCheck))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authHandler := NewAuthHandler(deps.Auth)
	userHandler := NewUserHandler(authHandler, deps.Auth, deps.Users, deps.Social, deps.Paginator)
	catalogHandler := NewCatalogHandler(deps.Catalog)
	recipeHandler := NewRecipeHandler(deps.Auth, deps.Recipes, deps.Social, deps.Shopping, deps.RecipeLimiter, deps.Paginator)

	apiGroup := router.Group("/api")
	authHandler.RegisterRoutes(apiGroup)
	userHandler.RegisterRoutes(apiGroup)
	catalogHandler.RegisterRoutes(apiGroup)
	recipeHandler.RegisterRoutes(apiGroup)

	if deps.RecipeLimiter != nil {
		RegisterRateLimitRoutes(apiGroup, deps.Auth, deps.RecipeLimiter)
	}
}

func healthHandler(check func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if check != nil {
			if err := check(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	}
}

// RegisterRateLimitRoutes registers an endpoint for checking the recipe creation quota
func RegisterRateLimitRoutes(router *gin.RouterGroup, tokens middleware.TokenValidator, creationLimiter *middleware.RateLimiter) {
	rateLimits := router.Group("/rate-limits")
	rateLimits.Use(middleware.RequireAuth(tokens))
	{
		rateLimits.GET("/recipe-creation/", func(c *gin.Context) {
			userID := middleware.ViewerID(c)
			remaining, resetTime, err := creationLimiter.Remaining(c.Request.Context(), userID.String())
			if err != nil {
				middleware.Abort(c, apperr.Internal("failed to check rate limit", err))
				return
			}

			cfg := creationLimiter.Config()
			c.JSON(http.StatusOK, gin.H{
				"limit":      cfg.Limit,
				"remaining":  remaining,
				"reset_time": resetTime.Unix(),
				"window":     cfg.Window.String(),
			})
		})
	}
}
