package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/cookbook/backend/internal/middleware"
	"github.com/pageza/cookbook/backend/internal/service"
)

type UserHandler struct {
	authHandler   *AuthHandler
	tokens        middleware.TokenValidator
	userService   service.IUserService
	socialService service.ISocialService
	paginator     Paginator
}

func NewUserHandler(authHandler *AuthHandler, tokens middleware.TokenValidator, userService service.IUserService, socialService service.ISocialService, paginator Paginator) *UserHandler {
	return &UserHandler{
		authHandler:   authHandler,
		tokens:        tokens,
		userService:   userService,
		socialService: socialService,
		paginator:     paginator,
	}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	requireAuth := middleware.RequireAuth(h.tokens)
	optionalAuth := middleware.OptionalAuth(h.tokens)

	users := router.Group("/users")
	{
		users.GET("/", optionalAuth, h.ListUsers)
		users.POST("/", h.authHandler.Register)
		users.GET("/me/", requireAuth, h.Me)
		users.POST("/set_password/", requireAuth, h.authHandler.SetPassword)
		users.GET("/subscriptions/", requireAuth, h.Subscriptions)
		users.GET("/:id/", optionalAuth, h.GetUser)
		users.POST("/:id/subscribe/", requireAuth, h.Subscribe)
		users.DELETE("/:id/subscribe/", requireAuth, h.Unsubscribe)
	}
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	q, err := h.paginator.Query(c)
	if err != nil {
		middleware.Abort(c, err)
		return
	}

	users, total, err := h.userService.ListUsers(c.Request.Context(), middleware.ViewerID(c), q)
	if err != nil {
		middleware.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, NewPage(c, h.paginator, q, total, users))
}

func (h *UserHandler) Me(c *gin.Context) {
	user, err := h.userService.Me(c.Request.Context(), middleware.ViewerID(c))
	if err != nil {
		middleware.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := pathID(c, "user")
	if err != nil {
		middleware.Abort(c, err)
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), middleware.ViewerID(c), id)
	if err != nil {
		middleware.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Subscriptions lists the authors the caller follows
func (h *UserHandler) Subscriptions(c *gin.Context) {
	q, err := h.paginator.Query(c)
	if err != nil {
		middleware.Abort(c, err)
		return
	}
	limit, err := recipesLimit(c)
	if err != nil {
		middleware.Abort(c, err)
		return
	}

	subs, total, err := h.socialService.ListSubscriptions(c.Request.Context(), middleware.ViewerID(c), q, limit)
	if err != nil {
		middleware.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, NewPage(c, h.paginator, q, total, subs))
}

func (h *UserHandler) Subscribe(c *gin.Context) {
	authorID, err := pathID(c, "user")
	if err != nil {
		middleware.Abort(c, err)
		return
	}
	limit, err := recipesLimit(c)
	if err != nil {
		middleware.Abort(c, err)
		return
	}

	sub, err := h.socialService.Subscribe(c.Request.Context(), middleware.ViewerID(c), authorID, limit)
	if err != nil {
		middleware.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, sub)
}

func (h *UserHandler) Unsubscribe(c *gin.Context) {
	authorID, err := pathID(c, "user")
	if err != nil {
		middleware.Abort(c, err)
		return
	}

	if err := h.socialService.Unsubscribe(c.Request.Context(), middleware.ViewerID(c), authorID); err != nil {
		middleware.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
