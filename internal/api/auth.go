package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/cookbook/backend/internal/apperr"
	"github.com/pageza/cookbook/backend/internal/middleware"
	"github.com/pageza/cookbook/backend/internal/service"
	"github.com/pageza/cookbook/backend/internal/types"
	"github.com/pageza/cookbook/backend/internal/validation"
)

type AuthHandler struct {
	authService service.IAuthService
}

func NewAuthHandler(authService service.IAuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth/token")
	{
		auth.POST("/login/", h.Login)
		auth.POST("/logout/", middleware.RequireAuth(h.authService), h.Logout)
	}
}

// Login exchanges email and password for a token
func (h *AuthHandler) Login(c *gin.Context) {
	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Abort(c, validation.FromBindingError(err))
		return
	}

	token, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		middleware.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, types.TokenResponse{AuthToken: token})
}

// Logout is a no-op for stateless tokens; it only checks the caller is authenticated
func (h *AuthHandler) Logout(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Register creates an account
func (h *AuthHandler) Register(c *gin.Context) {
	var req types.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Abort(c, validation.FromBindingError(err))
		return
	}

	user, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		middleware.Abort(c, err)
		return
	}

	c.JSON(http.StatusCreated, types.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	})
}

// SetPassword changes the caller's password
func (h *AuthHandler) SetPassword(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		middleware.Abort(c, apperr.ErrUnauthenticated)
		return
	}

	var req types.SetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Abort(c, validation.FromBindingError(err))
		return
	}

	if err := h.authService.SetPassword(c.Request.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		middleware.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
