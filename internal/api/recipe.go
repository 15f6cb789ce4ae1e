package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/cookbook/backend/internal/apperr"
	"github.com/pageza/cookbook/backend/internal/middleware"
	"github.com/pageza/cookbook/backend/internal/service"
	"github.com/pageza/cookbook/backend/internal/types"
	"github.com/pageza/cookbook/backend/internal/validation"
)

type RecipeHandler struct {
	tokens          middleware.TokenValidator
	recipeService   service.IRecipeService
	socialService   service.ISocialService
	shoppingService service.IShoppingListService
	createLimiter   *middleware.RateLimiter
	paginator       Paginator
	now             func() time.Time
}

func NewRecipeHandler(
	tokens middleware.TokenValidator,
	recipeService service.IRecipeService,
	socialService service.ISocialService,
	shoppingService service.IShoppingListService,
	createLimiter *middleware.RateLimiter,
	paginator Paginator,
) *RecipeHandler {
	return &RecipeHandler{
		tokens:          tokens,
		recipeService:   recipeService,
		socialService:   socialService,
		shoppingService: shoppingService,
		createLimiter:   createLimiter,
		paginator:       paginator,
		now:             time.Now,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	requireAuth := middleware.RequireAuth(h.tokens)
	optionalAuth := middleware.OptionalAuth(h.tokens)

	recipes := router.Group("/recipes")
	{
		recipes.GET("/", optionalAuth, h.ListRecipes)
		recipes.POST("/", requireAuth, h.createLimiter.Middleware(), h.CreateRecipe)
		recipes.GET("/download_shopping_cart/", requireAuth, h.DownloadShoppingCart)
		recipes.GET("/:id/", optionalAuth, h.GetRecipe)
		recipes.PATCH("/:id/", requireAuth, h.UpdateRecipe)
		recipes.DELETE("/:id/", requireAuth, h.DeleteRecipe)
		recipes.POST("/:id/favorite/", requireAuth, h.AddFavorite)
		recipes.DELETE("/:id/favorite/", requireAuth, h.RemoveFavorite)
		recipes.POST("/:id/shopping_cart/", requireAuth, h.AddToCart)
		recipes.DELETE("/:id/shopping_cart/", requireAuth, h.RemoveFromCart)
	}
}

func (h *RecipeHandler) recipeFilter(c *gin.Context) (types.RecipeFilter, error) {
	filter := types.RecipeFilter{TagSlugs: c.QueryArray("tags")}

	if raw := c.Query("author"); raw != "" {
		authorID, err := uuid.Parse(raw)
		if err != nil {
			return filter, apperr.InvalidField("author", "must be a user id")
		}
		filter.AuthorID = &authorID
	}

	var err error
	if filter.IsFavorited, err = queryFlag(c, "is_favorited"); err != nil {
		return filter, err
	}
	if filter.IsInShoppingCart, err = queryFlag(c, "is_in_shopping_cart"); err != nil {
		return filter, err
	}
	return filter, nil
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	q, err := h.paginator.Query(c)
	if err != nil {
		middleware.Abort(c, err)
		return
	}
	filter, err := h.recipeFilter(c)
	if err != nil {
		middleware.Abort(c, err)
		return
	}

	recipes, total, err := h.recipeService.ListRecipes(c.Request.Context(), middleware.ViewerID(c), filter, q)
	if err != nil {
		middleware.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, NewPage(c, h.paginator, q, total, recipes))
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, err := pathID(c, "recipe")
	if err != nil {
		middleware.Abort(c, err)
		return
	}

	recipe, err := h.recipeService.GetRecipe(c.Request.Context(), middleware.ViewerID(c), id)
	if err != nil {
		middleware.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req types.CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Abort(c, validation.FromBindingError(err))
		return
	}

	recipe, err := h.recipeService.CreateRecipe(c.Request.Context(), middleware.ViewerID(c), &req)
	if err != nil {
		middleware.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, recipe)
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, err := pathID(c, "recipe")
	if err != nil {
		middleware.Abort(c, err)
		return
	}

	var req types.UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Abort(c, validation.FromBindingError(err))
		return
	}

	recipe, err := h.recipeService.UpdateRecipe(c.Request.Context(), middleware.ViewerID(c), id, &req)
	if err != nil {
		middleware.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, err := pathID(c, "recipe")
	if err != nil {
		middleware.Abort(c, err)
		return
	}

	if err := h.recipeService.DeleteRecipe(c.Request.Context(), middleware.ViewerID(c), id); err != nil {
		middleware.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type addRelationFunc func(c *gin.Context, userID, recipeID uuid.UUID) (*types.ShortRecipeResponse, error)

type removeRelationFunc func(c *gin.Context, userID, recipeID uuid.UUID) error

func (h *RecipeHandler) addRelation(c *gin.Context, add addRelationFunc) {
	id, err := pathID(c, "recipe")
	if err != nil {
		middleware.Abort(c, err)
		return
	}
	short, err := add(c, middleware.ViewerID(c), id)
	if err != nil {
		middleware.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, short)
}

func (h *RecipeHandler) removeRelation(c *gin.Context, remove removeRelationFunc) {
	id, err := pathID(c, "recipe")
	if err != nil {
		middleware.Abort(c, err)
		return
	}
	if err := remove(c, middleware.ViewerID(c), id); err != nil {
		middleware.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) AddFavorite(c *gin.Context) {
	h.addRelation(c, func(c *gin.Context, userID, recipeID uuid.UUID) (*types.ShortRecipeResponse, error) {
		return h.socialService.AddFavorite(c.Request.Context(), userID, recipeID)
	})
}

func (h *RecipeHandler) RemoveFavorite(c *gin.Context) {
	h.removeRelation(c, func(c *gin.Context, userID, recipeID uuid.UUID) error {
		return h.socialService.RemoveFavorite(c.Request.Context(), userID, recipeID)
	})
}

func (h *RecipeHandler) AddToCart(c *gin.Context) {
	h.addRelation(c, func(c *gin.Context, userID, recipeID uuid.UUID) (*types.ShortRecipeResponse, error) {
		return h.socialService.AddToCart(c.Request.Context(), userID, recipeID)
	})
}

func (h *RecipeHandler) RemoveFromCart(c *gin.Context) {
	h.removeRelation(c, func(c *gin.Context, userID, recipeID uuid.UUID) error {
		return h.socialService.RemoveFromCart(c.Request.Context(), userID, recipeID)
	})
}

// DownloadShoppingCart sends the aggregated shopping list as a text attachment
func (h *RecipeHandler) DownloadShoppingCart(c *gin.Context) {
	filename, body, err := h.shoppingService.Download(c.Request.Context(), middleware.ViewerID(c), h.now())
	if err != nil {
		middleware.Abort(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", body)
}
