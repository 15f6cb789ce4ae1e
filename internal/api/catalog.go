package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/cookbook/backend/internal/middleware"
	"github.com/pageza/cookbook/backend/internal/service"
)

// CatalogHandler serves the read-only tag and ingredient endpoints
type CatalogHandler struct {
	catalog service.ICatalogService
}

func NewCatalogHandler(catalog service.ICatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

func (h *CatalogHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/tags/", h.ListTags)
	router.GET("/tags/:id/", h.GetTag)
	router.GET("/ingredients/", h.ListIngredients)
	router.GET("/ingredients/:id/", h.GetIngredient)
}

func (h *CatalogHandler) ListTags(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.ListTags(c.Request.Context()))
}

func (h *CatalogHandler) GetTag(c *gin.Context) {
	id, err := pathID(c, "tag")
	if err != nil {
		middleware.Abort(c, err)
		return
	}
	tag, err := h.catalog.GetTag(c.Request.Context(), id)
	if err != nil {
		middleware.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, tag)
}

// ListIngredients filters by a case-insensitive name prefix given in ?name=
func (h *CatalogHandler) ListIngredients(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.SearchIngredients(c.Request.Context(), c.Query("name")))
}

func (h *CatalogHandler) GetIngredient(c *gin.Context) {
	id, err := pathID(c, "ingredient")
	if err != nil {
		middleware.Abort(c, err)
		return
	}
	ing, err := h.catalog.GetIngredient(c.Request.Context(), id)
	if err != nil {
		middleware.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, ing)
}
