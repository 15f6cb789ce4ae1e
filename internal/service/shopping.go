package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/cookbook/backend/internal/apperr"
	"github.com/pageza/cookbook/backend/internal/metrics"
	"github.com/pageza/cookbook/backend/internal/model"
)

// ShoppingListHeader is the first line of a rendered shopping list.
const ShoppingListHeader = "My shopping list."

// ShoppingListItem is the total of one ingredient across every recipe in a cart.
type ShoppingListItem struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int64  `json:"amount"`
}

type ShoppingListService struct {
	db *gorm.DB
}

func NewShoppingListService(db *gorm.DB) *ShoppingListService {
	return &ShoppingListService{db: db}
}

// Aggregate sums ingredient amounts over the user's cart, one item per
// ingredient, ordered by name then unit.
func (s *ShoppingListService) Aggregate(ctx context.Context, userID uuid.UUID) ([]ShoppingListItem, error) {
	var entries int64
	err := s.db.WithContext(ctx).Model(&model.ShoppingCartEntry{}).Where("user_id = ?", userID).Count(&entries).Error
	if err != nil {
		return nil, apperr.Internal("failed to read shopping cart", err)
	}
	if entries == 0 {
		return nil, apperr.EmptyCart("shopping cart is empty")
	}

	var items []ShoppingListItem
	err = s.db.WithContext(ctx).
		Table("shopping_cart_entries").
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, SUM(recipe_ingredients.amount) AS amount").
		Joins("JOIN recipe_ingredients ON recipe_ingredients.recipe_id = shopping_cart_entries.recipe_id").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Where("shopping_cart_entries.user_id = ?", userID).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name").
		Order("ingredients.measurement_unit").
		Scan(&items).Error
	if err != nil {
		return nil, apperr.Internal("failed to build shopping list", err)
	}
	return items, nil
}

// Render formats items as the downloadable plain-text list.
func Render(items []ShoppingListItem) string {
	var b strings.Builder
	b.WriteString(ShoppingListHeader)
	b.WriteString("\n\n")
	for _, item := range items {
		fmt.Fprintf(&b, "* %s (%s) - %d\n", item.Name, item.MeasurementUnit, item.Amount)
	}
	return b.String()
}

// ShoppingListFilename names the attachment for a download made at now.
func ShoppingListFilename(now time.Time) string {
	return "shopping-list-" + now.Format("2006-01-02") + ".txt"
}

// Download aggregates and renders the user's cart.
func (s *ShoppingListService) Download(ctx context.Context, userID uuid.UUID, now time.Time) (string, []byte, error) {
	items, err := s.Aggregate(ctx, userID)
	if err != nil {
		return "", nil, err
	}
	metrics.RecordShoppingListDownload(len(items))
	return ShoppingListFilename(now), []byte(Render(items)), nil
}
