package types

import (
	"time"

	"github.com/google/uuid"
)

type TagResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Slug  string    `json:"slug"`
	Color string    `json:"color"`
}

type IngredientResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	MeasurementUnit string    `json:"measurement_unit"`
}

// RecipeIngredientResponse is an ingredient line as seen by clients
type RecipeIngredientResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	MeasurementUnit string    `json:"measurement_unit"`
	Amount          int       `json:"amount"`
}

type UserResponse struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	IsSubscribed bool      `json:"is_subscribed"`
}

// RecipeResponse carries the caller-dependent flags is_favorited and
// is_in_shopping_cart; both are false for anonymous callers.
type RecipeResponse struct {
	ID               uuid.UUID                  `json:"id"`
	Tags             []TagResponse              `json:"tags"`
	Author           UserResponse               `json:"author"`
	Ingredients      []RecipeIngredientResponse `json:"ingredients"`
	IsFavorited      bool                       `json:"is_favorited"`
	IsInShoppingCart bool                       `json:"is_in_shopping_cart"`
	Name             string                     `json:"name"`
	Image            string                     `json:"image"`
	Text             string                     `json:"text"`
	CookingTime      int                        `json:"cooking_time"`
	CreatedAt        time.Time                  `json:"created_at"`
}

// ShortRecipeResponse is the compact form used by favorites, cart and subscriptions
type ShortRecipeResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Image       string    `json:"image"`
	CookingTime int       `json:"cooking_time"`
}

// SubscriptionResponse is an author as listed in the caller's subscriptions
type SubscriptionResponse struct {
	UserResponse
	Recipes      []ShortRecipeResponse `json:"recipes"`
	RecipesCount int64                 `json:"recipes_count"`
}

// Page is a paginated list response
type Page[T any] struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}
