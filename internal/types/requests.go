package types

import (
	"github.com/google/uuid"
)

// RegisterRequest represents the request body for creating an account
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email,max=254"`
	Username  string `json:"username" binding:"required,username"`
	FirstName string `json:"first_name" binding:"required,max=150"`
	LastName  string `json:"last_name" binding:"required,max=150"`
	Password  string `json:"password" binding:"required,min=8,max=128"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type SetPasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8,max=128"`
}

// RecipeIngredientInput is one {id, amount} line of a recipe payload
type RecipeIngredientInput struct {
	ID     uuid.UUID `json:"id"`
	Amount int       `json:"amount"`
}

// CreateRecipeRequest represents the request body for creating a recipe.
// Tags, ingredients and cooking time are checked by the recipe validator.
type CreateRecipeRequest struct {
	Tags        []uuid.UUID             `json:"tags"`
	Ingredients []RecipeIngredientInput `json:"ingredients"`
	Name        string                  `json:"name" binding:"required,max=200"`
	Image       string                  `json:"image" binding:"max=500"`
	Text        string                  `json:"text" binding:"required,max=300"`
	CookingTime int                     `json:"cooking_time"`
}

// UpdateRecipeRequest represents a PATCH body. Absent scalar fields keep
// their stored value; a nil Tags keeps the current tag set. Ingredients
// are always required and replace the stored lines.
type UpdateRecipeRequest struct {
	Tags        []uuid.UUID             `json:"tags"`
	Ingredients []RecipeIngredientInput `json:"ingredients"`
	Name        *string                 `json:"name" binding:"omitempty,min=1,max=200"`
	Image       *string                 `json:"image" binding:"omitempty,max=500"`
	Text        *string                 `json:"text" binding:"omitempty,min=1,max=300"`
	CookingTime *int                    `json:"cooking_time"`
}
