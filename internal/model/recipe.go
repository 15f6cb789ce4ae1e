package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Recipe struct {
	ID          uuid.UUID          `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt   time.Time          `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
	AuthorID    uuid.UUID          `gorm:"type:varchar(36);not null;index" json:"author_id"`
	Author      User               `gorm:"foreignKey:AuthorID" json:"author"`
	Name        string             `gorm:"size:200;not null" json:"name"`
	Description string             `gorm:"size:300;not null" json:"description"`
	Image       string             `gorm:"size:500" json:"image"`
	CookingTime int                `gorm:"not null" json:"cooking_time"`
	Tags        []Tag              `gorm:"many2many:recipe_tags" json:"tags"`
	Ingredients []RecipeIngredient `gorm:"foreignKey:RecipeID" json:"ingredients"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	assignID(&r.ID)
	return nil
}

// RecipeIngredient is one ingredient line of a recipe. An ingredient appears
// at most once per recipe.
type RecipeIngredient struct {
	ID           uuid.UUID  `gorm:"type:varchar(36);primarykey" json:"id"`
	RecipeID     uuid.UUID  `gorm:"type:varchar(36);not null;uniqueIndex:idx_recipe_ingredient" json:"recipe_id"`
	IngredientID uuid.UUID  `gorm:"type:varchar(36);not null;uniqueIndex:idx_recipe_ingredient;index" json:"ingredient_id"`
	Ingredient   Ingredient `gorm:"foreignKey:IngredientID" json:"ingredient"`
	Amount       int        `gorm:"not null" json:"amount"`
}

func (ri *RecipeIngredient) BeforeCreate(tx *gorm.DB) error {
	assignID(&ri.ID)
	return nil
}
