package model

import (
	"github.com/google/uuid"
)

// assignID gives a new row a random UUID unless the caller already set one.
func assignID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

// All returns every model in dependency order, for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Tag{},
		&Ingredient{},
		&Recipe{},
		&RecipeIngredient{},
		&Favorite{},
		&ShoppingCartEntry{},
		&Subscription{},
	}
}
