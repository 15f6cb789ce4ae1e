package testhelpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/cookbook/backend/internal/model"
)

func TestSetupSQLite(t *testing.T) {
	db := SetupSQLite(t)
	require.NotNil(t, db)

	catalog := SeedCatalog(t, db)
	user := CreateUser(t, db, "alice")
	admin := CreateAdmin(t, db, "root")

	recipe := &model.Recipe{
		AuthorID:    user.ID,
		Name:        "Omelette",
		Description: "Beat and fry.",
		CookingTime: 5,
		Tags:        []model.Tag{*catalog.Breakfast},
	}
	require.NoError(t, db.Create(recipe).Error)
	require.NoError(t, db.Create(&model.RecipeIngredient{
		RecipeID: recipe.ID, IngredientID: catalog.Egg.ID, Amount: 3,
	}).Error)

	var loaded model.Recipe
	require.NoError(t, db.Preload("Tags").Preload("Ingredients.Ingredient").First(&loaded, "id = ?", recipe.ID).Error)
	require.Len(t, loaded.Tags, 1)
	assert.Equal(t, "breakfast", loaded.Tags[0].Slug)
	require.Len(t, loaded.Ingredients, 1)
	assert.Equal(t, "egg", loaded.Ingredients[0].Ingredient.Name)

	assert.False(t, user.IsAdmin())
	assert.True(t, admin.IsAdmin())
}
