package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pageza/cookbook/backend/internal/model"
	"github.com/pageza/cookbook/backend/internal/service"
	"github.com/pageza/cookbook/backend/internal/testhelpers"
	"github.com/pageza/cookbook/backend/internal/types"
)

type fixture struct {
	db       *gorm.DB
	catalog  *testhelpers.Catalog
	recipes  *service.RecipeService
	social   *service.SocialService
	shopping *service.ShoppingListService
	users    *service.UserService
	alice    *model.User
	bob      *model.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testhelpers.SetupSQLite(t)
	catalog := testhelpers.SeedCatalog(t, db)

	store, err := service.NewCatalogStore(context.Background(), db)
	require.NoError(t, err)

	return &fixture{
		db:       db,
		catalog:  catalog,
		recipes:  service.NewRecipeService(db, store, nil),
		social:   service.NewSocialService(db, nil),
		shopping: service.NewShoppingListService(db),
		users:    service.NewUserService(db),
		alice:    testhelpers.CreateUser(t, db, "alice"),
		bob:      testhelpers.CreateUser(t, db, "bob"),
	}
}

func (f *fixture) createRecipe(t *testing.T, author uuid.UUID, name string, lines ...types.RecipeIngredientInput) *types.RecipeResponse {
	t.Helper()
	recipe, err := f.recipes.CreateRecipe(context.Background(), author, &types.CreateRecipeRequest{
		Tags:        []uuid.UUID{f.catalog.Breakfast.ID},
		Ingredients: lines,
		Name:        name,
		Text:        "Mix and bake.",
		CookingTime: 20,
	})
	require.NoError(t, err)
	return recipe
}

func line(ing *model.Ingredient, amount int) types.RecipeIngredientInput {
	return types.RecipeIngredientInput{ID: ing.ID, Amount: amount}
}
