package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/cookbook/backend/internal/apperr"
	"github.com/pageza/cookbook/backend/internal/service"
	"github.com/pageza/cookbook/backend/internal/testhelpers"
)

func TestCatalogSearchIngredients(t *testing.T) {
	catalog, _, _, flour, egg := testCatalog()

	assert.Len(t, catalog.SearchIngredients(""), 2)

	found := catalog.SearchIngredients("FL")
	require.Len(t, found, 1)
	assert.Equal(t, flour.ID, found[0].ID)

	found = catalog.SearchIngredients("e")
	require.Len(t, found, 1)
	assert.Equal(t, egg.ID, found[0].ID)

	assert.Empty(t, catalog.SearchIngredients("sugar"))
}

func TestCatalogLookups(t *testing.T) {
	catalog, breakfast, dinner, _, _ := testCatalog()

	tags := catalog.Tags()
	require.Len(t, tags, 2)
	assert.Equal(t, breakfast.ID, tags[0].ID)
	assert.Equal(t, dinner.ID, tags[1].ID)

	_, err := catalog.GetTag(uuid.New())
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = catalog.GetIngredient(uuid.New())
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCatalogStoreReload(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	ctx := context.Background()
	testhelpers.SeedCatalog(t, db)

	store, err := service.NewCatalogStore(ctx, db)
	require.NoError(t, err)
	before := store.Snapshot()
	assert.Len(t, before.Tags(), 2)

	sugar := testhelpers.CreateIngredient(t, db, "sugar", "g")
	_, ok := store.Snapshot().Ingredient(sugar.ID)
	assert.False(t, ok)

	require.NoError(t, store.Reload(ctx))
	_, ok = store.Snapshot().Ingredient(sugar.ID)
	assert.True(t, ok)

	_, ok = before.Ingredient(sugar.ID)
	assert.False(t, ok, "old snapshot must not change")
}
