package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/cookbook/backend/internal/apperr"
	"github.com/pageza/cookbook/backend/internal/service"
)

func TestAggregateSumsAcrossRecipes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	r1 := f.createRecipe(t, f.alice.ID, "Bread", line(f.catalog.Flour, 200))
	r2 := f.createRecipe(t, f.bob.ID, "Pasta", line(f.catalog.Flour, 300), line(f.catalog.Egg, 2))

	_, err := f.social.AddToCart(ctx, f.alice.ID, r1.ID)
	require.NoError(t, err)
	_, err = f.social.AddToCart(ctx, f.alice.ID, r2.ID)
	require.NoError(t, err)

	items, err := f.shopping.Aggregate(ctx, f.alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []service.ShoppingListItem{
		{Name: "egg", MeasurementUnit: "pcs", Amount: 2},
		{Name: "flour", MeasurementUnit: "g", Amount: 500},
	}, items)
}

func TestAggregateEmptyCart(t *testing.T) {
	f := newFixture(t)

	_, err := f.shopping.Aggregate(context.Background(), f.alice.ID)
	assert.ErrorIs(t, err, apperr.ErrEmptyCart)

	_, _, err = f.shopping.Download(context.Background(), f.alice.ID, time.Now())
	assert.ErrorIs(t, err, apperr.ErrEmptyCart)
}

func TestRender(t *testing.T) {
	body := service.Render([]service.ShoppingListItem{
		{Name: "egg", MeasurementUnit: "pcs", Amount: 2},
		{Name: "flour", MeasurementUnit: "g", Amount: 500},
	})
	assert.Equal(t, "My shopping list.\n\n* egg (pcs) - 2\n* flour (g) - 500\n", body)
}

func TestDownload(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	r := f.createRecipe(t, f.alice.ID, "Bread", line(f.catalog.Flour, 200))
	_, err := f.social.AddToCart(ctx, f.bob.ID, r.ID)
	require.NoError(t, err)

	name, body, err := f.shopping.Download(ctx, f.bob.ID, time.Date(2024, 3, 9, 18, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "shopping-list-2024-03-09.txt", name)
	assert.Equal(t, "My shopping list.\n\n* flour (g) - 200\n", string(body))
}
