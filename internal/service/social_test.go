package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/cookbook/backend/internal/apperr"
	"github.com/pageza/cookbook/backend/internal/model"
	"github.com/pageza/cookbook/backend/internal/types"
)

func TestFavoriteToggle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	recipe := f.createRecipe(t, f.alice.ID, "Pancakes", line(f.catalog.Flour, 200))

	short, err := f.social.AddFavorite(ctx, f.bob.ID, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, recipe.ID, short.ID)
	assert.Equal(t, "Pancakes", short.Name)
	assert.Equal(t, 20, short.CookingTime)

	_, err = f.social.AddFavorite(ctx, f.bob.ID, recipe.ID)
	assert.ErrorIs(t, err, apperr.ErrAlreadyExists)

	var n int64
	require.NoError(t, f.db.Model(&model.Favorite{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)

	require.NoError(t, f.social.RemoveFavorite(ctx, f.bob.ID, recipe.ID))
	assert.ErrorIs(t, f.social.RemoveFavorite(ctx, f.bob.ID, recipe.ID), apperr.ErrNotFound)

	_, err = f.social.AddFavorite(ctx, f.bob.ID, uuid.New())
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.ErrorIs(t, f.social.RemoveFavorite(ctx, f.bob.ID, uuid.New()), apperr.ErrNotFound)
}

func TestCartToggle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	recipe := f.createRecipe(t, f.alice.ID, "Pancakes", line(f.catalog.Flour, 200))

	_, err := f.social.AddToCart(ctx, f.alice.ID, recipe.ID)
	require.NoError(t, err)
	_, err = f.social.AddToCart(ctx, f.alice.ID, recipe.ID)
	assert.ErrorIs(t, err, apperr.ErrAlreadyExists)

	// favorites and cart are independent relations
	assert.ErrorIs(t, f.social.RemoveFavorite(ctx, f.alice.ID, recipe.ID), apperr.ErrNotFound)

	require.NoError(t, f.social.RemoveFromCart(ctx, f.alice.ID, recipe.ID))
	assert.ErrorIs(t, f.social.RemoveFromCart(ctx, f.alice.ID, recipe.ID), apperr.ErrNotFound)
}

func TestSubscribe(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.createRecipe(t, f.alice.ID, "Pancakes", line(f.catalog.Flour, 200))
	f.createRecipe(t, f.alice.ID, "Omelette", line(f.catalog.Egg, 3))

	t.Run("self subscription rejected without writing", func(t *testing.T) {
		_, err := f.social.Subscribe(ctx, f.alice.ID, f.alice.ID, -1)
		assert.ErrorIs(t, err, apperr.ErrInvalidInput)
		assert.ErrorIs(t, f.social.Unsubscribe(ctx, f.alice.ID, f.alice.ID), apperr.ErrInvalidInput)

		var n int64
		require.NoError(t, f.db.Model(&model.Subscription{}).Count(&n).Error)
		assert.Zero(t, n)
	})

	t.Run("missing author", func(t *testing.T) {
		_, err := f.social.Subscribe(ctx, f.bob.ID, uuid.New(), -1)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("subscribe returns author with limited recipes", func(t *testing.T) {
		sub, err := f.social.Subscribe(ctx, f.bob.ID, f.alice.ID, 1)
		require.NoError(t, err)
		assert.Equal(t, f.alice.ID, sub.ID)
		assert.True(t, sub.IsSubscribed)
		assert.EqualValues(t, 2, sub.RecipesCount)
		assert.Len(t, sub.Recipes, 1)
	})

	t.Run("duplicate subscription", func(t *testing.T) {
		_, err := f.social.Subscribe(ctx, f.bob.ID, f.alice.ID, -1)
		assert.ErrorIs(t, err, apperr.ErrAlreadyExists)
	})

	t.Run("list subscriptions", func(t *testing.T) {
		subs, total, err := f.social.ListSubscriptions(ctx, f.bob.ID, types.PageQuery{Page: 1, Limit: 10}, -1)
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		require.Len(t, subs, 1)
		assert.Equal(t, "alice", subs[0].Username)
		assert.Len(t, subs[0].Recipes, 2)

		subs, total, err = f.social.ListSubscriptions(ctx, f.alice.ID, types.PageQuery{Page: 1, Limit: 10}, -1)
		require.NoError(t, err)
		assert.Zero(t, total)
		assert.Empty(t, subs)
	})

	t.Run("unsubscribe", func(t *testing.T) {
		require.NoError(t, f.social.Unsubscribe(ctx, f.bob.ID, f.alice.ID))
		assert.ErrorIs(t, f.social.Unsubscribe(ctx, f.bob.ID, f.alice.ID), apperr.ErrNotFound)
		assert.ErrorIs(t, f.social.Unsubscribe(ctx, f.bob.ID, uuid.New()), apperr.ErrNotFound)
	})
}

func TestUserViews(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.social.Subscribe(ctx, f.bob.ID, f.alice.ID, -1)
	require.NoError(t, err)

	alice, err := f.users.GetUser(ctx, f.bob.ID, f.alice.ID)
	require.NoError(t, err)
	assert.True(t, alice.IsSubscribed)
	assert.Equal(t, "alice@example.com", alice.Email)

	me, err := f.users.Me(ctx, f.bob.ID)
	require.NoError(t, err)
	assert.Equal(t, "bob", me.Username)
	assert.False(t, me.IsSubscribed)

	_, err = f.users.GetUser(ctx, f.bob.ID, uuid.New())
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	list, total, err := f.users.ListUsers(ctx, uuid.Nil, types.PageQuery{Page: 1, Limit: 1})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, list, 1)
	assert.Equal(t, "alice", list[0].Username)
}
