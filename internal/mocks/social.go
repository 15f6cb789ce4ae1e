package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/cookbook/backend/internal/types"
)

// MockSocialService is a mock implementation of the social service
type MockSocialService struct {
	mock.Mock
}

func (m *MockSocialService) shortRecipe(args mock.Arguments) (*types.ShortRecipeResponse, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.ShortRecipeResponse), args.Error(1)
}

func (m *MockSocialService) AddFavorite(ctx context.Context, userID, recipeID uuid.UUID) (*types.ShortRecipeResponse, error) {
	return m.shortRecipe(m.Called(ctx, userID, recipeID))
}

func (m *MockSocialService) RemoveFavorite(ctx context.Context, userID, recipeID uuid.UUID) error {
	return m.Called(ctx, userID, recipeID).Error(0)
}

func (m *MockSocialService) AddToCart(ctx context.Context, userID, recipeID uuid.UUID) (*types.ShortRecipeResponse, error) {
	return m.shortRecipe(m.Called(ctx, userID, recipeID))
}

func (m *MockSocialService) RemoveFromCart(ctx context.Context, userID, recipeID uuid.UUID) error {
	return m.Called(ctx, userID, recipeID).Error(0)
}

func (m *MockSocialService) Subscribe(ctx context.Context, subscriberID, authorID uuid.UUID, recipesLimit int) (*types.SubscriptionResponse, error) {
	args := m.Called(ctx, subscriberID, authorID, recipesLimit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.SubscriptionResponse), args.Error(1)
}

func (m *MockSocialService) Unsubscribe(ctx context.Context, subscriberID, authorID uuid.UUID) error {
	return m.Called(ctx, subscriberID, authorID).Error(0)
}

func (m *MockSocialService) ListSubscriptions(ctx context.Context, viewerID uuid.UUID, page types.PageQuery, recipesLimit int) ([]types.SubscriptionResponse, int64, error) {
	args := m.Called(ctx, viewerID, page, recipesLimit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]types.SubscriptionResponse), args.Get(1).(int64), args.Error(2)
}
