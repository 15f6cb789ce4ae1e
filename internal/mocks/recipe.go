package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/cookbook/backend/internal/service"
	"github.com/pageza/cookbook/backend/internal/types"
)

// MockRecipeService is a mock implementation of the recipe service
type MockRecipeService struct {
	mock.Mock
}

// CreateRecipe mocks the CreateRecipe method
func (m *MockRecipeService) CreateRecipe(ctx context.Context, authorID uuid.UUID, req *types.CreateRecipeRequest) (*types.RecipeResponse, error) {
	args := m.Called(ctx, authorID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.RecipeResponse), args.Error(1)
}

// GetRecipe mocks the GetRecipe method
func (m *MockRecipeService) GetRecipe(ctx context.Context, viewerID, id uuid.UUID) (*types.RecipeResponse, error) {
	args := m.Called(ctx, viewerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.RecipeResponse), args.Error(1)
}

// UpdateRecipe mocks the UpdateRecipe method
func (m *MockRecipeService) UpdateRecipe(ctx context.Context, actorID, id uuid.UUID, req *types.UpdateRecipeRequest) (*types.RecipeResponse, error) {
	args := m.Called(ctx, actorID, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.RecipeResponse), args.Error(1)
}

// DeleteRecipe mocks the DeleteRecipe method
func (m *MockRecipeService) DeleteRecipe(ctx context.Context, actorID, id uuid.UUID) error {
	args := m.Called(ctx, actorID, id)
	return args.Error(0)
}

// ListRecipes mocks the ListRecipes method
func (m *MockRecipeService) ListRecipes(ctx context.Context, viewerID uuid.UUID, filter types.RecipeFilter, page types.PageQuery) ([]types.RecipeResponse, int64, error) {
	args := m.Called(ctx, viewerID, filter, page)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]types.RecipeResponse), args.Get(1).(int64), args.Error(2)
}

// MockShoppingListService is a mock implementation of the shopping list service
type MockShoppingListService struct {
	mock.Mock
}

func (m *MockShoppingListService) Aggregate(ctx context.Context, userID uuid.UUID) ([]service.ShoppingListItem, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.ShoppingListItem), args.Error(1)
}

func (m *MockShoppingListService) Download(ctx context.Context, userID uuid.UUID, now time.Time) (string, []byte, error) {
	args := m.Called(ctx, userID, now)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).([]byte), args.Error(2)
}
