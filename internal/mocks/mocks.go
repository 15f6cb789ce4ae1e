// Package mocks holds testify mocks of the service interfaces for handler tests.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/cookbook/backend/internal/service"
	"github.com/pageza/cookbook/backend/internal/types"
)

var (
	_ service.IAuthService         = (*MockAuthService)(nil)
	_ service.IUserService         = (*MockUserService)(nil)
	_ service.ICatalogService      = (*MockCatalogService)(nil)
	_ service.IRecipeService       = (*MockRecipeService)(nil)
	_ service.ISocialService       = (*MockSocialService)(nil)
	_ service.IShoppingListService = (*MockShoppingListService)(nil)
)

// MockUserService is a mock implementation of the user service
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUser(ctx context.Context, viewerID, id uuid.UUID) (*types.UserResponse, error) {
	args := m.Called(ctx, viewerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.UserResponse), args.Error(1)
}

func (m *MockUserService) Me(ctx context.Context, userID uuid.UUID) (*types.UserResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.UserResponse), args.Error(1)
}

func (m *MockUserService) ListUsers(ctx context.Context, viewerID uuid.UUID, page types.PageQuery) ([]types.UserResponse, int64, error) {
	args := m.Called(ctx, viewerID, page)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]types.UserResponse), args.Get(1).(int64), args.Error(2)
}

// MockCatalogService is a mock implementation of the catalog service
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) ListTags(ctx context.Context) []types.TagResponse {
	args := m.Called(ctx)
	return args.Get(0).([]types.TagResponse)
}

func (m *MockCatalogService) GetTag(ctx context.Context, id uuid.UUID) (*types.TagResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TagResponse), args.Error(1)
}

func (m *MockCatalogService) SearchIngredients(ctx context.Context, prefix string) []types.IngredientResponse {
	args := m.Called(ctx, prefix)
	return args.Get(0).([]types.IngredientResponse)
}

func (m *MockCatalogService) GetIngredient(ctx context.Context, id uuid.UUID) (*types.IngredientResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.IngredientResponse), args.Error(1)
}

func (m *MockCatalogService) Reload(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
