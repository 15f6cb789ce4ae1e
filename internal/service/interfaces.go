package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pageza/cookbook/backend/internal/model"
	"github.com/pageza/cookbook/backend/internal/types"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, req *types.RegisterRequest) (*model.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	GenerateToken(user *model.User) (string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
	SetPassword(ctx context.Context, userID uuid.UUID, current, next string) error
	GetUserByID(ctx context.Context, userID uuid.UUID) (*model.User, error)
}

// IUserService defines the interface for user profile operations
type IUserService interface {
	GetUser(ctx context.Context, viewerID, id uuid.UUID) (*types.UserResponse, error)
	Me(ctx context.Context, userID uuid.UUID) (*types.UserResponse, error)
	ListUsers(ctx context.Context, viewerID uuid.UUID, page types.PageQuery) ([]types.UserResponse, int64, error)
}

// ICatalogService defines the interface for tag and ingredient lookups
type ICatalogService interface {
	ListTags(ctx context.Context) []types.TagResponse
	GetTag(ctx context.Context, id uuid.UUID) (*types.TagResponse, error)
	SearchIngredients(ctx context.Context, prefix string) []types.IngredientResponse
	GetIngredient(ctx context.Context, id uuid.UUID) (*types.IngredientResponse, error)
	Reload(ctx context.Context) error
}

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	CreateRecipe(ctx context.Context, authorID uuid.UUID, req *types.CreateRecipeRequest) (*types.RecipeResponse, error)
	GetRecipe(ctx context.Context, viewerID, id uuid.UUID) (*types.RecipeResponse, error)
	UpdateRecipe(ctx context.Context, actorID, id uuid.UUID, req *types.UpdateRecipeRequest) (*types.RecipeResponse, error)
	DeleteRecipe(ctx context.Context, actorID, id uuid.UUID) error
	ListRecipes(ctx context.Context, viewerID uuid.UUID, filter types.RecipeFilter, page types.PageQuery) ([]types.RecipeResponse, int64, error)
}

// ISocialService defines the interface for favorites, cart and subscriptions
type ISocialService interface {
	AddFavorite(ctx context.Context, userID, recipeID uuid.UUID) (*types.ShortRecipeResponse, error)
	RemoveFavorite(ctx context.Context, userID, recipeID uuid.UUID) error
	AddToCart(ctx context.Context, userID, recipeID uuid.UUID) (*types.ShortRecipeResponse, error)
	RemoveFromCart(ctx context.Context, userID, recipeID uuid.UUID) error
	Subscribe(ctx context.Context, subscriberID, authorID uuid.UUID, recipesLimit int) (*types.SubscriptionResponse, error)
	Unsubscribe(ctx context.Context, subscriberID, authorID uuid.UUID) error
	ListSubscriptions(ctx context.Context, viewerID uuid.UUID, page types.PageQuery, recipesLimit int) ([]types.SubscriptionResponse, int64, error)
}

// IShoppingListService defines the interface for the shopping-list download
type IShoppingListService interface {
	Aggregate(ctx context.Context, userID uuid.UUID) ([]ShoppingListItem, error)
	Download(ctx context.Context, userID uuid.UUID, now time.Time) (string, []byte, error)
}

var (
	_ IAuthService         = (*AuthService)(nil)
	_ IUserService         = (*UserService)(nil)
	_ ICatalogService      = (*CatalogService)(nil)
	_ IRecipeService       = (*RecipeService)(nil)
	_ ISocialService       = (*SocialService)(nil)
	_ IShoppingListService = (*ShoppingListService)(nil)
)
