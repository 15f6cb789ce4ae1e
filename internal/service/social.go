package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/cookbook/backend/internal/apperr"
	"github.com/pageza/cookbook/backend/internal/metrics"
	"github.com/pageza/cookbook/backend/internal/model"
	"github.com/pageza/cookbook/backend/internal/types"
)

// SocialService manages favorites, shopping-cart entries and subscriptions.
// Each relation is a set of unique pairs: adding an existing pair or
// removing a missing one is an error.
type SocialService struct {
	db    *gorm.DB
	views *viewBuilder
}

func NewSocialService(db *gorm.DB, images ImageResolver) *SocialService {
	return &SocialService{db: db, views: newViewBuilder(db, images)}
}

// recipeRelation describes a user-to-recipe pair table.
type recipeRelation struct {
	name     string
	exists   string
	missing  string
	newRow   func(userID, recipeID uuid.UUID) interface{}
	rowModel interface{}
}

var (
	favoriteRelation = recipeRelation{
		name:    "favorite",
		exists:  "recipe is already in favorites",
		missing: "recipe is not in favorites",
		newRow: func(userID, recipeID uuid.UUID) interface{} {
			return &model.Favorite{UserID: userID, RecipeID: recipeID}
		},
		rowModel: &model.Favorite{},
	}
	cartRelation = recipeRelation{
		name:    "shopping_cart",
		exists:  "recipe is already in the shopping cart",
		missing: "recipe is not in the shopping cart",
		newRow: func(userID, recipeID uuid.UUID) interface{} {
			return &model.ShoppingCartEntry{UserID: userID, RecipeID: recipeID}
		},
		rowModel: &model.ShoppingCartEntry{},
	}
)

// AddFavorite marks a recipe as a favorite of the user
func (s *SocialService) AddFavorite(ctx context.Context, userID, recipeID uuid.UUID) (*types.ShortRecipeResponse, error) {
	out, err := s.addRecipeRelation(ctx, favoriteRelation, userID, recipeID)
	metrics.RecordSocialToggle(favoriteRelation.name, "add", err)
	return out, err
}

// RemoveFavorite unmarks a favorite recipe
func (s *SocialService) RemoveFavorite(ctx context.Context, userID, recipeID uuid.UUID) error {
	err := s.removeRecipeRelation(ctx, favoriteRelation, userID, recipeID)
	metrics.RecordSocialToggle(favoriteRelation.name, "remove", err)
	return err
}

// AddToCart puts a recipe into the user's shopping cart
func (s *SocialService) AddToCart(ctx context.Context, userID, recipeID uuid.UUID) (*types.ShortRecipeResponse, error) {
	out, err := s.addRecipeRelation(ctx, cartRelation, userID, recipeID)
	metrics.RecordSocialToggle(cartRelation.name, "add", err)
	return out, err
}

// RemoveFromCart takes a recipe out of the user's shopping cart
func (s *SocialService) RemoveFromCart(ctx context.Context, userID, recipeID uuid.UUID) error {
	err := s.removeRecipeRelation(ctx, cartRelation, userID, recipeID)
	metrics.RecordSocialToggle(cartRelation.name, "remove", err)
	return err
}

func (s *SocialService) addRecipeRelation(ctx context.Context, rel recipeRelation, userID, recipeID uuid.UUID) (*types.ShortRecipeResponse, error) {
	var recipe model.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("recipe not found")
		}
		return nil, apperr.Internal("failed to load recipe", err)
	}

	var n int64
	err := s.db.WithContext(ctx).Model(rel.rowModel).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&n).Error
	if err != nil {
		return nil, apperr.Internal("failed to check "+rel.name, err)
	}
	if n > 0 {
		return nil, apperr.AlreadyExists(rel.exists)
	}

	if err := s.db.WithContext(ctx).Create(rel.newRow(userID, recipeID)).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.AlreadyExists(rel.exists)
		}
		return nil, apperr.Internal("failed to add "+rel.name, err)
	}

	short := s.views.shortRecipe(ctx, recipe)
	return &short, nil
}

func (s *SocialService) removeRecipeRelation(ctx context.Context, rel recipeRelation, userID, recipeID uuid.UUID) error {
	var n int64
	if err := s.db.WithContext(ctx).Model(&model.Recipe{}).Where("id = ?", recipeID).Count(&n).Error; err != nil {
		return apperr.Internal("failed to load recipe", err)
	}
	if n == 0 {
		return apperr.NotFound("recipe not found")
	}

	res := s.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(rel.rowModel)
	if res.Error != nil {
		return apperr.Internal("failed to remove "+rel.name, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound(rel.missing)
	}
	return nil
}

// Subscribe makes subscriber follow author and returns the author with up
// to recipesLimit of their newest recipes (all of them when recipesLimit < 0).
func (s *SocialService) Subscribe(ctx context.Context, subscriberID, authorID uuid.UUID, recipesLimit int) (*types.SubscriptionResponse, error) {
	out, err := s.subscribe(ctx, subscriberID, authorID, recipesLimit)
	metrics.RecordSocialToggle("subscription", "add", err)
	return out, err
}

func (s *SocialService) subscribe(ctx context.Context, subscriberID, authorID uuid.UUID, recipesLimit int) (*types.SubscriptionResponse, error) {
	if subscriberID == authorID {
		return nil, apperr.InvalidInput("you cannot subscribe to yourself")
	}

	var author model.User
	if err := s.db.WithContext(ctx).First(&author, "id = ?", authorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Internal("failed to load user", err)
	}

	var n int64
	err := s.db.WithContext(ctx).Model(&model.Subscription{}).
		Where("subscriber_id = ? AND author_id = ?", subscriberID, authorID).
		Count(&n).Error
	if err != nil {
		return nil, apperr.Internal("failed to check subscription", err)
	}
	if n > 0 {
		return nil, apperr.AlreadyExists("already subscribed to this user")
	}

	sub := &model.Subscription{SubscriberID: subscriberID, AuthorID: authorID}
	if err := s.db.WithContext(ctx).Create(sub).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.AlreadyExists("already subscribed to this user")
		}
		return nil, apperr.Internal("failed to subscribe", err)
	}

	out, err := s.subscriptionViews(ctx, []model.User{author}, recipesLimit)
	if err != nil {
		return nil, apperr.Internal("failed to load subscription", err)
	}
	return &out[0], nil
}

// Unsubscribe removes the subscription from subscriber to author
func (s *SocialService) Unsubscribe(ctx context.Context, subscriberID, authorID uuid.UUID) error {
	err := s.unsubscribe(ctx, subscriberID, authorID)
	metrics.RecordSocialToggle("subscription", "remove", err)
	return err
}

func (s *SocialService) unsubscribe(ctx context.Context, subscriberID, authorID uuid.UUID) error {
	if subscriberID == authorID {
		return apperr.InvalidInput("you cannot unsubscribe from yourself")
	}

	var n int64
	if err := s.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", authorID).Count(&n).Error; err != nil {
		return apperr.Internal("failed to load user", err)
	}
	if n == 0 {
		return apperr.NotFound("user not found")
	}

	res := s.db.WithContext(ctx).
		Where("subscriber_id = ? AND author_id = ?", subscriberID, authorID).
		Delete(&model.Subscription{})
	if res.Error != nil {
		return apperr.Internal("failed to unsubscribe", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("not subscribed to this user")
	}
	return nil
}

// ListSubscriptions returns one page of the authors the viewer follows,
// ordered by username, and the total number of subscriptions.
func (s *SocialService) ListSubscriptions(ctx context.Context, viewerID uuid.UUID, page types.PageQuery, recipesLimit int) ([]types.SubscriptionResponse, int64, error) {
	query := s.db.WithContext(ctx).
		Model(&model.User{}).
		Joins("JOIN subscriptions ON subscriptions.author_id = users.id").
		Where("subscriptions.subscriber_id = ?", viewerID).
		Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperr.Internal("failed to count subscriptions", err)
	}

	var authors []model.User
	err := query.
		Order("users.username").
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&authors).Error
	if err != nil {
		return nil, 0, apperr.Internal("failed to list subscriptions", err)
	}

	out, err := s.subscriptionViews(ctx, authors, recipesLimit)
	if err != nil {
		return nil, 0, apperr.Internal("failed to list subscriptions", err)
	}
	return out, total, nil
}

// subscriptionViews renders followed authors. is_subscribed is true by
// construction.
func (s *SocialService) subscriptionViews(ctx context.Context, authors []model.User, recipesLimit int) ([]types.SubscriptionResponse, error) {
	if len(authors) == 0 {
		return []types.SubscriptionResponse{}, nil
	}

	ids := make([]uuid.UUID, len(authors))
	for i, a := range authors {
		ids[i] = a.ID
	}

	var counts []struct {
		AuthorID uuid.UUID
		Total    int64
	}
	err := s.db.WithContext(ctx).
		Model(&model.Recipe{}).
		Select("author_id, COUNT(*) AS total").
		Where("author_id IN ?", ids).
		Group("author_id").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	countByAuthor := make(map[uuid.UUID]int64, len(counts))
	for _, c := range counts {
		countByAuthor[c.AuthorID] = c.Total
	}

	out := make([]types.SubscriptionResponse, len(authors))
	for i, a := range authors {
		q := s.db.WithContext(ctx).
			Where("author_id = ?", a.ID).
			Order("created_at DESC").
			Order("id")
		if recipesLimit >= 0 {
			q = q.Limit(recipesLimit)
		}
		var recipes []model.Recipe
		if err := q.Find(&recipes).Error; err != nil {
			return nil, err
		}

		shorts := make([]types.ShortRecipeResponse, len(recipes))
		for j, r := range recipes {
			shorts[j] = s.views.shortRecipe(ctx, r)
		}
		out[i] = types.SubscriptionResponse{
			UserResponse: userResponse(a, true),
			Recipes:      shorts,
			RecipesCount: countByAuthor[a.ID],
		}
	}
	return out, nil
}
