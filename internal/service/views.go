package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/cookbook/backend/internal/model"
	"github.com/pageza/cookbook/backend/internal/types"
)

// viewBuilder renders models into responses. Caller-dependent flags are
// computed with one membership query per relation for the whole batch,
// against the viewer passed in (uuid.Nil for anonymous callers).
type viewBuilder struct {
	db     *gorm.DB
	images ImageResolver
}

func newViewBuilder(db *gorm.DB, images ImageResolver) *viewBuilder {
	if images == nil {
		images = PassthroughImages{}
	}
	return &viewBuilder{db: db, images: images}
}

// memberSet returns which of targets are linked to owner in table.
func (v *viewBuilder) memberSet(ctx context.Context, table interface{}, ownerCol string, owner uuid.UUID, targetCol string, targets []uuid.UUID) (map[uuid.UUID]bool, error) {
	set := make(map[uuid.UUID]bool)
	if owner == uuid.Nil || len(targets) == 0 {
		return set, nil
	}

	var found []uuid.UUID
	err := v.db.WithContext(ctx).
		Model(table).
		Where(ownerCol+" = ? AND "+targetCol+" IN ?", owner, targets).
		Pluck(targetCol, &found).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load %s membership: %w", targetCol, err)
	}
	for _, id := range found {
		set[id] = true
	}
	return set, nil
}

func (v *viewBuilder) subscribedSet(ctx context.Context, viewer uuid.UUID, authorIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	return v.memberSet(ctx, &model.Subscription{}, "subscriber_id", viewer, "author_id", authorIDs)
}

func userResponse(u model.User, subscribed bool) types.UserResponse {
	return types.UserResponse{
		ID:           u.ID,
		Email:        u.Email,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		IsSubscribed: subscribed,
	}
}

func (v *viewBuilder) users(ctx context.Context, viewer uuid.UUID, users []model.User) ([]types.UserResponse, error) {
	ids := make([]uuid.UUID, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	subscribed, err := v.subscribedSet(ctx, viewer, ids)
	if err != nil {
		return nil, err
	}

	out := make([]types.UserResponse, len(users))
	for i, u := range users {
		out[i] = userResponse(u, subscribed[u.ID])
	}
	return out, nil
}

func tagResponses(tags []model.Tag) []types.TagResponse {
	out := make([]types.TagResponse, len(tags))
	for i, t := range tags {
		out[i] = types.TagResponse{ID: t.ID, Name: t.Name, Slug: t.Slug, Color: t.Color}
	}
	return out
}

func ingredientResponses(ingredients []model.Ingredient) []types.IngredientResponse {
	out := make([]types.IngredientResponse, len(ingredients))
	for i, ing := range ingredients {
		out[i] = types.IngredientResponse{ID: ing.ID, Name: ing.Name, MeasurementUnit: ing.MeasurementUnit}
	}
	return out
}

func (v *viewBuilder) shortRecipe(ctx context.Context, r model.Recipe) types.ShortRecipeResponse {
	return types.ShortRecipeResponse{
		ID:          r.ID,
		Name:        r.Name,
		Image:       v.images.ResolveImage(ctx, r.Image),
		CookingTime: r.CookingTime,
	}
}

// recipes expects Author, Tags and Ingredients.Ingredient to be preloaded.
func (v *viewBuilder) recipes(ctx context.Context, viewer uuid.UUID, recipes []model.Recipe) ([]types.RecipeResponse, error) {
	ids := make([]uuid.UUID, len(recipes))
	authorIDs := make([]uuid.UUID, 0, len(recipes))
	seenAuthor := make(map[uuid.UUID]bool)
	for i, r := range recipes {
		ids[i] = r.ID
		if !seenAuthor[r.AuthorID] {
			seenAuthor[r.AuthorID] = true
			authorIDs = append(authorIDs, r.AuthorID)
		}
	}

	favorited, err := v.memberSet(ctx, &model.Favorite{}, "user_id", viewer, "recipe_id", ids)
	if err != nil {
		return nil, err
	}
	inCart, err := v.memberSet(ctx, &model.ShoppingCartEntry{}, "user_id", viewer, "recipe_id", ids)
	if err != nil {
		return nil, err
	}
	subscribed, err := v.subscribedSet(ctx, viewer, authorIDs)
	if err != nil {
		return nil, err
	}

	out := make([]types.RecipeResponse, len(recipes))
	for i, r := range recipes {
		tags := append([]model.Tag(nil), r.Tags...)
		sort.Slice(tags, func(a, b int) bool { return tags[a].Name < tags[b].Name })

		lines := make([]types.RecipeIngredientResponse, len(r.Ingredients))
		for j, line := range r.Ingredients {
			lines[j] = types.RecipeIngredientResponse{
				ID:              line.IngredientID,
				Name:            line.Ingredient.Name,
				MeasurementUnit: line.Ingredient.MeasurementUnit,
				Amount:          line.Amount,
			}
		}
		sort.Slice(lines, func(a, b int) bool { return lines[a].Name < lines[b].Name })

		out[i] = types.RecipeResponse{
			ID:               r.ID,
			Tags:             tagResponses(tags),
			Author:           userResponse(r.Author, subscribed[r.AuthorID]),
			Ingredients:      lines,
			IsFavorited:      favorited[r.ID],
			IsInShoppingCart: inCart[r.ID],
			Name:             r.Name,
			Image:            v.images.ResolveImage(ctx, r.Image),
			Text:             r.Description,
			CookingTime:      r.CookingTime,
			CreatedAt:        r.CreatedAt,
		}
	}
	return out, nil
}
