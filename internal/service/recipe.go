package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/cookbook/backend/internal/apperr"
	"github.com/pageza/cookbook/backend/internal/metrics"
	"github.com/pageza/cookbook/backend/internal/model"
	"github.com/pageza/cookbook/backend/internal/types"
)

// RecipeService handles recipe operations
type RecipeService struct {
	db      *gorm.DB
	catalog *CatalogStore
	views   *viewBuilder
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB, catalog *CatalogStore, images ImageResolver) *RecipeService {
	return &RecipeService{
		db:      db,
		catalog: catalog,
		views:   newViewBuilder(db, images),
	}
}

// CreateRecipe validates and stores a recipe with its tags and ingredient lines
func (s *RecipeService) CreateRecipe(ctx context.Context, authorID uuid.UUID, req *types.CreateRecipeRequest) (*types.RecipeResponse, error) {
	cookingTime := req.CookingTime
	valid, err := ValidateRecipe(s.catalog.Snapshot(), RecipeDraft{
		Tags:        req.Tags,
		Ingredients: req.Ingredients,
		CookingTime: &cookingTime,
	})
	if err != nil {
		return nil, err
	}

	recipe := &model.Recipe{
		AuthorID:    authorID,
		Name:        req.Name,
		Description: req.Text,
		Image:       req.Image,
		CookingTime: *valid.CookingTime,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(recipe).Error; err != nil {
			return err
		}
		if err := tx.Model(recipe).Association("Tags").Replace(valid.Tags); err != nil {
			return err
		}
		return insertLines(tx, recipe.ID, valid.Lines)
	})
	if err != nil {
		return nil, apperr.Internal("failed to create recipe", err)
	}

	metrics.RecordRecipeWrite("create")
	return s.GetRecipe(ctx, authorID, recipe.ID)
}

// UpdateRecipe applies a partial update. Only the author or an admin may
// update; the payload is validated after the permission check.
func (s *RecipeService) UpdateRecipe(ctx context.Context, actorID, id uuid.UUID, req *types.UpdateRecipeRequest) (*types.RecipeResponse, error) {
	recipe, err := s.findRecipe(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, actorID, recipe); err != nil {
		return nil, err
	}

	valid, err := ValidateRecipe(s.catalog.Snapshot(), RecipeDraft{
		Tags:        req.Tags,
		Ingredients: req.Ingredients,
		CookingTime: req.CookingTime,
		Partial:     true,
	})
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Text != nil {
		updates["description"] = *req.Text
	}
	if req.Image != nil {
		updates["image"] = *req.Image
	}
	if valid.CookingTime != nil {
		updates["cooking_time"] = *valid.CookingTime
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Recipe{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}
		if valid.Tags != nil {
			if err := tx.Model(&model.Recipe{ID: id}).Association("Tags").Replace(valid.Tags); err != nil {
				return err
			}
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&model.RecipeIngredient{}).Error; err != nil {
			return err
		}
		return insertLines(tx, id, valid.Lines)
	})
	if err != nil {
		return nil, apperr.Internal("failed to update recipe", err)
	}

	metrics.RecordRecipeWrite("update")
	return s.GetRecipe(ctx, actorID, id)
}

// DeleteRecipe removes a recipe together with its lines, tag links,
// favorites and cart entries
func (s *RecipeService) DeleteRecipe(ctx context.Context, actorID, id uuid.UUID) error {
	recipe, err := s.findRecipe(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorize(ctx, actorID, recipe); err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&model.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&model.ShoppingCartEntry{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&model.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Model(recipe).Association("Tags").Clear(); err != nil {
			return err
		}
		return tx.Delete(&model.Recipe{}, "id = ?", id).Error
	})
	if err != nil {
		return apperr.Internal("failed to delete recipe", err)
	}

	metrics.RecordRecipeWrite("delete")
	return nil
}

// GetRecipe retrieves a recipe by ID as seen by viewer
func (s *RecipeService) GetRecipe(ctx context.Context, viewerID, id uuid.UUID) (*types.RecipeResponse, error) {
	var recipe model.Recipe
	err := preloadRecipe(s.db.WithContext(ctx)).First(&recipe, "recipes.id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("recipe not found")
		}
		return nil, apperr.Internal("failed to load recipe", err)
	}

	out, err := s.views.recipes(ctx, viewerID, []model.Recipe{recipe})
	if err != nil {
		return nil, apperr.Internal("failed to load recipe", err)
	}
	return &out[0], nil
}

// ListRecipes returns one page of recipes, newest first, and the total
// number of recipes matching filter
func (s *RecipeService) ListRecipes(ctx context.Context, viewerID uuid.UUID, filter types.RecipeFilter, page types.PageQuery) ([]types.RecipeResponse, int64, error) {
	query := s.db.WithContext(ctx).Model(&model.Recipe{})

	if len(filter.TagSlugs) > 0 {
		tagged := s.db.Table("recipe_tags").
			Select("recipe_tags.recipe_id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug IN ?", filter.TagSlugs)
		query = query.Where("recipes.id IN (?)", tagged)
	}
	if filter.AuthorID != nil {
		query = query.Where("recipes.author_id = ?", *filter.AuthorID)
	}
	if viewerID != uuid.Nil {
		if filter.IsFavorited {
			favorites := s.db.Model(&model.Favorite{}).Select("recipe_id").Where("user_id = ?", viewerID)
			query = query.Where("recipes.id IN (?)", favorites)
		}
		if filter.IsInShoppingCart {
			cart := s.db.Model(&model.ShoppingCartEntry{}).Select("recipe_id").Where("user_id = ?", viewerID)
			query = query.Where("recipes.id IN (?)", cart)
		}
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperr.Internal("failed to count recipes", err)
	}

	var recipes []model.Recipe
	err := preloadRecipe(query).
		Order("recipes.created_at DESC").
		Order("recipes.id").
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&recipes).Error
	if err != nil {
		return nil, 0, apperr.Internal("failed to list recipes", err)
	}

	out, err := s.views.recipes(ctx, viewerID, recipes)
	if err != nil {
		return nil, 0, apperr.Internal("failed to list recipes", err)
	}
	return out, total, nil
}

func preloadRecipe(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients.Ingredient")
}

func (s *RecipeService) findRecipe(ctx context.Context, id uuid.UUID) (*model.Recipe, error) {
	var recipe model.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("recipe not found")
		}
		return nil, apperr.Internal("failed to load recipe", err)
	}
	return &recipe, nil
}

func (s *RecipeService) authorize(ctx context.Context, actorID uuid.UUID, recipe *model.Recipe) error {
	if recipe.AuthorID == actorID {
		return nil
	}
	var actor model.User
	if err := s.db.WithContext(ctx).Select("id", "role").First(&actor, "id = ?", actorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.PermissionDenied("you can only change your own recipes")
		}
		return apperr.Internal("failed to load user", err)
	}
	if !actor.IsAdmin() {
		return apperr.PermissionDenied("you can only change your own recipes")
	}
	return nil
}

func insertLines(tx *gorm.DB, recipeID uuid.UUID, lines []IngredientLine) error {
	rows := make([]model.RecipeIngredient, len(lines))
	for i, line := range lines {
		rows[i] = model.RecipeIngredient{
			RecipeID:     recipeID,
			IngredientID: line.IngredientID,
			Amount:       line.Amount,
		}
	}
	return tx.Omit(clause.Associations).Create(&rows).Error
}
