package service

import (
	"github.com/google/uuid"

	"github.com/pageza/cookbook/backend/internal/apperr"
	"github.com/pageza/cookbook/backend/internal/model"
	"github.com/pageza/cookbook/backend/internal/types"
)

// CatalogReader is the lookup the recipe validator needs.
type CatalogReader interface {
	Tag(id uuid.UUID) (model.Tag, bool)
	Ingredient(id uuid.UUID) (model.Ingredient, bool)
}

// RecipeDraft is a proposed recipe before persistence. With Partial set
// (PATCH), a nil Tags or CookingTime means "keep the stored value".
type RecipeDraft struct {
	Tags        []uuid.UUID
	Ingredients []types.RecipeIngredientInput
	CookingTime *int
	Partial     bool
}

// IngredientLine is an accepted {ingredient, amount} pair.
type IngredientLine struct {
	IngredientID uuid.UUID
	Amount       int
}

// ValidatedRecipe holds the accepted lists in input order. Tags is nil and
// CookingTime is nil when a partial draft left them out.
type ValidatedRecipe struct {
	Tags        []model.Tag
	Lines       []IngredientLine
	CookingTime *int
}

// Messages returned by ValidateRecipe.
const (
	MsgTagsRequired        = "specify at least one tag"
	MsgNoSuchTag           = "no such tag"
	MsgTagsRepeat          = "tags must not repeat"
	MsgIngredientsRequired = "specify at least one ingredient"
	MsgNoSuchIngredient    = "no such ingredient"
	MsgAmountTooSmall      = "add at least a pinch"
	MsgIngredientRepeat    = "ingredient must be unique"
	MsgCookingTime         = "cooking time must be at least 1 minute"
)

// ValidateRecipe checks tags, then ingredient lines, then cooking time and
// stops at the first failure. It has no side effects.
func ValidateRecipe(catalog CatalogReader, draft RecipeDraft) (*ValidatedRecipe, error) {
	out := &ValidatedRecipe{}

	if draft.Tags != nil || !draft.Partial {
		tags, err := validateTags(catalog, draft.Tags)
		if err != nil {
			return nil, err
		}
		out.Tags = tags
	}

	lines, err := validateIngredients(catalog, draft.Ingredients)
	if err != nil {
		return nil, err
	}
	out.Lines = lines

	if draft.CookingTime != nil || !draft.Partial {
		if draft.CookingTime == nil || *draft.CookingTime < 1 {
			return nil, apperr.InvalidField("cooking_time", MsgCookingTime)
		}
		ct := *draft.CookingTime
		out.CookingTime = &ct
	}

	return out, nil
}

func validateTags(catalog CatalogReader, ids []uuid.UUID) ([]model.Tag, error) {
	if len(ids) == 0 {
		return nil, apperr.InvalidField("tags", MsgTagsRequired)
	}

	tags := make([]model.Tag, 0, len(ids))
	for _, id := range ids {
		tag, ok := catalog.Tag(id)
		if !ok {
			return nil, apperr.InvalidField("tags", MsgNoSuchTag)
		}
		tags = append(tags, tag)
	}

	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return nil, apperr.InvalidField("tags", MsgTagsRepeat)
		}
		seen[id] = struct{}{}
	}

	return tags, nil
}

func validateIngredients(catalog CatalogReader, inputs []types.RecipeIngredientInput) ([]IngredientLine, error) {
	if len(inputs) == 0 {
		return nil, apperr.InvalidField("ingredients", MsgIngredientsRequired)
	}

	for _, in := range inputs {
		if _, ok := catalog.Ingredient(in.ID); !ok {
			return nil, apperr.InvalidField("ingredients", MsgNoSuchIngredient)
		}
	}

	lines := make([]IngredientLine, 0, len(inputs))
	seen := make(map[uuid.UUID]struct{}, len(inputs))
	for _, in := range inputs {
		if in.Amount < 1 {
			return nil, apperr.InvalidField("ingredients", MsgAmountTooSmall)
		}
		if _, dup := seen[in.ID]; dup {
			return nil, apperr.InvalidField("ingredients", MsgIngredientRepeat)
		}
		seen[in.ID] = struct{}{}
		lines = append(lines, IngredientLine{IngredientID: in.ID, Amount: in.Amount})
	}

	return lines, nil
}
