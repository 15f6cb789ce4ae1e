package types

import "github.com/google/uuid"

// PageQuery selects one page of a list. Page is 1-based.
type PageQuery struct {
	Page  int
	Limit int
}

func (p PageQuery) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// RecipeFilter narrows the recipe list. The membership flags only apply
// to authenticated callers.
type RecipeFilter struct {
	TagSlugs         []string
	AuthorID         *uuid.UUID
	IsFavorited      bool
	IsInShoppingCart bool
}
