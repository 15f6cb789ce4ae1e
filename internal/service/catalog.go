package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/cookbook/backend/internal/apperr"
	"github.com/pageza/cookbook/backend/internal/model"
	"github.com/pageza/cookbook/backend/internal/types"
)

// Catalog is an immutable snapshot of tags and ingredients keyed by id.
// It is shared read-only between requests.
type Catalog struct {
	tags        map[uuid.UUID]model.Tag
	tagList     []model.Tag
	ingredients map[uuid.UUID]model.Ingredient
	ingList     []model.Ingredient
}

// NewCatalog builds a snapshot. Both lists are copied and sorted by name.
func NewCatalog(tags []model.Tag, ingredients []model.Ingredient) *Catalog {
	c := &Catalog{
		tags:        make(map[uuid.UUID]model.Tag, len(tags)),
		tagList:     append([]model.Tag(nil), tags...),
		ingredients: make(map[uuid.UUID]model.Ingredient, len(ingredients)),
		ingList:     append([]model.Ingredient(nil), ingredients...),
	}
	sort.SliceStable(c.tagList, func(i, j int) bool { return c.tagList[i].Name < c.tagList[j].Name })
	sort.SliceStable(c.ingList, func(i, j int) bool {
		if c.ingList[i].Name != c.ingList[j].Name {
			return c.ingList[i].Name < c.ingList[j].Name
		}
		return c.ingList[i].MeasurementUnit < c.ingList[j].MeasurementUnit
	})
	for _, t := range c.tagList {
		c.tags[t.ID] = t
	}
	for _, i := range c.ingList {
		c.ingredients[i.ID] = i
	}
	return c
}

func (c *Catalog) Tag(id uuid.UUID) (model.Tag, bool) {
	t, ok := c.tags[id]
	return t, ok
}

func (c *Catalog) Ingredient(id uuid.UUID) (model.Ingredient, bool) {
	i, ok := c.ingredients[id]
	return i, ok
}

// Tags returns every tag ordered by name.
func (c *Catalog) Tags() []model.Tag {
	return append([]model.Tag(nil), c.tagList...)
}

// GetTag returns a tag or a NotFound error.
func (c *Catalog) GetTag(id uuid.UUID) (model.Tag, error) {
	t, ok := c.tags[id]
	if !ok {
		return model.Tag{}, apperr.NotFound("tag not found")
	}
	return t, nil
}

// GetIngredient returns an ingredient or a NotFound error.
func (c *Catalog) GetIngredient(id uuid.UUID) (model.Ingredient, error) {
	i, ok := c.ingredients[id]
	if !ok {
		return model.Ingredient{}, apperr.NotFound("ingredient not found")
	}
	return i, nil
}

// SearchIngredients returns ingredients whose name starts with prefix,
// ignoring case. An empty prefix returns everything.
func (c *Catalog) SearchIngredients(prefix string) []model.Ingredient {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if prefix == "" {
		return append([]model.Ingredient(nil), c.ingList...)
	}
	var out []model.Ingredient
	for _, i := range c.ingList {
		if strings.HasPrefix(strings.ToLower(i.Name), prefix) {
			out = append(out, i)
		}
	}
	return out
}

// LoadCatalog reads the reference tables into a new snapshot.
func LoadCatalog(ctx context.Context, db *gorm.DB) (*Catalog, error) {
	var tags []model.Tag
	if err := db.WithContext(ctx).Order("name").Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("failed to load tags: %w", err)
	}
	var ingredients []model.Ingredient
	if err := db.WithContext(ctx).Order("name").Find(&ingredients).Error; err != nil {
		return nil, fmt.Errorf("failed to load ingredients: %w", err)
	}
	return NewCatalog(tags, ingredients), nil
}

// CatalogStore hands out the current snapshot. Reload swaps in a fresh one
// without disturbing readers of the old one.
type CatalogStore struct {
	db      *gorm.DB
	current atomic.Pointer[Catalog]
}

// NewCatalogStore loads the first snapshot from db.
func NewCatalogStore(ctx context.Context, db *gorm.DB) (*CatalogStore, error) {
	s := &CatalogStore{db: db}
	if err := s.Reload(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *CatalogStore) Snapshot() *Catalog {
	return s.current.Load()
}

func (s *CatalogStore) Reload(ctx context.Context) error {
	c, err := LoadCatalog(ctx, s.db)
	if err != nil {
		return err
	}
	s.current.Store(c)
	return nil
}

// CatalogService serves the read-only tag and ingredient endpoints.
type CatalogService struct {
	store *CatalogStore
}

func NewCatalogService(store *CatalogStore) *CatalogService {
	return &CatalogService{store: store}
}

func (s *CatalogService) ListTags(ctx context.Context) []types.TagResponse {
	return tagResponses(s.store.Snapshot().Tags())
}

func (s *CatalogService) GetTag(ctx context.Context, id uuid.UUID) (*types.TagResponse, error) {
	tag, err := s.store.Snapshot().GetTag(id)
	if err != nil {
		return nil, err
	}
	return &tagResponses([]model.Tag{tag})[0], nil
}

func (s *CatalogService) SearchIngredients(ctx context.Context, prefix string) []types.IngredientResponse {
	return ingredientResponses(s.store.Snapshot().SearchIngredients(prefix))
}

func (s *CatalogService) GetIngredient(ctx context.Context, id uuid.UUID) (*types.IngredientResponse, error) {
	ing, err := s.store.Snapshot().GetIngredient(id)
	if err != nil {
		return nil, err
	}
	return &ingredientResponses([]model.Ingredient{ing})[0], nil
}

// Reload refreshes the snapshot after the reference tables change.
func (s *CatalogService) Reload(ctx context.Context) error {
	return s.store.Reload(ctx)
}
