package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pageza/cookbook/backend/config"
	"github.com/pageza/cookbook/backend/internal/api"
	"github.com/pageza/cookbook/backend/internal/database"
	"github.com/pageza/cookbook/backend/internal/middleware"
	"github.com/pageza/cookbook/backend/internal/model"
	"github.com/pageza/cookbook/backend/internal/seed"
	"github.com/pageza/cookbook/backend/internal/server"
	"github.com/pageza/cookbook/backend/internal/service"
	"github.com/pageza/cookbook/backend/internal/testhelpers"
)

type client struct {
	t    *testing.T
	base string
}

func (c *client) call(method, path, token string, body interface{}) (int, []byte, http.Header) {
	c.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, c.base+path, reader)
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	return resp.StatusCode, raw, resp.Header
}

func (c *client) signup(username string) (string, string) {
	c.t.Helper()
	status, raw, _ := c.call(http.MethodPost, "/api/users/", "", map[string]string{
		"email": username + "@example.com", "username": username,
		"first_name": "Test", "last_name": "User", "password": "correct-horse",
	})
	require.Equal(c.t, http.StatusCreated, status, string(raw))
	var user struct {
		ID string `json:"id"`
	}
	require.NoError(c.t, json.Unmarshal(raw, &user))

	status, raw, _ = c.call(http.MethodPost, "/api/auth/token/login/", "", map[string]string{
		"email": username + "@example.com", "password": "correct-horse",
	})
	require.Equal(c.t, http.StatusOK, status, string(raw))
	var token struct {
		AuthToken string `json:"auth_token"`
	}
	require.NoError(c.t, json.Unmarshal(raw, &token))
	return user.ID, token.AuthToken
}

func setupServer(t *testing.T) (*client, *gorm.DB) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	db := testhelpers.SetupPostgres(t)
	ctx := context.Background()

	_, err := seed.SeedTags(ctx, db)
	require.NoError(t, err)
	f, err := os.Open(filepath.Join(filepath.Dir(testhelpers.MigrationsDir(t)), "data", "ingredients.csv"))
	require.NoError(t, err)
	defer f.Close()
	_, err = seed.ImportIngredients(ctx, db, f)
	require.NoError(t, err)

	store, err := service.NewCatalogStore(ctx, db)
	require.NoError(t, err)

	redisClient := testhelpers.SetupRedis(t)

	cfg := config.Defaults()
	cfg.PublicURL = ""
	srv, err := server.New(&cfg, api.Dependencies{
		Auth:          service.NewAuthService(db, "integration-secret", time.Hour),
		Users:         service.NewUserService(db),
		Catalog:       service.NewCatalogService(store),
		Recipes:       service.NewRecipeService(db, store, nil),
		Social:        service.NewSocialService(db, nil),
		Shopping:      service.NewShoppingListService(db),
		RecipeLimiter: middleware.NewRecipeCreationRateLimiter(redisClient, 50, time.Hour),
		HealthCheck: func(ctx context.Context) error {
			return database.HealthCheck(ctx, db)
		},
	})
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return &client{t: t, base: ts.URL}, db
}

func ingredientID(t *testing.T, c *client, name string) string {
	status, raw, _ := c.call(http.MethodGet, "/api/ingredients/?name="+name, "", nil)
	require.Equal(t, http.StatusOK, status)
	var found []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(raw, &found))
	for _, ing := range found {
		if ing.Name == name {
			return ing.ID
		}
	}
	t.Fatalf("ingredient %q not imported", name)
	return ""
}

func TestRecipeLifecycle(t *testing.T) {
	c, db := setupServer(t)

	aliceID, alice := c.signup("alice")
	_, bob := c.signup("bob")

	status, raw, _ := c.call(http.MethodGet, "/api/tags/", "", nil)
	require.Equal(t, http.StatusOK, status)
	var tags []struct {
		ID   string `json:"id"`
		Slug string `json:"slug"`
	}
	require.NoError(t, json.Unmarshal(raw, &tags))
	require.Len(t, tags, len(seed.DefaultTags))

	sugar := ingredientID(t, c, "sugar")
	egg := ingredientID(t, c, "egg")

	create := func(name string, lines ...map[string]interface{}) string {
		status, raw, _ := c.call(http.MethodPost, "/api/recipes/", alice, map[string]interface{}{
			"tags": []string{tags[0].ID}, "ingredients": lines,
			"name": name, "text": "Whisk everything.", "cooking_time": 10,
		})
		require.Equal(t, http.StatusCreated, status, string(raw))
		var recipe struct {
			ID string `json:"id"`
		}
		require.NoError(t, json.Unmarshal(raw, &recipe))
		return recipe.ID
	}
	cake := create("Cake", map[string]interface{}{"id": sugar, "amount": 150}, map[string]interface{}{"id": egg, "amount": 3})
	cookies := create("Cookies", map[string]interface{}{"id": sugar, "amount": 50})

	for _, id := range []string{cake, cookies} {
		status, raw, _ = c.call(http.MethodPost, "/api/recipes/"+id+"/shopping_cart/", bob, nil)
		require.Equal(t, http.StatusCreated, status, string(raw))
	}
	status, _, _ = c.call(http.MethodPost, "/api/recipes/"+cake+"/favorite/", bob, nil)
	require.Equal(t, http.StatusCreated, status)

	status, raw, header := c.call(http.MethodGet, "/api/recipes/download_shopping_cart/", bob, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, header.Get("Content-Disposition"), "attachment")
	assert.Equal(t, "My shopping list.\n\n* egg (pcs) - 3\n* sugar (g) - 200\n", string(raw))

	status, raw, _ = c.call(http.MethodPost, "/api/users/"+aliceID+"/subscribe/?recipes_limit=1", bob, nil)
	require.Equal(t, http.StatusCreated, status, string(raw))
	var sub struct {
		RecipesCount int64         `json:"recipes_count"`
		Recipes      []interface{} `json:"recipes"`
	}
	require.NoError(t, json.Unmarshal(raw, &sub))
	assert.EqualValues(t, 2, sub.RecipesCount)
	assert.Len(t, sub.Recipes, 1)

	status, raw, _ = c.call(http.MethodGet, "/api/recipes/?is_in_shopping_cart=1&limit=1", bob, nil)
	require.Equal(t, http.StatusOK, status)
	var page struct {
		Count int64   `json:"count"`
		Next  *string `json:"next"`
	}
	require.NoError(t, json.Unmarshal(raw, &page))
	assert.EqualValues(t, 2, page.Count)
	require.NotNil(t, page.Next)
	assert.Contains(t, *page.Next, c.base+"/api/recipes/?")

	status, _, _ = c.call(http.MethodDelete, "/api/recipes/"+cake+"/", alice, nil)
	require.Equal(t, http.StatusNoContent, status)

	var favorites, cart int64
	require.NoError(t, db.Model(&model.Favorite{}).Count(&favorites).Error)
	require.NoError(t, db.Model(&model.ShoppingCartEntry{}).Count(&cart).Error)
	assert.Zero(t, favorites)
	assert.EqualValues(t, 1, cart)

	status, raw, _ = c.call(http.MethodGet, "/api/recipes/download_shopping_cart/", bob, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "My shopping list.\n\n* sugar (g) - 50\n", string(raw))

	status, raw, _ = c.call(http.MethodGet, "/api/rate-limits/recipe-creation/", alice, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(raw), `"remaining":48`)
}

func TestHealthAndMetrics(t *testing.T) {
	c, _ := setupServer(t)

	status, _, _ := c.call(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, status)

	c.call(http.MethodGet, "/api/tags/", "", nil)
	status, raw, _ := c.call(http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(raw), "api_requests_total")
}
