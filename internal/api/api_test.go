package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/pageza/cookbook/backend/internal/api"
	"github.com/pageza/cookbook/backend/internal/database"
	"github.com/pageza/cookbook/backend/internal/middleware"
	"github.com/pageza/cookbook/backend/internal/service"
	"github.com/pageza/cookbook/backend/internal/testhelpers"
	"github.com/pageza/cookbook/backend/internal/validation"
)

type testServer struct {
	t       *testing.T
	db      *gorm.DB
	router  *gin.Engine
	catalog *testhelpers.Catalog
	auth    *service.AuthService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, validation.RegisterGinValidators())

	db := testhelpers.SetupSQLite(t)
	catalog := testhelpers.SeedCatalog(t, db)

	store, err := service.NewCatalogStore(context.Background(), db)
	require.NoError(t, err)

	auth := service.NewAuthService(db, "test-secret", time.Hour).WithHashCost(bcrypt.MinCost)

	router := gin.New()
	router.Use(middleware.ErrorHandler(), middleware.RequestLogger())
	api.RegisterRoutes(router, api.Dependencies{
		Auth:      auth,
		Users:     service.NewUserService(db),
		Catalog:   service.NewCatalogService(store),
		Recipes:   service.NewRecipeService(db, store, nil),
		Social:    service.NewSocialService(db, nil),
		Shopping:  service.NewShoppingListService(db),
		Paginator: api.Paginator{DefaultLimit: 6, MaxLimit: 100, PublicURL: "http://cookbook.test"},
		HealthCheck: func(ctx context.Context) error {
			return database.HealthCheck(ctx, db)
		},
	})

	return &testServer{t: t, db: db, router: router, catalog: catalog, auth: auth}
}

func (s *testServer) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	s.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// signup registers username through the API and returns its token
func (s *testServer) signup(username string) (string, string) {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/users/", "", map[string]string{
		"email":      username + "@example.com",
		"username":   username,
		"first_name": "Test",
		"last_name":  "User",
		"password":   "correct-horse",
	})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	var user struct {
		ID string `json:"id"`
	}
	decode(s.t, w, &user)

	w = s.do(http.MethodPost, "/api/auth/token/login/", "", map[string]string{
		"email":    username + "@example.com",
		"password": "correct-horse",
	})
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())
	var token struct {
		AuthToken string `json:"auth_token"`
	}
	decode(s.t, w, &token)
	return user.ID, token.AuthToken
}

func (s *testServer) recipeBody(name string, lines ...map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{
		"tags":         []string{s.catalog.Breakfast.ID.String()},
		"ingredients":  lines,
		"name":         name,
		"text":         "Mix and bake.",
		"cooking_time": 25,
	}
}

func ingredientLine(id interface{ String() string }, amount int) map[string]interface{} {
	return map[string]interface{}{"id": id.String(), "amount": amount}
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

type errorBody struct {
	Error struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

func errorOf(t *testing.T, w *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	decode(t, w, &body)
	return body
}
