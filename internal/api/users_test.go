package api_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}

func TestRegisterValidation(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api/users/", "", map[string]string{
		"email":      "not-an-email",
		"username":   "me",
		"first_name": "A",
		"last_name":  "B",
		"password":   "short",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := errorOf(t, w)
	assert.Equal(t, "INVALID_INPUT", body.Error.Code)
	assert.Contains(t, body.Error.Details, "email")
	assert.Contains(t, body.Error.Details, "username")
	assert.Contains(t, body.Error.Details, "password")

	s.signup("alice")
	w = s.do(http.MethodPost, "/api/users/", "", map[string]string{
		"email":      "alice@example.com",
		"username":   "alice",
		"first_name": "A",
		"last_name":  "B",
		"password":   "correct-horse",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "ALREADY_EXISTS", errorOf(t, w).Error.Code)
}

func TestLoginAndMe(t *testing.T) {
	s := newTestServer(t)
	id, token := s.signup("alice")

	w := s.do(http.MethodGet, "/api/users/me/", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var me map[string]interface{}
	decode(t, w, &me)
	assert.Equal(t, id, me["id"])
	assert.Equal(t, "alice", me["username"])
	assert.NotContains(t, me, "password_hash")

	w = s.do(http.MethodGet, "/api/users/me/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodPost, "/api/auth/token/login/", "", map[string]string{
		"email": "alice@example.com", "password": "nope-nope",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodPost, "/api/auth/token/logout/", token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestSetPasswordEndpoint(t *testing.T) {
	s := newTestServer(t)
	_, token := s.signup("alice")

	w := s.do(http.MethodPost, "/api/users/set_password/", token, map[string]string{
		"current_password": "wrong-one", "new_password": "another-horse",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, errorOf(t, w).Error.Details, "current_password")

	w = s.do(http.MethodPost, "/api/users/set_password/", token, map[string]string{
		"current_password": "correct-horse", "new_password": "another-horse",
	})
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestUserListPagination(t *testing.T) {
	s := newTestServer(t)
	s.signup("alice")
	s.signup("bob")
	s.signup("carol")

	w := s.do(http.MethodGet, "/api/users/?limit=2", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page struct {
		Count    int64                    `json:"count"`
		Next     *string                  `json:"next"`
		Previous *string                  `json:"previous"`
		Results  []map[string]interface{} `json:"results"`
	}
	decode(t, w, &page)
	assert.EqualValues(t, 3, page.Count)
	assert.Len(t, page.Results, 2)
	require.NotNil(t, page.Next)
	assert.Equal(t, "http://cookbook.test/api/users/?limit=2&page=2", *page.Next)
	assert.Nil(t, page.Previous)

	w = s.do(http.MethodGet, "/api/users/?limit=2&page=2", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	page.Next, page.Previous = nil, nil
	decode(t, w, &page)
	assert.Len(t, page.Results, 1)
	assert.Nil(t, page.Next)
	require.NotNil(t, page.Previous)
	assert.Equal(t, "http://cookbook.test/api/users/?limit=2&page=1", *page.Previous)

	w = s.do(http.MethodGet, "/api/users/?page=zero", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubscriptionEndpoints(t *testing.T) {
	s := newTestServer(t)
	aliceID, aliceToken := s.signup("alice")
	_, bobToken := s.signup("bob")

	w := s.do(http.MethodPost, "/api/recipes/", aliceToken, s.recipeBody("Pancakes", ingredientLine(s.catalog.Flour.ID, 200)))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(http.MethodPost, "/api/users/"+aliceID+"/subscribe/", aliceToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_INPUT", errorOf(t, w).Error.Code)

	w = s.do(http.MethodPost, "/api/users/"+aliceID+"/subscribe/", bobToken, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var sub map[string]interface{}
	decode(t, w, &sub)
	assert.Equal(t, true, sub["is_subscribed"])
	assert.EqualValues(t, 1, sub["recipes_count"])

	w = s.do(http.MethodPost, "/api/users/"+aliceID+"/subscribe/", bobToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "ALREADY_EXISTS", errorOf(t, w).Error.Code)

	w = s.do(http.MethodGet, "/api/users/"+aliceID+"/", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var alice map[string]interface{}
	decode(t, w, &alice)
	assert.Equal(t, true, alice["is_subscribed"])

	w = s.do(http.MethodGet, "/api/users/subscriptions/?recipes_limit=0", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page struct {
		Count   int64 `json:"count"`
		Results []struct {
			Username string        `json:"username"`
			Recipes  []interface{} `json:"recipes"`
		} `json:"results"`
	}
	decode(t, w, &page)
	assert.EqualValues(t, 1, page.Count)
	require.Len(t, page.Results, 1)
	assert.Equal(t, "alice", page.Results[0].Username)
	assert.Empty(t, page.Results[0].Recipes)

	w = s.do(http.MethodDelete, "/api/users/"+aliceID+"/subscribe/", bobToken, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = s.do(http.MethodDelete, "/api/users/"+aliceID+"/subscribe/", bobToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodGet, "/api/users/not-a-uuid/", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
