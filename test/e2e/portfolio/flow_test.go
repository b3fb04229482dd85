package portfolio_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestPortfolioFlow walks through bootstrap, record creation and the public aggregate.
func TestPortfolioFlow(t *testing.T) {
	baseURL, cleanup := setupContainer(t)
	defer cleanup()

	admin := newClient(t, baseURL)
	adminID := bootstrapAdmin(t, admin)

	status, env := admin.do(http.MethodPost, "/introductions/"+adminID, map[string]any{
		"name": "Admin", "headline": "Gopher", "bio": "Builds things",
	}, nil)
	require.Equal(t, http.StatusCreated, status, env.Message)

	status, _ = admin.do(http.MethodPost, "/projects/"+adminID, map[string]any{
		"title": "Folio", "slug": "folio", "description": "This API", "featured": true,
	}, nil)
	require.Equal(t, http.StatusCreated, status)

	status, _ = admin.do(http.MethodPost, "/projects/"+adminID, map[string]any{
		"title": "Scratch", "slug": "scratch", "description": "Not shown",
	}, nil)
	require.Equal(t, http.StatusCreated, status)

	status, env = admin.do(http.MethodPost, "/projects/"+adminID, map[string]any{
		"title": "Dup", "slug": "FOLIO", "description": "clash",
	}, nil)
	require.Equal(t, http.StatusConflict, status)
	require.False(t, env.Success)

	status, env = admin.do(http.MethodPost, "/skills/"+adminID, map[string]any{"name": "Go"}, nil)
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "Missing required fields: category", env.Message)

	// A regular user may leave a testimonial but not edit the portfolio.
	visitor := newClient(t, baseURL)
	status, _ = visitor.do(http.MethodPost, "/users/register", map[string]string{
		"username": "visitor", "email": "visitor@example.com", "fullName": "Visitor", "password": "visitor-pass",
	}, nil)
	require.Equal(t, http.StatusCreated, status)
	status, _ = visitor.do(http.MethodPost, "/users/login", map[string]string{
		"email": "visitor@example.com", "password": "visitor-pass",
	}, nil)
	require.Equal(t, http.StatusOK, status)

	status, _ = visitor.do(http.MethodPost, "/testimonials/"+adminID, map[string]any{
		"name": "Visitor", "message": "Excellent", "rating": 5,
	}, nil)
	require.Equal(t, http.StatusCreated, status)

	status, _ = visitor.do(http.MethodPost, "/skills/"+adminID, map[string]any{"name": "Go", "category": "Lang"}, nil)
	require.Equal(t, http.StatusForbidden, status)

	// Public aggregate, no cookies.
	anon := newClient(t, baseURL)
	status, env = anon.do(http.MethodGet, "/portfolio/admin", nil, nil)
	require.Equal(t, http.StatusOK, status)

	var p struct {
		Introduction map[string]any   `json:"introduction"`
		Projects     []map[string]any `json:"projects"`
		Skills       []map[string]any `json:"skills"`
		Testimonials []map[string]any `json:"testimonials"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &p))
	require.Equal(t, "Gopher", p.Introduction["headline"])
	require.Len(t, p.Projects, 1)
	require.Equal(t, "folio", p.Projects[0]["slug"])
	require.NotNil(t, p.Skills)
	require.Empty(t, p.Skills)
	require.Len(t, p.Testimonials, 1)

	status, _ = anon.do(http.MethodGet, "/portfolio/nobody", nil, nil)
	require.Equal(t, http.StatusNotFound, status)

	status, _ = anon.do(http.MethodGet, "/skills/byuserid/"+adminID, nil, nil)
	require.Equal(t, http.StatusNotFound, status)
}

// TestSessionFlow covers refresh rotation and logout through cookies.
func TestSessionFlow(t *testing.T) {
	baseURL, cleanup := setupContainer(t)
	defer cleanup()

	c := newClient(t, baseURL)
	bootstrapAdmin(t, c)

	status, env := c.do(http.MethodGet, "/users/current-user", nil, nil)
	require.Equal(t, http.StatusOK, status)
	require.Contains(t, string(env.Data), adminUsername)

	status, env = c.do(http.MethodPost, "/users/refresh-token", nil, nil)
	require.Equal(t, http.StatusOK, status, env.Message)

	var pair struct {
		RefreshToken string `json:"refreshToken"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &pair))
	require.NotEmpty(t, pair.RefreshToken)

	status, _ = c.do(http.MethodPost, "/users/logout", nil, nil)
	require.Equal(t, http.StatusOK, status)

	status, _ = c.do(http.MethodGet, "/users/current-user", nil, nil)
	require.Equal(t, http.StatusUnauthorized, status)

	// The body fallback still finds the token, but logout revoked it.
	fresh := newClient(t, baseURL)
	status, _ = fresh.do(http.MethodPost, "/users/refresh-token", map[string]string{"refreshToken": pair.RefreshToken}, nil)
	require.Equal(t, http.StatusUnauthorized, status)

	status, _ = fresh.do(http.MethodPost, "/users/refresh-token", nil, nil)
	require.Equal(t, http.StatusBadRequest, status)
}
