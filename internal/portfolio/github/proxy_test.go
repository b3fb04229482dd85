package github_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/aussiebroadwan/folio/internal/portfolio/github"
	"github.com/stretchr/testify/require"
)

func TestClientPassesThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer gh-token", r.Header.Get("Authorization"))
		switch r.URL.Path {
		case "/users/octocat":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"login":"octocat"}`))
		case "/users/octocat/repos":
			require.Equal(t, "pushed", r.URL.Query().Get("sort"))
			require.Equal(t, "2", r.URL.Query().Get("page"))
			require.Empty(t, r.URL.Query().Get("evil"))
			_, _ = w.Write([]byte(`[]`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := github.NewClient(srv.URL+"/", "gh-token", srv.Client())
	ctx := context.Background()

	resp, err := c.User(ctx, "octocat")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.JSONEq(t, `{"login":"octocat"}`, string(resp.Body))
	require.Equal(t, "application/json", resp.ContentType)

	resp, err = c.Repos(ctx, "octocat", url.Values{"page": {"2"}, "evil": {"1"}})
	require.NoError(t, err)
	require.Equal(t, `[]`, string(resp.Body))

	resp, err = c.User(ctx, "ghost")
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestClientRejectsBadUsernames(t *testing.T) {
	c := github.NewClient("http://127.0.0.1:1", "", nil)
	for _, name := range []string{"", "../admin", "a/b", "-leading"} {
		_, err := c.User(context.Background(), name)
		require.ErrorIs(t, err, github.ErrInvalidUsername, name)
	}
}
