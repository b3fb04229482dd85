package httpx_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/folio/pkg/httpx"
	"github.com/aussiebroadwan/folio/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const (
	testSecret = "0123456789abcdef0123456789abcdef"
	testIssuer = "folio-test"
)

type stubLoader map[string]httpx.Identity

func (s stubLoader) LoadIdentity(_ context.Context, userID string) (httpx.Identity, error) {
	id, ok := s[userID]
	if !ok {
		return httpx.Identity{}, errors.New("no such user")
	}
	return id, nil
}

func mintAccess(t *testing.T, secret, userID string, ttl time.Duration) string {
	t.Helper()
	signer, err := jwtx.NewSignerHS256(secret)
	require.NoError(t, err)

	claims := jwtx.NewAccessClaims(jwtx.Profile{UserID: userID, Role: "admin"}, testIssuer, ttl, time.Now())
	tok, err := signer.Sign(claims)
	require.NoError(t, err)
	return tok
}

func whoami() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, _ := httpx.IdentityFromContext(r.Context())
		_, _ = io.WriteString(w, id.UserID+"/"+id.Role)
	})
}

func TestChainOrder(t *testing.T) {
	var order []string
	mw := func(name string) httpx.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := httpx.Chain(okHandler(), mw("a"), mw("b"), mw("c"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, []string{"a", "b", "c"}, order)
}

func TestAuthnMiddleware(t *testing.T) {
	verifier := jwtx.NewVerifierHS256(testSecret, testIssuer)
	users := stubLoader{"u1": {UserID: "u1", Username: "dev1", Role: "admin"}}
	h := httpx.AuthnMiddleware(verifier, users)(whoami())

	t.Run("accepts cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: httpx.AccessTokenCookie, Value: mintAccess(t, testSecret, "u1", time.Minute)})
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "u1/admin", rec.Body.String())
	})

	t.Run("accepts bearer header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+mintAccess(t, testSecret, "u1", time.Minute))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
	})

	cases := map[string]func(*http.Request){
		"missing token": func(*http.Request) {},
		"garbage token": func(r *http.Request) { r.Header.Set("Authorization", "Bearer not-a-jwt") },
		"wrong secret": func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+mintAccess(t, strings.Repeat("x", 32), "u1", time.Minute))
		},
		"expired": func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+mintAccess(t, testSecret, "u1", -time.Minute))
		},
		"deleted user": func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+mintAccess(t, testSecret, "gone", time.Minute))
		},
	}

	for name, setup := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			setup(req)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			require.Equal(t, http.StatusUnauthorized, rec.Code)

			var body httpx.ErrorEnvelope
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			require.Equal(t, "Unauthorized request", body.Message)
			require.False(t, body.Success)
		})
	}
}

func TestRequireRole(t *testing.T) {
	h := httpx.RequireRole("admin")(whoami())

	serve := func(id *httpx.Identity) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if id != nil {
			req = req.WithContext(httpx.WithIdentity(req.Context(), *id))
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	require.Equal(t, http.StatusOK, serve(&httpx.Identity{UserID: "u1", Role: "admin"}))
	require.Equal(t, http.StatusForbidden, serve(&httpx.Identity{UserID: "u2", Role: "user"}))
	require.Equal(t, http.StatusUnauthorized, serve(nil))
}

func TestCORS(t *testing.T) {
	h := httpx.CORS("https://folio.example.com/")(okHandler())

	t.Run("allowed origin gets credentials", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://folio.example.com")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "https://folio.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
		require.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("preflight short-circuits", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/", nil)
		req.Header.Set("Origin", "https://folio.example.com")
		req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusNoContent, rec.Code)
		require.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPatch)
	})

	t.Run("foreign origin is ignored", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestMetricsMiddleware(t *testing.T) {
	m := httpx.NewMetrics("folio_test")

	mux := http.NewServeMux()
	mux.HandleFunc("GET /things/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	h := httpx.Chain(mux, m.Middleware())

	for _, id := range []string{"1", "2"} {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/things/"+id, nil))
	}
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	out := rec.Body.String()

	require.Contains(t, out, `folio_test_http_requests_total{method="GET",route="GET /things/{id}",status_code="418"} 2`)
	require.Contains(t, out, `route="unmatched",status_code="404"`)
}

func TestWriteEnvelopes(t *testing.T) {
	rec := httptest.NewRecorder()
	httpx.WriteData(rec, http.StatusCreated, map[string]string{"k": "v"}, "Created")

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	require.JSONEq(t, `{"statusCode":201,"data":{"k":"v"},"message":"Created","success":true}`, rec.Body.String())

	rec = httptest.NewRecorder()
	httpx.WriteError(rec, http.StatusBadRequest, "bad", "name is required")
	require.JSONEq(t, `{"statusCode":400,"message":"bad","success":false,"errors":["name is required"]}`, rec.Body.String())
}
