package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/folio/pkg/jwtx"
	"github.com/aussiebroadwan/folio/pkg/slogx"
)

// AccessTokenCookie carries the access token for browser clients.
const AccessTokenCookie = "accessToken"

// IdentityLoader resolves the subject of a verified token into the current
// user record. It must fail when the user no longer exists.
type IdentityLoader interface {
	LoadIdentity(ctx context.Context, userID string) (Identity, error)
}

// AuthnMiddleware accepts an access token from the accessToken cookie or an
// Authorization bearer header, verifies it, reloads the user and attaches
// the identity to the request context. Every failure gets the same 401 so
// callers can't tell which stage rejected them.
func AuthnMiddleware(v jwtx.Verifier, users IdentityLoader) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			raw := ExtractAccessToken(r)
			if raw == "" {
				writeUnauthorized(w)
				return
			}

			claims, err := v.Verify(raw)
			if err != nil {
				log.Debug("access token rejected", "err", err)
				writeUnauthorized(w)
				return
			}

			id, err := users.LoadIdentity(ctx, claims.Subject)
			if err != nil {
				log.Info("access token subject not loadable", "sub", claims.Subject, "err", err)
				writeUnauthorized(w)
				return
			}

			ctx = WithIdentity(ctx, id)
			ctx = slogx.With(ctx, "user_id", id.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ExtractAccessToken prefers the cookie and falls back to the bearer header.
func ExtractAccessToken(r *http.Request) string {
	if c, err := r.Cookie(AccessTokenCookie); err == nil && c.Value != "" {
		return c.Value
	}

	authz := r.Header.Get("Authorization")
	if len(authz) > 7 && strings.EqualFold(authz[:7], "Bearer ") {
		return strings.TrimSpace(authz[7:])
	}
	return ""
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
	WriteError(w, http.StatusUnauthorized, "Unauthorized request")
}
