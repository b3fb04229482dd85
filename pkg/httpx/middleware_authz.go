package httpx

import (
	"net/http"
	"slices"
)

// RequireRole lets the request through only when the identity attached by
// AuthnMiddleware holds one of roles.
func RequireRole(roles ...string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := IdentityFromContext(r.Context())
			if !ok {
				writeUnauthorized(w)
				return
			}

			if !slices.Contains(roles, id.Role) {
				WriteError(w, http.StatusForbidden, "Access denied: insufficient role")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
