package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aussiebroadwan/folio/internal/portfolio/domain"
	"github.com/aussiebroadwan/folio/internal/portfolio/service"
	"github.com/aussiebroadwan/folio/pkg/httpx"
	"github.com/aussiebroadwan/folio/pkg/slogx"
)

const maxJSONBody = 1 << 20

var kindStatus = []struct {
	kind   error
	status int
}{
	{service.ErrBadRequest, http.StatusBadRequest},
	{service.ErrUnauthenticated, http.StatusUnauthorized},
	{service.ErrForbidden, http.StatusForbidden},
	{service.ErrNotFound, http.StatusNotFound},
	{service.ErrConflict, http.StatusConflict},
}

// writeServiceError maps service errors to the failure envelope. Anything
// unclassified is logged and reported as a generic 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var se *service.Error
	if errors.As(err, &se) {
		for _, ks := range kindStatus {
			if errors.Is(se.Kind, ks.kind) {
				httpx.WriteError(w, ks.status, se.Message, se.Details...)
				return
			}
		}
	}

	slogx.FromContext(r.Context()).Error("request failed", "error", err)
	httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
}

// decodeJSON reads a bounded JSON body into dst and writes a 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Request body must be valid JSON")
		return false
	}
	return true
}

// actor returns the authenticated caller. Routes using it sit behind the
// authn middleware.
func actor(r *http.Request) (service.Actor, httpx.Identity) {
	id, _ := httpx.IdentityFromContext(r.Context())
	return service.Actor{ID: id.UserID, Role: domain.Role(id.Role)}, id
}
