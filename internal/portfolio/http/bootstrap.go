package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/folio/internal/portfolio/service"
	"github.com/aussiebroadwan/folio/pkg/httpx"
	"github.com/aussiebroadwan/folio/pkg/slogx"
)

type BootstrapHandler struct {
	BootstrapService *service.BootstrapService
}

// ServeHTTP creates the first administrator.
//
//	@Summary		Bootstrap the first admin
//	@Description	Only available when BOOTSTRAP_TOKEN is configured and no users exist yet.
//	@Tags			Bootstrap
//	@Accept			json
//	@Produce		json
//	@Param			X-Bootstrap-Token	header		string									true	"Bootstrap token"
//	@Param			request				body		RegisterRequest							true	"Admin account"
//	@Success		201					{object}	httpx.Envelope{data=domain.PublicUser}	"Admin created"
//	@Failure		400					{object}	httpx.ErrorEnvelope						"Invalid fields"
//	@Failure		401					{object}	httpx.ErrorEnvelope						"Missing or invalid token"
//	@Failure		404					{object}	httpx.ErrorEnvelope						"Bootstrap not enabled"
//	@Failure		409					{object}	httpx.ErrorEnvelope						"Already bootstrapped"
//	@Router			/users/bootstrap [post].
func (h *BootstrapHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	l := slogx.FromContext(r.Context())
	l.Info("Starting to bootstrap")

	if h.BootstrapService.Token == "" {
		httpx.WriteError(w, http.StatusNotFound, "Bootstrap endpoint is not enabled")
		return
	}

	token := r.Header.Get("X-Bootstrap-Token")
	if token == "" {
		httpx.WriteError(w, http.StatusUnauthorized, "Bootstrap token is required in X-Bootstrap-Token header")
		return
	}

	var req RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	u, err := h.BootstrapService.Bootstrap(r.Context(), token, req.registration())
	if errors.Is(err, service.ErrBootstrapDisabled) {
		httpx.WriteError(w, http.StatusNotFound, "Bootstrap endpoint is not enabled")
		return
	}
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteData(w, http.StatusCreated, u, "System bootstrapped successfully")
}
