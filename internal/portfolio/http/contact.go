package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/folio/internal/portfolio/domain"
	"github.com/aussiebroadwan/folio/internal/portfolio/service"
	"github.com/aussiebroadwan/folio/pkg/httpx"
)

type ContactHandler struct {
	ContactService *service.ContactService
}

// ServeHTTP relays a contact form message to the site owner.
//
//	@Summary	Send a contact message
//	@Tags		Contact
//	@Accept		json
//	@Produce	json
//	@Param		request	body		domain.ContactMessage	true	"Message"
//	@Success	200		{object}	httpx.Envelope			"Sent"
//	@Failure	400		{object}	httpx.ErrorEnvelope		"Missing fields"
//	@Failure	429		{object}	httpx.ErrorEnvelope		"Too many messages"
//	@Failure	500		{object}	httpx.ErrorEnvelope		"Relay failed"
//	@Router		/contact [post].
func (h *ContactHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var msg domain.ContactMessage
	if !decodeJSON(w, r, &msg) {
		return
	}

	err := h.ContactService.Send(r.Context(), msg)
	if errors.Is(err, service.ErrMailUnavailable) {
		httpx.WriteError(w, http.StatusInternalServerError, "Failed to send message")
		return
	}
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, struct{}{}, "Message sent successfully")
}
