package http

import (
	"net/http"

	"github.com/aussiebroadwan/folio/internal/portfolio/service"
	"github.com/aussiebroadwan/folio/pkg/httpx"
)

type PortfolioHandler struct {
	PortfolioService *service.PortfolioService
}

// ServeHTTP returns the public portfolio of one user.
//
//	@Summary		Get a portfolio
//	@Description	Everything shown on a public portfolio page in one response. Only featured projects are included.
//	@Tags			Portfolio
//	@Produce		json
//	@Param			username	path		string									true	"Username"
//	@Success		200			{object}	httpx.Envelope{data=domain.Portfolio}	"Portfolio"
//	@Failure		404			{object}	httpx.ErrorEnvelope						"No such user"
//	@Router			/portfolio/{username} [get].
func (h *PortfolioHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	raw, err := h.PortfolioService.GetEncoded(r.Context(), r.PathValue("username"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, raw, "Portfolio fetched successfully")
}
