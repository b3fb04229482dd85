package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/folio/internal/portfolio/cache"
	"github.com/aussiebroadwan/folio/internal/portfolio/store"
	"github.com/aussiebroadwan/folio/pkg/httpx"
)

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe endpoint returning service health status and checks for the database and cache
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	HealthResponse	"status, uptime, version, checks - service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(startTime time.Time, version string, st store.Store, c cache.Portfolio) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &HealthChecks{
			Database: "ok",
			Cache:    "ok",
		}
		overallStatus := "ok"
		statusCode := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		if _, noop := c.(cache.Noop); noop {
			checks.Cache = "disabled"
		} else if err := c.Ping(r.Context()); err != nil {
			// Fetch falls back to direct loads, so report it but stay ready.
			checks.Cache = "error: " + err.Error()
			overallStatus = "degraded"
		}

		httpx.WriteJSON(w, statusCode, HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
