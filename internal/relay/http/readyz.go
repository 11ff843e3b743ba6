package http

import (
	"net/http"
	"time"

	"github.com/intakeworks/authrelay/pkg/httpx"
	"github.com/intakeworks/authrelay/pkg/jwtx"
	"github.com/intakeworks/authrelay/pkg/relaysdk"
)

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe endpoint checking that the provider's signing keys are
//	@Description	loaded. A relay that cannot resolve keys cannot complete callbacks.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	relaysdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	relaysdk.HealthResponse	"status, uptime, version, checks - service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(startTime time.Time, version string, keys *jwtx.RemoteKeySet) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &relaysdk.HealthChecks{
			ProviderKeys: "ok",
		}
		overallStatus := "ok"
		statusCode := http.StatusOK

		// Fetch the JWKS on demand so a probe can recover readiness after a
		// provider outage without waiting for a callback to force it.
		if !keys.IsReady() {
			if err := keys.Refresh(r.Context()); err != nil {
				checks.ProviderKeys = "error: " + err.Error()
				overallStatus = "degraded"
				statusCode = http.StatusServiceUnavailable
			}
		}

		response := relaysdk.HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		}
		httpx.WriteJSON(w, statusCode, response)
	}
}
