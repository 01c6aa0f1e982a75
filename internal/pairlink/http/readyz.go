package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/pairlink/internal/pairlink/service"
	"github.com/aussiebroadwan/pairlink/internal/pairlink/store"
	"github.com/aussiebroadwan/pairlink/pkg/httpx"
	"github.com/aussiebroadwan/pairlink/pkg/pairsdk"
)

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe endpoint returning service health status and checks for critical dependencies
//	@Description	Reports the claim store and whether a token signing secret is configured
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	pairsdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	pairsdk.HealthResponse	"status, uptime, version, checks - service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(
	startTime time.Time,
	version string,
	st store.Store,
	tokens *service.TokenService,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &pairsdk.HealthChecks{
			Store:  "ok",
			Signer: "ok",
		}
		overallStatus := "ok"
		statusCode := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			checks.Store = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		if !tokens.Ready() {
			checks.Signer = "error: no signing secret configured"
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, statusCode, pairsdk.HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).Round(time.Second).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
