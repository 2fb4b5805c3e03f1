package http

import (
	"net/http"
	"time"

	"github.com/nimbusott/access-bridge/pkg/bridgesdk"
	"github.com/nimbusott/access-bridge/pkg/httpx"
	"github.com/nimbusott/access-bridge/pkg/urlsign"
)

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe endpoint returning service health status and checks for critical dependencies
//	@Description	Includes uptime, version, and status of the request signer
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	bridgesdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	bridgesdk.HealthResponse	"status, uptime, version, checks - service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(startTime time.Time, version string, signer *urlsign.Signer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &bridgesdk.HealthChecks{
			Signer: "ok",
		}
		overallStatus := "ok"
		statusCode := http.StatusOK

		// The signer is constructed at startup from the API secret; a nil
		// signer means the service was wired without one.
		if signer == nil {
			checks.Signer = "error: no signing secret loaded"
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		response := bridgesdk.HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		}
		httpx.WriteJSON(w, statusCode, response)
	}
}
