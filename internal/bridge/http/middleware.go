package http

import (
	"errors"
	"net/http"

	"github.com/nimbusott/access-bridge/pkg/bridgesdk"
	"github.com/nimbusott/access-bridge/pkg/httpx"
	"github.com/nimbusott/access-bridge/pkg/slogx"
)

// ValidateSiteID rejects requests whose site_id path segment does not match
// the configured site, before any handler logic runs.
func ValidateSiteID(siteID string) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.PathValue("site_id") != siteID {
				bridgesdk.NewParameterInvalid("site_id", "").WriteError(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// NotFoundHandler answers unmatched routes with the bridge 404 shape.
func NotFoundHandler(w http.ResponseWriter, _ *http.Request) {
	bridgesdk.ErrNotFound.WriteError(w)
}

// writeError translates an error from the service layer into an HTTP
// response. Typed bridge errors are written as-is; anything else is logged
// and masked as an internal error.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var bridgeErr *bridgesdk.BridgeError
	if errors.As(err, &bridgeErr) {
		bridgeErr.WriteError(w)
		return
	}

	slogx.FromContext(r.Context()).Error("unexpected error", "err", err)
	bridgesdk.ErrInternal.WriteError(w)
}
