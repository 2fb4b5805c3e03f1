package bridgesdk

import "encoding/json"

// PassportResponse is what the access/generate and access/refresh endpoints
// return: an opaque signed passport and the refresh token that redeems it.
type PassportResponse struct {
	Passport     string `json:"passport"`
	RefreshToken string `json:"refresh_token"`
}

// AccessTokens is the client-cached passport record. Expires is local
// bookkeeping stamped by the Session when the pair is cached; it is not a
// claim of the signed token itself and exists only to decide when to refresh
// proactively.
type AccessTokens struct {
	Passport     string `json:"passport"`
	RefreshToken string `json:"refresh_token"`
	Expires      int64  `json:"expires"` // epoch milliseconds
}

// Plan is an entitlement grant as exposed on the wire.
type Plan struct {
	ID  string `json:"id"`
	Exp int64  `json:"exp"` // unix seconds
}

// PlansResponse is the body of GET /v2/sites/{site_id}/plans.
type PlansResponse struct {
	Plans []Plan `json:"plans"`
}

// ErrorItem is a single error entry in the bridge error wire shape.
type ErrorItem struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// ErrorResponse is the bridge error wire shape, shared with the upstream
// access-control APIs.
type ErrorResponse struct {
	Errors []ErrorItem `json:"errors"`
}

// Media is a protected media resource fetched through the delivery gateway.
// The playlist is kept raw; its shape belongs to the delivery API.
type Media struct {
	Title    string          `json:"title"`
	Playlist json.RawMessage `json:"playlist,omitempty"`
}

// HealthResponse is returned by the livez and readyz endpoints.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports per-dependency readiness.
type HealthChecks struct {
	Signer string `json:"signer"`
}
