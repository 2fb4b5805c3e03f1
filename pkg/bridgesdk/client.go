// Package bridgesdk is the client SDK for the access-bridge service. It
// covers the raw API calls, a Session that caches the passport across media
// requests, pluggable token storage, and a delivery-gateway media client.
package bridgesdk

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// SDKClient is a client for the access-bridge service. It performs the raw
// generate/refresh calls; most consumers want a Session on top of it.
type SDKClient struct {
	BaseURL    string
	SiteID     string
	HTTPClient *http.Client
}

// NewSDKClient creates a new access-bridge client for the given site.
func NewSDKClient(baseURL, siteID string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		SiteID:  siteID,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// GenerateAccessTokens requests a fresh passport + refresh token pair.
// authorization is the viewer's bearer credential, or empty for an anonymous
// viewer (free-plan entitlements only).
func (c *SDKClient) GenerateAccessTokens(ctx context.Context, authorization string) (*PassportResponse, error) {
	headers := map[string]string{}
	if authorization != "" {
		headers["Authorization"] = authorization
	}

	resp, err := c.doRequest(ctx, http.MethodPut, "/v2/sites/"+c.SiteID+"/access/generate", nil, headers)
	if err != nil {
		return nil, err
	}

	var tokens PassportResponse
	if err := decodeJSON(resp, &tokens, http.StatusOK); err != nil {
		return nil, err
	}
	return &tokens, nil
}

// RefreshAccessTokens redeems a refresh token for a new passport pair. The
// old pair is invalidated upstream on success.
func (c *SDKClient) RefreshAccessTokens(ctx context.Context, refreshToken string) (*PassportResponse, error) {
	body := map[string]string{"refresh_token": refreshToken}

	resp, err := c.doJSONRequest(ctx, http.MethodPut, "/v2/sites/"+c.SiteID+"/access/refresh", body, nil)
	if err != nil {
		return nil, err
	}

	var tokens PassportResponse
	if err := decodeJSON(resp, &tokens, http.StatusOK); err != nil {
		return nil, err
	}
	return &tokens, nil
}

// GetSitePlans lists the plans available for purchase on the site.
func (c *SDKClient) GetSitePlans(ctx context.Context) (*PlansResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/v2/sites/"+c.SiteID+"/plans", nil, nil)
	if err != nil {
		return nil, err
	}

	var plans PlansResponse
	if err := decodeJSON(resp, &plans, http.StatusOK); err != nil {
		return nil, err
	}
	return &plans, nil
}
