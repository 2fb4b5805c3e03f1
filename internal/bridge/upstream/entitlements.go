package upstream

import (
	"context"
)

// EntitlementsClient talks to the plans/entitlements API.
type EntitlementsClient struct {
	client
	siteID string
}

// NewEntitlementsClient creates a client for the entitlements API at host,
// scoped to one site.
func NewEntitlementsClient(host, siteID string) *EntitlementsClient {
	return &EntitlementsClient{client: newClient(host), siteID: siteID}
}

// PlanEntry is a raw upstream plan record. ID and Exp are pointers so the
// caller can distinguish absent fields from zero values; entries missing
// either never make it into a passport.
type PlanEntry struct {
	ID  *string `json:"id"`
	Exp *int64  `json:"exp"`
}

type plansResponse struct {
	Plans []PlanEntry `json:"plans"`
}

// GetEntitledPlans fetches the plans the viewer currently holds access to.
// With an empty authorization only free/anonymous-accessible plans come
// back; with a credential the upstream returns the viewer's full
// entitlement set or rejects the credential.
func (c *EntitlementsClient) GetEntitledPlans(ctx context.Context, authorization string) ([]PlanEntry, error) {
	var resp plansResponse
	if err := c.getJSON(ctx, "/v3/sites/"+c.siteID+"/entitlements", authorization, &resp); err != nil {
		return nil, err
	}
	return resp.Plans, nil
}

// GetAvailablePlans fetches the plans the site offers for purchase.
func (c *EntitlementsClient) GetAvailablePlans(ctx context.Context) ([]PlanEntry, error) {
	var resp plansResponse
	if err := c.getJSON(ctx, "/v3/sites/"+c.siteID+"/plans", "", &resp); err != nil {
		return nil, err
	}
	return resp.Plans, nil
}
