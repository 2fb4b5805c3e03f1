package upstream

import (
	"context"

	"github.com/nimbusott/access-bridge/internal/bridge/domain"
)

// IdentityClient talks to the account/identity API.
type IdentityClient struct {
	client
}

// NewIdentityClient creates a client for the identity API at host.
func NewIdentityClient(host string) *IdentityClient {
	return &IdentityClient{client: newClient(host)}
}

// GetAccount exchanges a bearer credential for the viewer's account record.
func (c *IdentityClient) GetAccount(ctx context.Context, authorization string) (*domain.Viewer, error) {
	var viewer domain.Viewer
	if err := c.getJSON(ctx, "/v3/accounts", authorization, &viewer); err != nil {
		return nil, err
	}
	return &viewer, nil
}
