package upstream

import (
	"context"
	"fmt"

	"github.com/nimbusott/access-bridge/internal/bridge/domain"
	"github.com/nimbusott/access-bridge/pkg/bridgesdk"
	"github.com/nimbusott/access-bridge/pkg/urlsign"
)

// AccessControlClient talks to the access-control API that mints and
// refreshes passports. Every call goes through a freshly signed URL; the
// gateway in front of the API verifies the signature before letting the
// request through.
type AccessControlClient struct {
	client
	signer *urlsign.Signer
	siteID string
}

// NewAccessControlClient creates a client for the access-control API at
// host, signing each request URL with signer.
func NewAccessControlClient(host, siteID string, signer *urlsign.Signer) *AccessControlClient {
	return &AccessControlClient{
		client: newClient(host),
		signer: signer,
		siteID: siteID,
	}
}

type generateRequest struct {
	SubscriberInfo domain.SubscriberInfo `json:"subscriber_info"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// GeneratePassport mints a passport + refresh token pair for the given
// subscriber payload.
func (c *AccessControlClient) GeneratePassport(ctx context.Context, subscriber domain.SubscriberInfo) (*bridgesdk.PassportResponse, error) {
	signedURL, err := c.signer.SignResource("/v2/sites/"+c.siteID+"/access/generate", c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("sign generate URL: %w", err)
	}

	var tokens bridgesdk.PassportResponse
	if err := c.putJSON(ctx, signedURL, generateRequest{SubscriberInfo: subscriber}, &tokens); err != nil {
		return nil, err
	}
	return &tokens, nil
}

// RefreshPassport redeems a refresh token for a new pair. The old pair is
// invalidated upstream on success.
func (c *AccessControlClient) RefreshPassport(ctx context.Context, refreshToken string) (*bridgesdk.PassportResponse, error) {
	signedURL, err := c.signer.SignResource("/v2/sites/"+c.siteID+"/access/refresh", c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("sign refresh URL: %w", err)
	}

	var tokens bridgesdk.PassportResponse
	if err := c.putJSON(ctx, signedURL, refreshRequest{RefreshToken: refreshToken}, &tokens); err != nil {
		return nil, err
	}
	return &tokens, nil
}
