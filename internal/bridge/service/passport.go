package service

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/nimbusott/access-bridge/internal/bridge/domain"
	"github.com/nimbusott/access-bridge/internal/bridge/upstream"
	"github.com/nimbusott/access-bridge/pkg/bridgesdk"
	"github.com/nimbusott/access-bridge/pkg/slogx"
)

// PassportService is the issuer core: it turns a viewer's identity and
// entitled plans into a signed passport pair, and redeems refresh tokens
// for new pairs. It keeps no token state of its own; the access-control
// upstream owns the token lifecycle.
type PassportService struct {
	Identity      *IdentityService
	Plans         *PlansService
	AccessControl *upstream.AccessControlClient
}

// Generate resolves the viewer (anonymous if no credential) and their
// entitled plans, then asks the access-control upstream to mint a passport
// for that entitlement set. The resulting pair is returned unchanged; any
// upstream rejection propagates, leaving the caller to decide what a
// missing passport means.
func (s *PassportService) Generate(ctx context.Context, authorization string) (*bridgesdk.PassportResponse, error) {
	log := slogx.FromContext(ctx)

	viewer, err := s.Identity.Resolve(ctx, authorization)
	if err != nil {
		return nil, err
	}

	plans, err := s.Plans.GetEntitledPlans(ctx, authorization)
	if err != nil {
		return nil, err
	}

	// The subscriber email field carries the viewer ID. That is the
	// access-control protocol's contract, not a mix-up.
	subscriber := domain.SubscriberInfo{
		Email: viewer.ID,
		Plans: plans,
	}

	tokens, err := s.AccessControl.GeneratePassport(ctx, subscriber)
	if err != nil {
		return nil, err
	}

	log.Info("passport generated", "viewer_id", viewer.ID, "plan_count", len(plans))
	return tokens, nil
}

// Refresh redeems a refresh token for a new passport pair. An empty token
// fails immediately without touching the upstream; an upstream rejection of
// the token surfaces as forbidden.
func (s *PassportService) Refresh(ctx context.Context, refreshToken string) (*bridgesdk.PassportResponse, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return nil, bridgesdk.NewParameterMissing("refresh_token")
	}

	tokens, err := s.AccessControl.RefreshPassport(ctx, refreshToken)
	if err != nil {
		var bridgeErr *bridgesdk.BridgeError
		if errors.As(err, &bridgeErr) &&
			(bridgeErr.StatusCode == http.StatusUnauthorized || bridgeErr.StatusCode == http.StatusForbidden) {
			return nil, bridgesdk.ErrForbidden.WithDescription("Invalid or expired refresh token.")
		}
		return nil, err
	}

	return tokens, nil
}
