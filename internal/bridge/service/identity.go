package service

import (
	"context"

	"github.com/nimbusott/access-bridge/internal/bridge/domain"
	"github.com/nimbusott/access-bridge/internal/bridge/upstream"
	"github.com/nimbusott/access-bridge/pkg/bridgesdk"
)

// IdentityService resolves a bearer credential into a viewer identity.
type IdentityService struct {
	Identity *upstream.IdentityClient
}

// Resolve returns the viewer behind the given credential. An empty
// credential resolves to the anonymous viewer without any upstream call; a
// credential the upstream cannot turn into a usable identity is rejected
// with unauthorized.
func (s *IdentityService) Resolve(ctx context.Context, authorization string) (domain.Viewer, error) {
	if authorization == "" {
		return domain.AnonymousViewer, nil
	}

	viewer, err := s.Identity.GetAccount(ctx, authorization)
	if err != nil {
		return domain.Viewer{}, err
	}

	if viewer == nil || !viewer.IsUsable() {
		return domain.Viewer{}, bridgesdk.ErrUnauthorized
	}

	return *viewer, nil
}
