package bridgesdk

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// MediaClient fetches protected media from the delivery gateway using the
// Session's passport.
type MediaClient struct {
	Session     *Session
	DeliveryURL string
	HTTPClient  *http.Client
}

// NewMediaClient creates a media gate over the given session.
func NewMediaClient(session *Session, deliveryURL string) *MediaClient {
	return &MediaClient{
		Session:     session,
		DeliveryURL: strings.TrimSuffix(deliveryURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// GetMediaByID fetches a protected media item. If the delivery gateway
// rejects the passport with a 403, the session is force-refreshed and the
// call retried exactly once; a second 403 propagates to the caller. The
// retry never loops, so the gateway is hit at most twice per call.
func (m *MediaClient) GetMediaByID(ctx context.Context, id string) (*Media, error) {
	tokens, err := m.Session.GetOrRefresh(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoPassport, err)
	}
	if tokens.Passport == "" {
		return nil, ErrNoPassport
	}

	media, err := m.fetch(ctx, id, tokens.Passport)
	if err == nil || !isForbidden(err) {
		return media, err
	}

	// The passport was rejected despite the local expiry bookkeeping saying
	// it should still be valid. Refresh once and retry once.
	tokens, err = m.Session.ForceRefresh(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: refresh after rejection: %w", ErrNoPassport, err)
	}

	return m.fetch(ctx, id, tokens.Passport)
}

func (m *MediaClient) fetch(ctx context.Context, id, passport string) (*Media, error) {
	endpoint := m.DeliveryURL + "/v2/media/" + url.PathEscape(id) + "?passport=" + url.QueryEscape(passport)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := m.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	var media Media
	if err := decodeJSON(resp, &media, http.StatusOK); err != nil {
		return nil, err
	}
	return &media, nil
}

// isForbidden reports whether err is a 403-class rejection of the passport.
func isForbidden(err error) bool {
	var bridgeErr *BridgeError
	return errors.As(err, &bridgeErr) && bridgeErr.StatusCode == http.StatusForbidden
}
