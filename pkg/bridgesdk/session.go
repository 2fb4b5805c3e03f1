package bridgesdk

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nimbusott/access-bridge/pkg/idx"
	"golang.org/x/sync/singleflight"
)

// PassportValidity is the assumed lifetime of an issued passport. The
// Session stamps each cached pair with issue time + this constant and
// refreshes once the stamp passes; the upstream token's real lifetime is
// not parsed out of the opaque passport, so a server-side change to the
// validity window would skew this bookkeeping.
const PassportValidity = time.Hour

// ErrNoPassport is returned when no passport is available and none can be
// obtained, including refresh failures. Callers must treat it as "no
// access"; the Session never falls back to a stale passport.
var ErrNoPassport = errors.New("bridgesdk: no passport available")

// CredentialFunc supplies the viewer's bearer credential at generate time.
// Returning an empty string means the viewer is anonymous and receives only
// free-plan entitlements.
type CredentialFunc func(ctx context.Context) (string, error)

// Session caches the passport pair for one viewer session and amortises
// issuance across media requests. It owns the cached record exclusively:
// all mutation happens inside GetOrRefresh, ForceRefresh and Invalidate,
// and concurrent callers collapse onto a single in-flight upstream call so
// two racing refreshes can never invalidate each other's tokens.
type Session struct {
	client     *SDKClient
	store      TokenStore
	credential CredentialFunc
	key        string
	now        func() time.Time

	group singleflight.Group
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithTokenStore replaces the default in-memory store.
func WithTokenStore(store TokenStore) SessionOption {
	return func(s *Session) { s.store = store }
}

// WithCredential sets the viewer credential callback consulted on generate.
func WithCredential(fn CredentialFunc) SessionOption {
	return func(s *Session) { s.credential = fn }
}

// WithStorageKey pins the storage key, so a persisted session can be picked
// up again after restart. Defaults to a fresh ULID per Session.
func WithStorageKey(key string) SessionOption {
	return func(s *Session) { s.key = key }
}

// WithClock injects a clock, for tests.
func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) { s.now = now }
}

// NewSession creates a passport cache over the given client.
func NewSession(client *SDKClient, opts ...SessionOption) *Session {
	s := &Session{
		client: client,
		store:  NewMemoryStore(),
		key:    "access_tokens:" + idx.New().String(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetOrRefresh returns a usable passport pair: the cached one if still
// within its validity window, a refreshed one if the window has lapsed, or
// a freshly generated one if nothing is cached. A refresh failure surfaces
// as an error; the stale pair is never returned.
func (s *Session) GetOrRefresh(ctx context.Context) (*AccessTokens, error) {
	v, err, _ := s.group.Do(s.key, func() (any, error) {
		return s.getOrRefresh(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*AccessTokens), nil
}

// ForceRefresh redeems the cached refresh token regardless of the local
// expiry stamp. The media gate uses it after a 403, where the local clock
// and the upstream's opinion of the passport disagree.
func (s *Session) ForceRefresh(ctx context.Context) (*AccessTokens, error) {
	v, err, _ := s.group.Do(s.key, func() (any, error) {
		existing, err := s.store.Get(ctx, s.key)
		if err != nil {
			return nil, fmt.Errorf("read token store: %w", err)
		}
		if existing == nil {
			// Nothing to refresh with; the session was never issued a pair.
			return nil, ErrNoPassport
		}
		return s.refresh(ctx, existing.RefreshToken)
	})
	if err != nil {
		return nil, err
	}
	return v.(*AccessTokens), nil
}

// Invalidate removes the cached pair, e.g. on logout. The next
// GetOrRefresh generates from scratch.
func (s *Session) Invalidate(ctx context.Context) error {
	s.group.Forget(s.key)
	return s.store.Remove(ctx, s.key)
}

func (s *Session) getOrRefresh(ctx context.Context) (*AccessTokens, error) {
	existing, err := s.store.Get(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("read token store: %w", err)
	}

	if existing == nil {
		return s.generate(ctx)
	}

	if s.now().UnixMilli() > existing.Expires {
		return s.refresh(ctx, existing.RefreshToken)
	}

	return existing, nil
}

func (s *Session) generate(ctx context.Context) (*AccessTokens, error) {
	var authorization string
	if s.credential != nil {
		var err error
		authorization, err = s.credential(ctx)
		if err != nil {
			return nil, fmt.Errorf("resolve viewer credential: %w", err)
		}
	}

	pair, err := s.client.GenerateAccessTokens(ctx, authorization)
	if err != nil {
		return nil, err
	}

	return s.cache(ctx, pair)
}

func (s *Session) refresh(ctx context.Context, refreshToken string) (*AccessTokens, error) {
	if refreshToken == "" {
		// A cached record with no refresh token cannot be refreshed;
		// fall back to generating a new pair.
		return s.generate(ctx)
	}

	pair, err := s.client.RefreshAccessTokens(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	return s.cache(ctx, pair)
}

// cache stamps the pair with the locally computed expiry and overwrites the
// stored record.
func (s *Session) cache(ctx context.Context, pair *PassportResponse) (*AccessTokens, error) {
	tokens := &AccessTokens{
		Passport:     pair.Passport,
		RefreshToken: pair.RefreshToken,
		Expires:      s.now().UnixMilli() + PassportValidity.Milliseconds(),
	}

	if err := s.store.Set(ctx, s.key, tokens); err != nil {
		return nil, fmt.Errorf("write token store: %w", err)
	}
	return tokens, nil
}
