// Package urlsign produces short-lived signed URLs for server-to-server
// calls to the access-control layer. Each URL carries an HS256 JWT whose
// payload names the resource path it was minted for, so a token can never
// be replayed against a different path.
package urlsign

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// ValiditySeconds is how far in the future signed-URL tokens expire.
	ValiditySeconds = 3600

	// ExpiryBucketSeconds is the rounding granularity for the exp claim.
	// Rounding exp up to a bucket boundary makes repeated signatures within
	// the same bucket byte-identical, so infrastructure caches of the signed
	// URL stay warm. It is not a wall-clock precision statement.
	ExpiryBucketSeconds = 300
)

// ErrNoSecret reports a missing signing secret. This is a configuration
// fault and is only surfaced at construction time.
var ErrNoSecret = errors.New("urlsign: signing secret is empty")

// resourceClaims is the signed-URL token payload: an expiry and the path
// the token is bound to. Deliberately no iat claim, matching what the
// access-control gateway verifies.
type resourceClaims struct {
	Resource string `json:"resource"`
	jwt.RegisteredClaims
}

// Signer mints signed URLs with a shared secret.
type Signer struct {
	secret []byte
	now    func() time.Time
}

// New returns a Signer for the given shared secret. An empty secret is
// rejected here so misconfiguration fails at startup rather than on the
// first signed request.
func New(secret []byte) (*Signer, error) {
	if len(secret) == 0 {
		return nil, ErrNoSecret
	}
	return &Signer{secret: secret, now: time.Now}, nil
}

// NewAt is like New but with an injected clock, for tests.
func NewAt(secret []byte, now func() time.Time) (*Signer, error) {
	s, err := New(secret)
	if err != nil {
		return nil, err
	}
	s.now = now
	return s, nil
}

// SignResource signs path and returns host+path with the token appended as
// a query parameter.
func (s *Signer) SignResource(path, host string) (string, error) {
	claims := resourceClaims{
		Resource: path,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Unix(ExpiryAt(s.now()), 0)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", err
	}

	return host + path + "?token=" + token, nil
}

// ExpiryAt returns the exp claim for a signature minted at now: validity
// seconds ahead, rounded up to the next bucket boundary. The result is
// always a multiple of ExpiryBucketSeconds.
func ExpiryAt(now time.Time) int64 {
	raw := now.Unix() + ValiditySeconds
	bucket := int64(ExpiryBucketSeconds)
	return (raw + bucket - 1) / bucket * bucket
}
