package urlsign_test

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/nimbusott/access-bridge/pkg/urlsign"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("rejects empty secret", func(t *testing.T) {
		_, err := urlsign.New(nil)
		require.ErrorIs(t, err, urlsign.ErrNoSecret)

		_, err = urlsign.New([]byte{})
		require.ErrorIs(t, err, urlsign.ErrNoSecret)
	})

	t.Run("accepts non-empty secret", func(t *testing.T) {
		s, err := urlsign.New([]byte("shared-secret"))
		require.NoError(t, err)
		require.NotNil(t, s)
	})
}

func TestExpiryAt(t *testing.T) {
	t.Parallel()

	t.Run("always a bucket multiple", func(t *testing.T) {
		for _, offset := range []int64{0, 1, 137, 299, 300, 301, 4242} {
			now := time.Unix(1_700_000_000+offset, 0)
			exp := urlsign.ExpiryAt(now)
			require.Zero(t, exp%urlsign.ExpiryBucketSeconds,
				"exp %d for now %d is not bucket aligned", exp, now.Unix())
		}
	})

	t.Run("at least validity ahead of now", func(t *testing.T) {
		now := time.Unix(1_700_000_001, 0)
		exp := urlsign.ExpiryAt(now)
		require.GreaterOrEqual(t, exp, now.Unix()+urlsign.ValiditySeconds)
		require.Less(t, exp, now.Unix()+urlsign.ValiditySeconds+urlsign.ExpiryBucketSeconds)
	})

	t.Run("exact bucket boundary is not rounded up", func(t *testing.T) {
		// 1_700_000_100 + 3600 = 1_700_003_700, already a multiple of 300.
		now := time.Unix(1_700_000_100, 0)
		require.Equal(t, int64(1_700_003_700), urlsign.ExpiryAt(now))
	})
}

func TestSignResource(t *testing.T) {
	t.Parallel()

	secret := []byte("shared-secret")
	fixed := time.Unix(1_700_000_000, 0)
	clock := func() time.Time { return fixed }

	signer, err := urlsign.NewAt(secret, clock)
	require.NoError(t, err)

	t.Run("appends token to host and path", func(t *testing.T) {
		signed, err := signer.SignResource("/v2/sites/site1/access/generate", "https://ac.example.com")
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(signed, "https://ac.example.com/v2/sites/site1/access/generate?token="))
	})

	t.Run("token verifies and binds the resource path", func(t *testing.T) {
		signed, err := signer.SignResource("/v2/sites/site1/access/refresh", "https://ac.example.com")
		require.NoError(t, err)

		u, err := url.Parse(signed)
		require.NoError(t, err)
		raw := u.Query().Get("token")
		require.NotEmpty(t, raw)

		claims := jwt.MapClaims{}
		parsed, err := jwt.ParseWithClaims(raw, claims, func(tok *jwt.Token) (any, error) {
			require.Equal(t, jwt.SigningMethodHS256.Alg(), tok.Method.Alg())
			return secret, nil
		}, jwt.WithTimeFunc(clock))
		require.NoError(t, err)
		require.True(t, parsed.Valid)

		require.Equal(t, "/v2/sites/site1/access/refresh", claims["resource"])
		require.Equal(t, float64(urlsign.ExpiryAt(fixed)), claims["exp"])
		require.NotContains(t, claims, "iat")
	})

	t.Run("same bucket produces identical URLs", func(t *testing.T) {
		later := fixed.Add(90 * time.Second) // still within the same 300s bucket
		other, err := urlsign.NewAt(secret, func() time.Time { return later })
		require.NoError(t, err)

		a, err := signer.SignResource("/v2/sites/site1/access/generate", "https://ac.example.com")
		require.NoError(t, err)
		b, err := other.SignResource("/v2/sites/site1/access/generate", "https://ac.example.com")
		require.NoError(t, err)
		require.Equal(t, a, b)
	})

	t.Run("different paths produce different tokens", func(t *testing.T) {
		a, err := signer.SignResource("/v2/sites/site1/access/generate", "https://ac.example.com")
		require.NoError(t, err)
		b, err := signer.SignResource("/v2/sites/site1/access/refresh", "https://ac.example.com")
		require.NoError(t, err)

		ta := a[strings.Index(a, "?token=")+len("?token="):]
		tb := b[strings.Index(b, "?token=")+len("?token="):]
		require.NotEqual(t, ta, tb)
	})
}
