package jwtx_test

import (
	"crypto/rsa"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/intakeworks/authrelay/pkg/cryptox"
	"github.com/intakeworks/authrelay/pkg/jwtx"
)

// fakeProvider stands in for the identity provider's JWKS endpoint. Tests
// sign tokens with its private key and point a RemoteKeySet at its URL.
type fakeProvider struct {
	key    *rsa.PrivateKey
	kid    string
	server *httptest.Server

	hits int
}

func newFakeProvider(t *testing.T, kid string) *fakeProvider {
	t.Helper()

	pemKey, err := cryptox.GenerateRSAKey(2048)
	require.NoError(t, err)
	key, err := cryptox.ParseRSAKey(pemKey)
	require.NoError(t, err)

	p := &fakeProvider{key: key, kid: kid}
	p.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p.hits++
		doc := jwtx.JWKS{Keys: []jwtx.JWK{
			jwtx.NewRSAJWK(p.kid, "sig", "RS256", &p.key.PublicKey),
		}}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(doc)
	}))
	t.Cleanup(p.server.Close)

	return p
}

func (p *fakeProvider) sign(t *testing.T, kid string, claims jwt.Claims) string {
	t.Helper()

	tok := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	tok.Header["kid"] = kid
	signed, err := tok.SignedString(p.key)
	require.NoError(t, err)
	return signed
}

func TestRemoteKeySetResolveKey(t *testing.T) {
	t.Parallel()

	p := newFakeProvider(t, "key-1")
	ctx := t.Context()

	t.Run("resolves a published kid", func(t *testing.T) {
		keys := jwtx.NewRemoteKeySet(p.server.URL, time.Hour, nil)

		pub, err := keys.ResolveKey(ctx, "key-1")
		require.NoError(t, err)
		require.Equal(t, p.key.PublicKey.N, pub.N)
		require.True(t, keys.IsReady())
	})

	t.Run("serves repeat lookups from cache", func(t *testing.T) {
		keys := jwtx.NewRemoteKeySet(p.server.URL, time.Hour, nil)

		before := p.hits
		_, err := keys.ResolveKey(ctx, "key-1")
		require.NoError(t, err)
		_, err = keys.ResolveKey(ctx, "key-1")
		require.NoError(t, err)
		require.Equal(t, before+1, p.hits)
	})

	t.Run("unknown kid fails with key resolution error", func(t *testing.T) {
		keys := jwtx.NewRemoteKeySet(p.server.URL, time.Hour, nil)

		_, err := keys.ResolveKey(ctx, "no-such-kid")
		require.ErrorIs(t, err, jwtx.ErrKeyResolution)
	})

	t.Run("unreachable endpoint fails with key resolution error", func(t *testing.T) {
		dead := httptest.NewServer(http.NotFoundHandler())
		dead.Close()
		keys := jwtx.NewRemoteKeySet(dead.URL, time.Hour, nil)

		_, err := keys.ResolveKey(ctx, "key-1")
		require.ErrorIs(t, err, jwtx.ErrKeyResolution)
		require.False(t, keys.IsReady())
	})

	t.Run("stale entries refetch after ttl", func(t *testing.T) {
		keys := jwtx.NewRemoteKeySet(p.server.URL, time.Nanosecond, nil)

		_, err := keys.ResolveKey(ctx, "key-1")
		require.NoError(t, err)
		before := p.hits

		time.Sleep(time.Millisecond)
		_, err = keys.ResolveKey(ctx, "key-1")
		require.NoError(t, err)
		require.Greater(t, p.hits, before)
	})
}

func TestRS256VerifierVerify(t *testing.T) {
	t.Parallel()

	const issuer = "https://sso.example.test/realms/intake"
	p := newFakeProvider(t, "key-1")
	ctx := t.Context()

	newClaims := func(mutate func(*jwtx.Claims)) *jwtx.Claims {
		now := time.Now()
		c := &jwtx.Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    issuer,
				Subject:   "user-123",
				IssuedAt:  jwt.NewNumericDate(now),
				ExpiresAt: jwt.NewNumericDate(now.Add(15 * time.Minute)),
			},
			Username: "jdoe",
			Roles:    []string{"user"},
		}
		if mutate != nil {
			mutate(c)
		}
		return c
	}

	t.Run("accepts a valid token and returns claims", func(t *testing.T) {
		keys := jwtx.NewRemoteKeySet(p.server.URL, time.Hour, nil)
		v := jwtx.NewVerifierRS256(keys, issuer, nil)

		token := p.sign(t, "key-1", newClaims(nil))
		claims, err := v.Verify(ctx, token)
		require.NoError(t, err)
		require.Equal(t, "user-123", claims.Subject)
		require.Equal(t, "jdoe", claims.Username)
		require.Equal(t, []string{"user"}, claims.Roles)
	})

	t.Run("rejects a token signed by an unpublished key", func(t *testing.T) {
		keys := jwtx.NewRemoteKeySet(p.server.URL, time.Hour, nil)
		v := jwtx.NewVerifierRS256(keys, issuer, nil)

		rogue := newFakeProvider(t, "rogue-key")
		token := rogue.sign(t, "rogue-key", newClaims(nil))

		_, err := v.Verify(ctx, token)
		require.ErrorIs(t, err, jwtx.ErrKeyResolution)
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		keys := jwtx.NewRemoteKeySet(p.server.URL, time.Hour, nil)
		v := jwtx.NewVerifierRS256(keys, issuer, nil)

		token := p.sign(t, "key-1", newClaims(func(c *jwtx.Claims) {
			c.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
		}))

		_, err := v.Verify(ctx, token)
		require.ErrorIs(t, err, jwtx.ErrInvalidToken)
	})

	t.Run("rejects a wrong issuer", func(t *testing.T) {
		keys := jwtx.NewRemoteKeySet(p.server.URL, time.Hour, nil)
		v := jwtx.NewVerifierRS256(keys, issuer, nil)

		token := p.sign(t, "key-1", newClaims(func(c *jwtx.Claims) {
			c.Issuer = "https://evil.example.test"
		}))

		_, err := v.Verify(ctx, token)
		require.ErrorIs(t, err, jwtx.ErrInvalidToken)
	})

	t.Run("rejects a wrong audience when one is required", func(t *testing.T) {
		keys := jwtx.NewRemoteKeySet(p.server.URL, time.Hour, nil)
		v := jwtx.NewVerifierRS256(keys, issuer, []string{"intake-client"})

		token := p.sign(t, "key-1", newClaims(func(c *jwtx.Claims) {
			c.Audience = jwt.ClaimStrings{"some-other-client"}
		}))

		_, err := v.Verify(ctx, token)
		require.ErrorIs(t, err, jwtx.ErrInvalidToken)
	})

	t.Run("rejects a token without kid header", func(t *testing.T) {
		keys := jwtx.NewRemoteKeySet(p.server.URL, time.Hour, nil)
		v := jwtx.NewVerifierRS256(keys, issuer, nil)

		tok := jwt.NewWithClaims(jwt.SigningMethodRS256, newClaims(nil))
		signed, err := tok.SignedString(p.key)
		require.NoError(t, err)

		_, err = v.Verify(ctx, signed)
		require.ErrorIs(t, err, jwtx.ErrInvalidToken)
	})
}
