package jwtx_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/intakeworks/authrelay/pkg/jwtx"
)

func TestStateCodecRoundTrip(t *testing.T) {
	t.Parallel()

	codec := jwtx.NewStateCodec([]byte("state-secret"), "intake-client")

	state, nonce, err := codec.Issue()
	require.NoError(t, err)
	require.Len(t, nonce, 32) // 16 random bytes, hex encoded
	require.NotEmpty(t, state)

	got, err := codec.Verify(state)
	require.NoError(t, err)
	require.Equal(t, nonce, got)
}

func TestStateCodecIssuesUniqueNonces(t *testing.T) {
	t.Parallel()

	codec := jwtx.NewStateCodec([]byte("state-secret"), "intake-client")

	_, first, err := codec.Issue()
	require.NoError(t, err)
	_, second, err := codec.Issue()
	require.NoError(t, err)
	require.NotEqual(t, first, second)
}

func TestStateCodecVerifyRejections(t *testing.T) {
	t.Parallel()

	secret := []byte("state-secret")
	codec := jwtx.NewStateCodec(secret, "intake-client")

	t.Run("rejects tampered token", func(t *testing.T) {
		state, _, err := codec.Issue()
		require.NoError(t, err)

		_, err = codec.Verify(state + "x")
		require.ErrorIs(t, err, jwtx.ErrInvalidState)
	})

	t.Run("rejects token for another audience", func(t *testing.T) {
		other := jwtx.NewStateCodec(secret, "someone-else")
		state, _, err := other.Issue()
		require.NoError(t, err)

		_, err = codec.Verify(state)
		require.ErrorIs(t, err, jwtx.ErrInvalidState)
	})

	t.Run("rejects token signed with another secret", func(t *testing.T) {
		other := jwtx.NewStateCodec([]byte("not-the-secret"), "intake-client")
		state, _, err := other.Issue()
		require.NoError(t, err)

		_, err = codec.Verify(state)
		require.ErrorIs(t, err, jwtx.ErrInvalidState)
	})

	t.Run("rejects expired token", func(t *testing.T) {
		// Hand-craft a state with the right secret and claims but an
		// expiry in the past.
		now := time.Now().Add(-10 * time.Minute)
		claims := jwt.MapClaims{
			"iss":   jwtx.StateIssuer,
			"aud":   "intake-client",
			"iat":   jwt.NewNumericDate(now),
			"exp":   jwt.NewNumericDate(now.Add(5 * time.Minute)),
			"nonce": "deadbeef",
		}
		state, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
		require.NoError(t, err)

		_, err = codec.Verify(state)
		require.ErrorIs(t, err, jwtx.ErrInvalidState)
	})

	t.Run("rejects token without nonce", func(t *testing.T) {
		now := time.Now()
		claims := jwt.MapClaims{
			"iss": jwtx.StateIssuer,
			"aud": "intake-client",
			"iat": jwt.NewNumericDate(now),
			"exp": jwt.NewNumericDate(now.Add(5 * time.Minute)),
		}
		state, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
		require.NoError(t, err)

		_, err = codec.Verify(state)
		require.ErrorIs(t, err, jwtx.ErrInvalidState)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := codec.Verify("not-a-jwt")
		require.ErrorIs(t, err, jwtx.ErrInvalidState)
	})
}
