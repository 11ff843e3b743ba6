package jwtx

import (
	"context"
	"errors"
)

// Verifier validates a JWT and gives you back the claims if it's legit.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Claims, error)
}

var (
	// ErrKeyResolution covers both "provider unreachable" and "kid not in
	// the set". Collapsing them is deliberate defense-in-depth; the
	// distinction lives in the server logs only.
	ErrKeyResolution = errors.New("jwtx: key resolution failed")

	// ErrInvalidState reports a state parameter that failed signature,
	// audience, issuer, or expiry checks.
	ErrInvalidState = errors.New("jwtx: invalid state token")

	// ErrInvalidIDToken reports an ID token with a bad signature or a
	// nonce that doesn't match the originating login attempt.
	ErrInvalidIDToken = errors.New("jwtx: invalid id token")

	// ErrInvalidToken reports a bearer token that failed verification.
	ErrInvalidToken = errors.New("jwtx: invalid token")
)
