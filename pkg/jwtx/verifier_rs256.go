package jwtx

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// RS256Verifier validates RS256-signed JWTs against keys resolved from a
// provider JWKS endpoint.
type RS256Verifier struct {
	keys   *RemoteKeySet
	issuer string
	aud    []string
}

// NewVerifierRS256 creates a verifier backed by a RemoteKeySet. An empty
// audience list skips the audience check (Keycloak access tokens carry an
// "account" audience we don't control).
func NewVerifierRS256(keys *RemoteKeySet, issuer string, aud []string) *RS256Verifier {
	return &RS256Verifier{keys: keys, issuer: issuer, aud: aud}
}

// Verify validates the JWT string and returns its parsed Claims. Key
// resolution failures surface as ErrKeyResolution; everything else becomes
// ErrInvalidToken.
func (v *RS256Verifier) Verify(ctx context.Context, tokenStr string) (*Claims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}))

	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		// Need the kid to know which key to use
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, errors.New("jwtx: missing kid")
		}
		return v.keys.ResolveKey(ctx, kid)
	})
	if err != nil {
		if errors.Is(err, ErrKeyResolution) {
			return nil, err
		}
		return nil, fmt.Errorf("jwtx: parse or verify: %w", ErrInvalidToken)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("jwtx: invalid token claims: %w", ErrInvalidToken)
	}

	// Now check all the claim requirements
	if err := claims.ValidateIssuer(v.issuer); err != nil {
		return nil, err
	}
	if err := claims.ValidateAudience(v.aud); err != nil {
		return nil, err
	}
	if err := claims.ValidateExpiry(); err != nil {
		return nil, err
	}

	return claims, nil
}
