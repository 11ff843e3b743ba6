package jwtx

import (
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the verified claims of a provider-issued token. Keycloak-style
// providers flatten user identity and roles directly into the access token,
// so this doubles as the request-scoped user for the guards.
type Claims struct {
	jwt.RegisteredClaims

	// Nonce echoes the value we embedded in the authorization request.
	// Only present on ID tokens.
	Nonce string `json:"nonce,omitempty"`

	// Roles carried by the token, consulted by the role guard.
	Roles []string `json:"roles,omitempty"`

	// Identity fields as Keycloak maps them.
	Username    string `json:"preferred_username,omitempty"`
	DisplayName string `json:"name,omitempty"`
	Email       string `json:"email,omitempty"`
}

// HasAnyRole reports whether the claims carry at least one of the wanted
// roles. An empty want list never matches.
func (c *Claims) HasAnyRole(want ...string) bool {
	for _, w := range want {
		if slices.Contains(c.Roles, w) {
			return true
		}
	}
	return false
}

// ValidateIssuer checks if the issuer matches expected value.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil // nothing to enforce
	}

	if c.Issuer != expected {
		return ErrInvalidToken
	}

	return nil
}

// ValidateAudience checks if at least one expected audience is present.
func (c *Claims) ValidateAudience(expected []string) error {
	if len(expected) == 0 {
		return nil // nothing to enforce
	}

	for _, want := range expected {
		if slices.Contains(c.Audience, want) {
			return nil
		}
	}

	return ErrInvalidToken
}

// ValidateExpiry ensures the token hasn't expired (exp) and isn't used
// before it is valid (nbf).
func (c *Claims) ValidateExpiry() error {
	now := time.Now().UTC()

	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Time) {
		return ErrInvalidToken
	}

	if c.NotBefore != nil && now.Before(c.NotBefore.Time) {
		return ErrInvalidToken
	}

	return nil
}
