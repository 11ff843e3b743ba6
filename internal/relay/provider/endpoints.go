package provider

import (
	"fmt"
	"strings"
)

// Endpoints holds the resolved OIDC endpoints for a Keycloak-style realm.
type Endpoints struct {
	Issuer        string
	Authorization string
	Token         string
	Logout        string
	JWKS          string
}

// ResolveEndpoints derives the realm endpoints from the configured
// authority URL. Deployments hand us either the base server URL (realm is
// appended) or the full OIDC endpoint path (realm base is extracted), so
// both shapes are accepted.
func ResolveEndpoints(authServerURL, realm string) (Endpoints, error) {
	if authServerURL == "" {
		return Endpoints{}, fmt.Errorf("provider: auth server URL is required")
	}

	var base string
	if strings.Contains(authServerURL, "/protocol/openid-connect") {
		base = strings.Replace(authServerURL, "/protocol/openid-connect", "", 1)
	} else {
		if realm == "" {
			return Endpoints{}, fmt.Errorf("provider: realm is required")
		}
		base = strings.TrimSuffix(authServerURL, "/") + "/realms/" + realm
	}

	return Endpoints{
		Issuer:        base,
		Authorization: base + "/protocol/openid-connect/auth",
		Token:         base + "/protocol/openid-connect/token",
		Logout:        base + "/protocol/openid-connect/logout",
		JWKS:          base + "/protocol/openid-connect/certs",
	}, nil
}
