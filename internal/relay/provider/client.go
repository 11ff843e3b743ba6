// Package provider is the outbound HTTP client for the identity provider.
// Everything here runs server-to-server with the confidential client
// secret; nothing in this package ever touches a browser-visible URL.
package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/intakeworks/authrelay/internal/relay/domain"
	"github.com/intakeworks/authrelay/pkg/slogx"
)

// Scope requested on every login. The provider decides what it actually
// grants; we just ask for the standard OIDC profile set.
const loginScope = "openid profile email"

var (
	// ErrTokenExchange reports a failed authorization-code exchange,
	// covering both transport errors and provider rejections.
	ErrTokenExchange = errors.New("provider: token exchange failed")

	// ErrRefresh reports a failed refresh grant. The caller must treat
	// this as "re-authenticate".
	ErrRefresh = errors.New("provider: token refresh failed")
)

// Client performs the confidential OAuth2 calls against the provider.
type Client struct {
	endpoints    Endpoints
	clientID     string
	clientSecret string
	redirectURI  string
	http         *http.Client
}

// NewClient builds a provider client. A zero timeout defaults to 10s so a
// wedged provider surfaces as a failed exchange instead of a hung request.
func NewClient(endpoints Endpoints, clientID, clientSecret, redirectURI string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		endpoints:    endpoints,
		clientID:     clientID,
		clientSecret: clientSecret,
		redirectURI:  redirectURI,
		http:         &http.Client{Timeout: timeout},
	}
}

// Endpoints returns the resolved realm endpoints.
func (c *Client) Endpoints() Endpoints { return c.endpoints }

// ClientID returns the configured OAuth client id.
func (c *Client) ClientID() string { return c.clientID }

// HTTPClient exposes the underlying client so the JWKS resolver shares the
// same timeout policy.
func (c *Client) HTTPClient() *http.Client { return c.http }

// AuthorizationURL builds the provider authorization URL for one login
// attempt. The state is our signed CSRF token; the nonce rides along so the
// provider echoes it inside the ID token.
func (c *Client) AuthorizationURL(state, nonce string) string {
	query := url.Values{}
	query.Set("client_id", c.clientID)
	query.Set("redirect_uri", c.redirectURI)
	query.Set("response_type", "code")
	query.Set("scope", loginScope)
	query.Set("state", state)
	query.Set("nonce", nonce)

	return c.endpoints.Authorization + "?" + query.Encode()
}

// LogoutURL builds the provider logout URL so the browser can end the realm
// session. The id_token_hint lets the provider skip its logout prompt.
func (c *Client) LogoutURL(postLogoutRedirectURI, idTokenHint string) string {
	query := url.Values{}
	query.Set("post_logout_redirect_uri", postLogoutRedirectURI)
	if idTokenHint != "" {
		query.Set("id_token_hint", idTokenHint)
	}

	return c.endpoints.Logout + "?" + query.Encode()
}

// Exchange trades an authorization code for provider tokens. The optional
// codeVerifier is forwarded when the login attempt used PKCE.
func (c *Client) Exchange(ctx context.Context, code, codeVerifier string) (*domain.TokenBundle, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)
	form.Set("code", code)
	form.Set("redirect_uri", c.redirectURI)
	if codeVerifier != "" {
		form.Set("code_verifier", codeVerifier)
	}

	bundle, err := c.postToken(ctx, form)
	if err != nil {
		slogx.FromContext(ctx).Error("token exchange failed", "err", err)
		return nil, fmt.Errorf("%w: %w", ErrTokenExchange, err)
	}
	return bundle, nil
}

// Refresh trades a refresh token for a fresh bundle.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*domain.TokenBundle, error) {
	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)
	form.Set("refresh_token", refreshToken)

	bundle, err := c.postToken(ctx, form)
	if err != nil {
		slogx.FromContext(ctx).Warn("token refresh failed", "err", err)
		return nil, fmt.Errorf("%w: %w", ErrRefresh, err)
	}
	return bundle, nil
}

// oauthError is the provider's RFC 6749 error body. Logged, never relayed.
type oauthError struct {
	Code        string `json:"error"`
	Description string `json:"error_description"`
}

func (e *oauthError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

func (c *Client) postToken(ctx context.Context, form url.Values) (*domain.TokenBundle, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoints.Token,
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post token endpoint: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		oerr := new(oauthError)
		if jsonErr := json.Unmarshal(body, oerr); jsonErr != nil || oerr.Code == "" {
			return nil, fmt.Errorf("token endpoint returned %d", resp.StatusCode)
		}
		return nil, oerr
	}

	bundle := new(domain.TokenBundle)
	if err := json.Unmarshal(body, bundle); err != nil {
		return nil, fmt.Errorf("decode token response: %w", err)
	}

	return bundle, nil
}
