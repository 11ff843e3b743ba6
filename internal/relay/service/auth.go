// Package service orchestrates the backend-mediated login flow: it issues
// signed state for the provider redirect, validates what comes back on the
// callback, and parks the resulting tokens for one-time pickup.
package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/intakeworks/authrelay/internal/relay/domain"
	"github.com/intakeworks/authrelay/internal/relay/provider"
	"github.com/intakeworks/authrelay/internal/relay/store"
	"github.com/intakeworks/authrelay/pkg/jwtx"
	"github.com/intakeworks/authrelay/pkg/slogx"
)

// AuthService ties the provider client, the state codec, the ID token
// verifier, and the result store together into the authorization-code
// relay flow.
type AuthService struct {
	Provider *provider.Client
	States   *jwtx.StateCodec
	IDTokens jwtx.Verifier
	Results  *store.ResultStore

	// FrontendURL is where the browser lands after the callback, carrying
	// either an auth_result id or an auth_error code in the query string.
	FrontendURL string

	// PostLogoutRedirectURI is where the provider sends the browser after
	// ending the session. Falls back to FrontendURL when unset.
	PostLogoutRedirectURI string
}

// LoginURL issues a fresh signed state (with an embedded nonce) and builds
// the provider authorization URL for it. Each call produces a distinct
// state, so concurrent logins from the same browser never share one.
func (s *AuthService) LoginURL(ctx context.Context) (string, error) {
	state, nonce, err := s.States.Issue()
	if err != nil {
		return "", fmt.Errorf("issue state: %w", err)
	}

	return s.Provider.AuthorizationURL(state, nonce), nil
}

// LogoutURL builds the provider end-session URL. idTokenHint is optional;
// when present it is forwarded so the provider can skip its logout prompt.
func (s *AuthService) LogoutURL(idTokenHint string) string {
	target := s.PostLogoutRedirectURI
	if target == "" {
		target = s.FrontendURL
	}

	return s.Provider.LogoutURL(target, idTokenHint)
}

// HandleCallback completes the authorization-code flow: it verifies the
// signed state, exchanges the code at the provider, checks the ID token
// signature and nonce when one is returned, and stores the token bundle.
// The returned id is the opaque one-time handle the browser redeems via
// the result endpoint.
//
// Errors:
//   - jwtx.ErrInvalidState when the state is missing, tampered, or expired
//   - provider.ErrTokenExchange when the provider rejects the code
//   - jwtx.ErrKeyResolution when the signing key cannot be obtained
//   - jwtx.ErrInvalidIDToken when the ID token or its nonce fails to verify
func (s *AuthService) HandleCallback(ctx context.Context, code, state string) (string, error) {
	log := slogx.FromContext(ctx)

	nonce, err := s.States.Verify(state)
	if err != nil {
		log.Warn("callback rejected: state verification failed", "error", err)
		return "", err
	}

	bundle, err := s.Provider.Exchange(ctx, code, "")
	if err != nil {
		return "", err
	}

	if err := s.validateIDTokenNonce(ctx, bundle.IDToken, nonce); err != nil {
		return "", err
	}

	id := s.Results.Save(*bundle)
	log.Info("callback completed", "result_id", id)

	return id, nil
}

// validateIDTokenNonce verifies the ID token signature and claims, then
// checks that its nonce matches the one embedded in our state. Some grant
// configurations return no id_token at all; the nonce check only applies
// when one is present.
func (s *AuthService) validateIDTokenNonce(ctx context.Context, idToken, nonce string) error {
	if idToken == "" {
		return nil
	}

	claims, err := s.IDTokens.Verify(ctx, idToken)
	if err != nil {
		// Key resolution failures are an infrastructure problem, not a bad
		// token; keep the two distinguishable for the caller.
		if errors.Is(err, jwtx.ErrKeyResolution) {
			return err
		}
		return fmt.Errorf("%w: %w", jwtx.ErrInvalidIDToken, err)
	}

	if claims.Nonce == "" || claims.Nonce != nonce {
		return fmt.Errorf("%w: nonce mismatch", jwtx.ErrInvalidIDToken)
	}

	return nil
}

// Refresh exchanges a refresh token for a fresh bundle at the provider.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*domain.TokenBundle, error) {
	return s.Provider.Refresh(ctx, refreshToken)
}

// ConsumeResult redeems a one-time result id. A second redemption of the
// same id, or redemption after expiry, fails with store.ErrNotFound.
func (s *AuthService) ConsumeResult(id string) (domain.TokenBundle, error) {
	return s.Results.Consume(id)
}

// ResultRedirect builds the frontend URL carrying a successful result id.
func (s *AuthService) ResultRedirect(id string) string {
	return s.FrontendURL + "?auth_result=" + url.QueryEscape(id)
}

// ErrorRedirect builds the frontend URL carrying a terse error code. The
// code is a fixed label, never the underlying error text, so provider
// internals stay out of browser history.
func (s *AuthService) ErrorRedirect(code string) string {
	return s.FrontendURL + "?auth_error=" + url.QueryEscape(code)
}
