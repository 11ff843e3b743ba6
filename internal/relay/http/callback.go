package http

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/intakeworks/authrelay/internal/relay/service"
	"github.com/intakeworks/authrelay/pkg/httpx"
	"github.com/intakeworks/authrelay/pkg/jwtx"
	"github.com/intakeworks/authrelay/pkg/slogx"
)

// errCodeCallbackFailed is the single error code surfaced to the frontend
// via the auth_error query parameter. Every failure collapses into it on
// purpose: the real cause goes to the log, not the browser.
const errCodeCallbackFailed = "callback_failed"

type CallbackHandler struct {
	AuthService *service.AuthService
	Validate    *validator.Validate
}

// callbackQuery captures the provider's redirect parameters. session_state
// and iss are sent by some providers; they are accepted and ignored.
type callbackQuery struct {
	Code         string `validate:"required"`
	State        string `validate:"required,jwt"`
	SessionState string `validate:"omitempty"`
	Iss          string `validate:"omitempty,url"`
}

// ServeHTTP completes the login round-trip. Whatever happens, the browser
// is redirected back to the frontend; success carries a one-time result id
// and failure carries only a terse error code.
//
//	@Summary		OAuth2 callback
//	@Description	Verifies the signed state, exchanges the authorization code for tokens,
//	@Description	validates the ID token nonce, and redirects the browser to the frontend
//	@Description	with a one-time result id (?auth_result=) or an error code (?auth_error=).
//	@Tags			Auth
//	@Param			code			query	string	true	"Authorization code from the provider"
//	@Param			state			query	string	true	"Signed state issued at login"
//	@Param			session_state	query	string	false	"Provider session identifier (ignored)"
//	@Param			iss				query	string	false	"Provider issuer identifier (ignored)"
//	@Success		302	"Redirect to the frontend"
//	@Router			/auth/callback [get].
func (h *CallbackHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	q := callbackQuery{
		Code:         r.URL.Query().Get("code"),
		State:        r.URL.Query().Get("state"),
		SessionState: r.URL.Query().Get("session_state"),
		Iss:          r.URL.Query().Get("iss"),
	}
	if err := h.Validate.Struct(q); err != nil {
		log.Warn("callback rejected: bad query parameters", "error", err)
		h.redirectError(w, r)
		return
	}

	id, err := h.AuthService.HandleCallback(ctx, q.Code, q.State)
	if err != nil {
		// The log keeps the distinction (state vs exchange vs id token);
		// the browser only ever learns that the callback failed.
		log.Error("callback failed", "error", err, "state_rejected", errors.Is(err, jwtx.ErrInvalidState))
		h.redirectError(w, r)
		return
	}

	httpx.NoCache(w)
	http.Redirect(w, r, h.AuthService.ResultRedirect(id), http.StatusFound)
}

func (h *CallbackHandler) redirectError(w http.ResponseWriter, r *http.Request) {
	httpx.NoCache(w)
	http.Redirect(w, r, h.AuthService.ErrorRedirect(errCodeCallbackFailed), http.StatusFound)
}
