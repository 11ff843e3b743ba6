package http

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/intakeworks/authrelay/internal/relay/service"
	"github.com/intakeworks/authrelay/pkg/httpx"
	"github.com/intakeworks/authrelay/pkg/slogx"
)

type LogoutHandler struct {
	AuthService *service.AuthService
	Validate    *validator.Validate
}

type logoutQuery struct {
	IDTokenHint string `validate:"omitempty,jwt"`
}

// ServeHTTP redirects the browser to the provider's end-session endpoint.
//
//	@Summary		Logout
//	@Description	Redirects the browser to the provider's end-session endpoint. An optional
//	@Description	id_token_hint lets the provider end the session without prompting.
//	@Tags			Auth
//	@Param			id_token_hint	query	string	false	"ID token from the original login"
//	@Success		302	"Redirect to the provider end-session endpoint"
//	@Failure		400	{object}	relaysdk.MessageResponse	"Malformed id_token_hint"
//	@Router			/auth/logout [get].
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := slogx.FromContext(r.Context())

	q := logoutQuery{IDTokenHint: r.URL.Query().Get("id_token_hint")}
	if err := h.Validate.Struct(q); err != nil {
		log.Warn("logout rejected: malformed id_token_hint")
		httpx.WriteMessage(w, http.StatusBadRequest, "id_token_hint must be a JWT")
		return
	}

	httpx.NoCache(w)
	http.Redirect(w, r, h.AuthService.LogoutURL(q.IDTokenHint), http.StatusFound)
}
