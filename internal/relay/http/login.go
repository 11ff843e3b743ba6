package http

import (
	"net/http"

	"github.com/intakeworks/authrelay/internal/relay/service"
	"github.com/intakeworks/authrelay/pkg/httpx"
	"github.com/intakeworks/authrelay/pkg/relaysdk"
	"github.com/intakeworks/authrelay/pkg/slogx"
)

type LoginHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP starts a login round-trip by redirecting the browser to the
// identity provider.
//
//	@Summary		Start login
//	@Description	Issues a signed state with an embedded nonce and redirects the browser
//	@Description	to the identity provider's authorization endpoint.
//	@Tags			Auth
//	@Success		302	"Redirect to the provider authorization endpoint"
//	@Failure		500	{object}	relaysdk.ErrorResponse	"Login URL could not be generated"
//	@Router			/auth/login [get].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	loginURL, err := h.AuthService.LoginURL(ctx)
	if err != nil {
		log.Error("failed to generate login URL", "error", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, relaysdk.ErrorResponse{
			Error: "Failed to generate login URL",
		})
		return
	}

	httpx.NoCache(w)
	http.Redirect(w, r, loginURL, http.StatusFound)
}
