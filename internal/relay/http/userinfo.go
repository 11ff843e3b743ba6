package http

import (
	"net/http"

	"github.com/intakeworks/authrelay/pkg/httpx"
	"github.com/intakeworks/authrelay/pkg/relaysdk"
)

type UserInfoHandler struct{}

// ServeHTTP returns the authenticated user's profile, read straight from
// the verified access token claims. No provider round-trip is needed.
//
//	@Summary		Get user information
//	@Description	Returns the identity and roles carried by the presented access token.
//	@Tags			API
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	relaysdk.UserInfoResponse	"User information"
//	@Failure		401	{object}	relaysdk.MessageResponse	"Missing bearer token"
//	@Failure		403	{object}	relaysdk.MessageResponse	"Invalid token"
//	@Router			/v1/userinfo [get].
func (h *UserInfoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	claims, ok := httpx.ClaimsFromContext(r.Context())
	if !ok {
		httpx.WriteMessage(w, http.StatusUnauthorized, "No bearer token provided")
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, relaysdk.UserInfoResponse{
		UserID:      claims.Subject,
		Username:    claims.Username,
		DisplayName: claims.DisplayName,
		Email:       claims.Email,
		Roles:       claims.Roles,
	})
}
