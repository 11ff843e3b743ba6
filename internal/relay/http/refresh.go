package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/intakeworks/authrelay/internal/relay/service"
	"github.com/intakeworks/authrelay/pkg/httpx"
	"github.com/intakeworks/authrelay/pkg/relaysdk"
	"github.com/intakeworks/authrelay/pkg/slogx"
)

type RefreshHandler struct {
	AuthService *service.AuthService
	Validate    *validator.Validate
}

// ServeHTTP exchanges a refresh token for a fresh token bundle.
//
//	@Summary		Refresh tokens
//	@Description	Relays a refresh_token grant to the identity provider and returns the new
//	@Description	bundle. token_type is not echoed on this endpoint.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		relaysdk.RefreshRequest	true	"Refresh token"
//	@Success		200		{object}	relaysdk.TokenResponse	"New provider tokens"
//	@Failure		400		{object}	relaysdk.ErrorResponse	"Malformed body or provider rejected the refresh token"
//	@Router			/auth/refresh [post].
func (h *RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req relaysdk.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, relaysdk.ErrorResponse{
			Error: "request body must be JSON",
		})
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, relaysdk.ErrorResponse{
			Error: "refresh_token is required",
		})
		return
	}

	bundle, err := h.AuthService.Refresh(ctx, req.RefreshToken)
	if err != nil {
		// Rejected grant and provider outage look the same to the caller;
		// both mean "send the user through login again".
		log.Warn("token refresh failed", "error", err)
		httpx.WriteJSON(w, http.StatusBadRequest, relaysdk.ErrorResponse{
			Error: "Failed to refresh access token",
		})
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, relaysdk.TokenResponse{
		AccessToken:  bundle.AccessToken,
		RefreshToken: bundle.RefreshToken,
		IDToken:      bundle.IDToken,
		ExpiresIn:    bundle.ExpiresIn,
	})
}
