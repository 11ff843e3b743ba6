package http

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/intakeworks/authrelay/internal/relay/service"
	"github.com/intakeworks/authrelay/pkg/httpx"
	"github.com/intakeworks/authrelay/pkg/relaysdk"
	"github.com/intakeworks/authrelay/pkg/slogx"
)

type ResultHandler struct {
	AuthService *service.AuthService
	Validate    *validator.Validate
}

type resultQuery struct {
	Result string `validate:"required,uuid4"`
}

// ServeHTTP redeems a one-time auth result id for its token bundle.
//
//	@Summary		Redeem auth result
//	@Description	Exchanges the one-time result id from the callback redirect for the token
//	@Description	bundle. Each id works exactly once; expired, consumed, and unknown ids all
//	@Description	fail the same way.
//	@Tags			Auth
//	@Produce		json
//	@Param			result	query		string	true	"One-time result id (UUID v4)"
//	@Success		200		{object}	relaysdk.TokenResponse		"Provider tokens"
//	@Failure		400		{object}	relaysdk.MessageResponse	"Missing or malformed result id"
//	@Failure		404		{object}	relaysdk.MessageResponse	"Auth result expired or invalid"
//	@Router			/auth/result [get].
func (h *ResultHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	q := resultQuery{Result: r.URL.Query().Get("result")}
	if err := h.Validate.Struct(q); err != nil {
		httpx.WriteMessage(w, http.StatusBadRequest, "result must be a UUID v4")
		return
	}

	bundle, err := h.AuthService.ConsumeResult(q.Result)
	if err != nil {
		// Absent, expired, and replayed ids are indistinguishable here.
		log.Warn("auth result redemption failed", "result_id", q.Result)
		httpx.WriteMessage(w, http.StatusNotFound, "Auth result expired or invalid")
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, relaysdk.TokenResponse{
		AccessToken:  bundle.AccessToken,
		RefreshToken: bundle.RefreshToken,
		IDToken:      bundle.IDToken,
		ExpiresIn:    bundle.ExpiresIn,
		TokenType:    bundle.TokenType,
	})
}
