package http

import (
	"net/http"
	"time"

	"github.com/intakeworks/authrelay/internal/relay/store"
	"github.com/intakeworks/authrelay/pkg/httpx"
	"github.com/intakeworks/authrelay/pkg/relaysdk"
)

type StatsHandler struct {
	Results      *store.ResultStore
	StartTime    time.Time
	BuildVersion string
}

// ServeHTTP returns an operational snapshot for administrators.
//
//	@Summary		Service statistics
//	@Description	Returns pending result count, uptime, and version. Requires the admin role.
//	@Tags			API
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	relaysdk.StatsResponse		"Operational snapshot"
//	@Failure		401	{object}	relaysdk.MessageResponse	"Missing bearer token"
//	@Failure		403	{object}	relaysdk.MessageResponse	"Missing admin role"
//	@Router			/v1/admin/stats [get].
func (h *StatsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, relaysdk.StatsResponse{
		PendingResults: h.Results.Len(),
		Uptime:         time.Since(h.StartTime).String(),
		Version:        h.BuildVersion,
	})
}
