package http

import (
	"net/http"
	"time"

	"github.com/harbourfit/coachd/internal/coach/store"
	"github.com/harbourfit/coachd/pkg/coachsdk"
	"github.com/harbourfit/coachd/pkg/httpx"
	"github.com/harbourfit/coachd/pkg/slogx"
)

// ReadyzHandler is the readiness probe: 200 only when the database answers.
func ReadyzHandler(startTime time.Time, version string, st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := st.Ping(r.Context()); err != nil {
			log := slogx.FromContext(r.Context())
			log.Error("readiness check failed", "err", err)
			httpx.WriteError(w, http.StatusServiceUnavailable,
				"not_ready", "database unavailable")
			return
		}

		httpx.WriteJSON(w, http.StatusOK, coachsdk.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		})
	}
}
