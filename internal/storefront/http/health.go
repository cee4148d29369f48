package http

import (
	"net/http"
	"time"

	"github.com/Kareem09qyu/Okta/internal/storefront/store"
	"github.com/Kareem09qyu/Okta/pkg/httpx"
	"github.com/Kareem09qyu/Okta/pkg/slogx"
	"github.com/Kareem09qyu/Okta/pkg/storefrontsdk"
)

func health(startTime time.Time, version, status string, checks map[string]string) storefrontsdk.HealthResponse {
	return storefrontsdk.HealthResponse{
		Status:  status,
		Uptime:  time.Since(startTime).Round(time.Second).String(),
		Version: version,
		Checks:  checks,
	}
}

// LivezHandler godoc
//
//	@Summary		Health Check Endpoint
//	@Description	Liveness probe returning status, uptime and version. Always 200 while the process runs.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	storefrontsdk.HealthResponse	"status, uptime, version"
//	@Router			/livez [get].
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, health(startTime, version, "ok", nil))
	}
}

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe that also checks the database connection.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	storefrontsdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	storefrontsdk.HealthResponse	"database unreachable"
//	@Router			/readyz [get].
func ReadyzHandler(startTime time.Time, version string, st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := st.Ping(r.Context()); err != nil {
			slogx.FromContext(r.Context()).Warn("readiness check failed", "err", err)
			httpx.WriteJSON(w, http.StatusServiceUnavailable,
				health(startTime, version, "degraded", map[string]string{"database": "unreachable"}))
			return
		}
		httpx.WriteJSON(w, http.StatusOK,
			health(startTime, version, "ok", map[string]string{"database": "ok"}))
	}
}
