package handler

import (
	"context"
	"net/http"
	"time"

	"planforge/internal/httputil"
)

// HealthCheck reports liveness. ping, when set, checks the database.
func HealthCheck(ping func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ping != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := ping(ctx); err != nil {
				httputil.RespondError(w, http.StatusServiceUnavailable, "database unavailable")
				return
			}
		}

		httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"status": "ok",
			"time":   time.Now().UTC(),
		})
	}
}
