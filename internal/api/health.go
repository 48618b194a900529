package api

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// readinessPingTimeout bounds the database ping so a stuck pool cannot
// wedge the probe.
const readinessPingTimeout = 2 * time.Second

// health is a simple liveness endpoint for Docker/Kubernetes probes.
// Returns 200 OK with {"status":"ok"}.
func health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, nil)
}

// readiness returns a handler reporting whether the server can do real
// work. With a pool it pings the database and includes pool stats; a nil
// pool degrades to a plain liveness answer.
func readiness(pool *pgxpool.Pool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if pool == nil {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, nil)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), readinessPingTimeout)
		defer cancel()

		if err := pool.Ping(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status":   "unavailable",
				"database": "unreachable",
			}, nil)
			return
		}

		stat := pool.Stat()
		writeJSON(w, http.StatusOK, map[string]any{
			"status": "ok",
			"database": map[string]any{
				"totalConns":    stat.TotalConns(),
				"idleConns":     stat.IdleConns(),
				"acquiredConns": stat.AcquiredConns(),
			},
		}, nil)
	})
}
