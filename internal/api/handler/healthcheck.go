package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// Pinger é satisfeito pela conexão com o banco
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthcheckHandler(db Pinger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status := http.StatusOK
		body := map[string]any{
			"status":   "ok",
			"time":     time.Now().UTC(),
			"database": "memory",
		}

		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()

			body["database"] = "ok"
			if err := db.Ping(ctx); err != nil {
				logrus.WithError(err).Warn("healthcheck: database ping failed")
				status = http.StatusServiceUnavailable
				body["status"] = "degraded"
				body["database"] = "unreachable"
			}
		}

		if err := writeJSON(w, status, body); err != nil {
			logrus.WithError(err).Warn("healthcheck: error responding to healthcheck")
		}
	})
}
