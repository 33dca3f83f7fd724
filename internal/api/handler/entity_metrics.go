package handler

import (
	"net/http"
	"strconv"

	"github.com/Sai2035/Social-Media-Analytics/internal/usecases/insighting"
	"github.com/Sai2035/Social-Media-Analytics/pkg/apiErrors"
	"github.com/Sai2035/Social-Media-Analytics/pkg/log"
	"github.com/julienschmidt/httprouter"
)

// GetEntityMetrics devolve as métricas derivadas de uma conta. Com force_refresh=true
// o cache é ignorado e o upstream é consultado.
func GetEntityMetrics(service insighting.MetricsProvider) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		handle := httprouter.ParamsFromContext(r.Context()).ByName("handle")

		forceRefresh := false
		if raw := r.URL.Query().Get("force_refresh"); raw != "" {
			parsed, err := strconv.ParseBool(raw)
			if err != nil {
				logger.WithFields(log.Fields{
					"entity_id":     handle,
					"force_refresh": raw,
				}).Warn("metrics: invalid force_refresh parameter")

				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "force_refresh deve ser true ou false", nil)
				return
			}
			forceRefresh = parsed
		}

		logger.WithFields(log.Fields{
			"entity_id":     handle,
			"force_refresh": forceRefresh,
		}).Info("metrics: fetching entity metrics")

		derived, err := service.GetMetrics(r.Context(), handle, forceRefresh)
		if err != nil {
			logger.WithField("entity_id", handle).WithError(err).Error("metrics: failed to get entity metrics")
			writeInsightError(w, err)
			return
		}

		if err := writeJSON(w, http.StatusOK, derived); err != nil {
			logger.WithError(err).Error("metrics: failed to encode response")
		}
	})
}
