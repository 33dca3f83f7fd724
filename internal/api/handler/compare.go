package handler

import (
	"net/http"

	"github.com/Sai2035/Social-Media-Analytics/internal/domain"
	"github.com/Sai2035/Social-Media-Analytics/internal/usecases/insighting"
	"github.com/Sai2035/Social-Media-Analytics/internal/usecases/niching"
	"github.com/Sai2035/Social-Media-Analytics/internal/usecases/ranking"
	"github.com/Sai2035/Social-Media-Analytics/pkg/apiErrors"
	"github.com/Sai2035/Social-Media-Analytics/pkg/log"
	"github.com/Sai2035/Social-Media-Analytics/pkg/middleware"
)

// compareRequest aceita uma lista de handles ou um nicho do catálogo, nunca os dois
type compareRequest struct {
	Handles []string `json:"handles"`
	Niche   string   `json:"niche"`
}

// CompareEntities compara até 10 contas para uma marca. Falhas individuais aparecem
// no resultado da conta sem derrubar a requisição.
func CompareEntities(service insighting.MetricsProvider, rankingService ranking.RankingService, catalog niching.NicheCatalog) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		if claims, ok := middleware.ClaimsFromRequest(r); ok {
			logger = logger.WithField("user_id", claims.UserID)
		}

		var req compareRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.WithError(err).Warn("compare: invalid request body")
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido", nil)
			return
		}

		handles := req.Handles
		if req.Niche != "" {
			if len(req.Handles) > 0 {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Informe handles ou niche, não ambos", nil)
				return
			}

			nicheHandles, err := catalog.HandlesFor(req.Niche)
			if err != nil {
				logger.WithError(err).Warn("compare: unknown niche")
				writeInsightError(w, err)
				return
			}

			// Nicho sem contas cadastradas responde vazio
			if len(nicheHandles) == 0 {
				empty := domain.CompareResponse{
					Niche:   req.Niche,
					Results: map[string]domain.CompareEntry{},
					Ranking: []domain.RankingItem{},
				}
				if err := writeJSON(w, http.StatusOK, empty); err != nil {
					logger.WithError(err).Error("compare: failed to encode response")
				}
				return
			}

			handles = nicheHandles
		}

		logger.WithFields(log.Fields{
			"entity_count": len(handles),
			"niche":        req.Niche,
		}).Info("compare: comparing entities")

		results, err := service.Compare(r.Context(), handles)
		if err != nil {
			logger.WithError(err).Warn("compare: request rejected")
			writeInsightError(w, err)
			return
		}

		response := domain.CompareResponse{
			Niche:   req.Niche,
			Results: make(map[string]domain.CompareEntry, len(results)),
			Ranking: rankingService.RankByEngagement(results),
		}

		for entityID, result := range results {
			response.Results[entityID] = domain.CompareEntry{
				Metrics: result.Metrics,
				Error:   entryError(result.Err),
			}
		}

		if err := writeJSON(w, http.StatusOK, response); err != nil {
			logger.WithError(err).Error("compare: failed to encode response")
		}
	})
}
