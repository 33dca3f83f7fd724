package handler

import (
	"net/http"

	"github.com/Sai2035/Social-Media-Analytics/internal/usecases/niching"
	"github.com/Sai2035/Social-Media-Analytics/pkg/log"
)

type nichesResponse struct {
	Niches []string `json:"niches"`
}

// ListNiches lista os nichos disponíveis para comparação
func ListNiches(catalog niching.NicheCatalog) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := writeJSON(w, http.StatusOK, nichesResponse{Niches: catalog.ListNiches()}); err != nil {
			log.ForContext(r.Context()).WithError(err).Error("niches: failed to encode response")
		}
	})
}
