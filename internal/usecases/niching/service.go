package niching

import (
	"sort"
	"strings"

	"github.com/Sai2035/Social-Media-Analytics/internal/domain"
)

//go:generate mockgen -source=service.go -destination=mocks/mock_niching.go -package=mocks

// NicheCatalog resolve os nichos configurados nas contas que a marca compara
type NicheCatalog interface {
	ListNiches() []string
	HandlesFor(niche string) ([]string, error)
}

type CatalogService struct {
	niches map[string][]string
}

// NewCatalogService normaliza os nomes dos nichos e os handles de cada um.
// Handles inválidos do catálogo são descartados.
func NewCatalogService(niches map[string][]string) *CatalogService {
	catalog := make(map[string][]string, len(niches))

	for name, handles := range niches {
		key := normalizeNiche(name)
		if key == "" {
			continue
		}

		normalized := make([]string, 0, len(handles))
		for _, h := range handles {
			if handle, err := domain.NormalizeHandle(h); err == nil {
				normalized = append(normalized, handle)
			}
		}
		catalog[key] = append(catalog[key], normalized...)
	}

	return &CatalogService{niches: catalog}
}

// ListNiches devolve os nichos em ordem alfabética
func (s *CatalogService) ListNiches() []string {
	names := make([]string, 0, len(s.niches))
	for name := range s.niches {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HandlesFor devolve uma cópia dos handles do nicho. Nicho sem contas devolve lista vazia.
func (s *CatalogService) HandlesFor(niche string) ([]string, error) {
	handles, ok := s.niches[normalizeNiche(niche)]
	if !ok {
		return nil, domain.NewInsightError(domain.ErrUnknownNiche, "", niche)
	}

	result := make([]string, len(handles))
	copy(result, handles)
	return result, nil
}

func normalizeNiche(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

var _ NicheCatalog = (*CatalogService)(nil)
