package domain

import (
	"regexp"
	"strings"
)

// MaxCompareEntities limita quantas contas uma marca pode comparar por requisição
const MaxCompareEntities = 10

// Usernames do Instagram: letras, números, ponto e underscore, até 30 caracteres
var handlePattern = regexp.MustCompile(`^[a-z0-9._]{1,30}$`)

// Mode identifica o perfil de uso do painel
type Mode string

const (
	ModeBrand   Mode = "brand"
	ModeCreator Mode = "creator"
)

// NormalizeHandle converte o @ do Instagram na chave estável usada pelo cache
func NormalizeHandle(handle string) (string, error) {
	normalized := strings.TrimSpace(handle)
	normalized = strings.TrimPrefix(normalized, "@")
	normalized = strings.ToLower(strings.TrimSpace(normalized))

	if !handlePattern.MatchString(normalized) {
		return "", ErrInvalidHandle
	}

	return normalized, nil
}

// NormalizeHandles normaliza e remove duplicados mantendo a ordem de chegada
func NormalizeHandles(handles []string) ([]string, error) {
	seen := make(map[string]struct{}, len(handles))
	result := make([]string, 0, len(handles))

	for _, h := range handles {
		normalized, err := NormalizeHandle(h)
		if err != nil {
			return nil, NewInsightError(err, h, "")
		}

		if _, ok := seen[normalized]; ok {
			continue
		}
		seen[normalized] = struct{}{}
		result = append(result, normalized)
	}

	if len(result) == 0 {
		return nil, ErrNoEntities
	}

	if len(result) > MaxCompareEntities {
		return nil, ErrTooManyEntities
	}

	return result, nil
}
