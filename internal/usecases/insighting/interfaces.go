package insighting

import (
	"context"

	"github.com/Sai2035/Social-Media-Analytics/internal/domain"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_insighter.go -package=mocks

// MetricsProvider entrega as métricas derivadas de uma conta ou de um grupo de contas
type MetricsProvider interface {
	// GetMetrics devolve as métricas da conta, buscando no upstream quando o cache expirou ou forceRefresh é verdadeiro
	GetMetrics(ctx context.Context, entityID string, forceRefresh bool) (*domain.DerivedMetrics, error)

	// Compare busca até 10 contas em paralelo; a falha de uma conta não interrompe as demais
	Compare(ctx context.Context, entityIDs []string) (map[string]domain.CompareResult, error)
}

// Refresher é usado pelo refresh agendado e não conta como acesso de usuário
type Refresher interface {
	Refresh(ctx context.Context, entityID string) (*domain.DerivedMetrics, error)
}
