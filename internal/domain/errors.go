package domain

import (
	"errors"
	"fmt"
	"time"
)

// Erros do núcleo de cache e cálculo de deltas
var (
	// Erros de validação
	ErrInvalidHandle   = errors.New("invalid instagram handle")
	ErrNoEntities      = errors.New("at least one handle is required")
	ErrTooManyEntities = fmt.Errorf("at most %d handles can be compared", MaxCompareEntities)
	ErrUnknownNiche    = errors.New("unknown niche")

	// Erros do upstream
	ErrMalformedPayload    = errors.New("malformed upstream payload")
	ErrRateLimited         = errors.New("upstream rate limited")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	ErrEntityNotFound      = errors.New("entity not found upstream")

	// Erros de persistência
	ErrStorage = errors.New("snapshot storage error")
)

// IsTransient indica falhas do upstream que permitem servir o cache expirado
func IsTransient(err error) bool {
	return errors.Is(err, ErrRateLimited) || errors.Is(err, ErrUpstreamUnavailable)
}

// InsightError é um erro com contexto adicional da conta envolvida
type InsightError struct {
	Err      error  // Erro base
	EntityID string // Conta envolvida (quando aplicável)
	Details  string // Detalhes adicionais
}

// Error implementa a interface error
func (e *InsightError) Error() string {
	msg := e.Err.Error()
	if e.EntityID != "" {
		msg = fmt.Sprintf("%s [%s]", msg, e.EntityID)
	}
	if e.Details != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Details)
	}
	return msg
}

// Unwrap retorna o erro subjacente
func (e *InsightError) Unwrap() error {
	return e.Err
}

// NewInsightError cria um novo InsightError
func NewInsightError(err error, entityID string, details string) *InsightError {
	return &InsightError{
		Err:      err,
		EntityID: entityID,
		Details:  details,
	}
}

// RateLimitError carrega a dica de retry-after devolvida pelo upstream
type RateLimitError struct {
	RetryAfter time.Duration
	Message    string
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("%s: retry after %s", ErrRateLimited.Error(), e.RetryAfter)
	}
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", ErrRateLimited.Error(), e.Message)
	}
	return ErrRateLimited.Error()
}

// Is faz errors.Is(err, ErrRateLimited) reconhecer o erro tipado
func (e *RateLimitError) Is(target error) bool {
	return target == ErrRateLimited
}

// StorageError envolve falhas do banco de dados na leitura ou gravação de snapshots
type StorageError struct {
	Op       string
	EntityID string
	Err      error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %s %s: %v", ErrStorage.Error(), e.Op, e.EntityID, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Is faz errors.Is(err, ErrStorage) reconhecer o erro tipado
func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}
