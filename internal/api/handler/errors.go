package handler

import (
	"context"
	"errors"
	"math"
	"net/http"

	"github.com/Sai2035/Social-Media-Analytics/internal/domain"
	"github.com/Sai2035/Social-Media-Analytics/pkg/apiErrors"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// errorCode traduz os erros do núcleo de insights para os códigos da API
func errorCode(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidHandle):
		return apiErrors.ErrInvalidHandle
	case errors.Is(err, domain.ErrNoEntities):
		return apiErrors.ErrMissingRequiredData
	case errors.Is(err, domain.ErrTooManyEntities):
		return apiErrors.ErrTooManyEntities
	case errors.Is(err, domain.ErrUnknownNiche):
		return apiErrors.ErrUnknownNiche
	case errors.Is(err, domain.ErrRateLimited):
		return apiErrors.ErrRateLimited
	case errors.Is(err, domain.ErrUpstreamUnavailable), errors.Is(err, context.DeadlineExceeded):
		return apiErrors.ErrUpstreamUnavailable
	case errors.Is(err, domain.ErrMalformedPayload):
		return apiErrors.ErrMalformedPayload
	case errors.Is(err, domain.ErrEntityNotFound):
		return apiErrors.ErrEntityNotFound
	case errors.Is(err, domain.ErrStorage):
		return apiErrors.ErrDatabaseOperation
	default:
		return apiErrors.ErrInternalServer
	}
}

// retryAfterSeconds arredonda para cima a dica do upstream; zero quando não houver
func retryAfterSeconds(err error) int64 {
	var rateLimitErr *domain.RateLimitError
	if !errors.As(err, &rateLimitErr) || rateLimitErr.RetryAfter <= 0 {
		return 0
	}
	return int64(math.Ceil(rateLimitErr.RetryAfter.Seconds()))
}

func writeInsightError(w http.ResponseWriter, err error) {
	code := errorCode(err)

	if code == apiErrors.ErrRateLimited {
		apiErrors.WriteRateLimited(w, err.Error(), retryAfterSeconds(err))
		return
	}

	// Erros internos não expõem detalhes do banco para o cliente
	message := err.Error()
	if apiErrors.StatusFor(code) >= http.StatusInternalServerError && code != apiErrors.ErrUpstreamUnavailable {
		message = "Erro interno ao processar a requisição"
	}

	apiErrors.WriteError(w, code, message, nil)
}

// entryError é a forma serializada da falha de uma conta dentro da comparação
func entryError(err error) *domain.EntryError {
	if err == nil {
		return nil
	}

	code := errorCode(err)
	message := err.Error()
	if code == apiErrors.ErrDatabaseOperation || code == apiErrors.ErrInternalServer {
		message = "Erro interno ao processar a conta"
	}

	return &domain.EntryError{
		Code:       code,
		Message:    message,
		RetryAfter: retryAfterSeconds(err),
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(body)
}
