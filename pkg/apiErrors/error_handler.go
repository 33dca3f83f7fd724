package apiErrors

import (
	"net/http"
	"strconv"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Códigos de erro da API
const (
	// Erros de autenticação (1000-1999)
	ErrInvalidToken          = "AUTH_001" // Token inválido
	ErrExpiredToken          = "AUTH_002" // Token expirado
	ErrInsufficientPrivilege = "AUTH_003" // Privilégios insuficientes

	// Erros de validação (2000-2999)
	ErrInvalidRequest      = "VAL_001" // Requisição inválida
	ErrMissingRequiredData = "VAL_002" // Dados obrigatórios ausentes
	ErrInvalidFormat       = "VAL_003" // Formato de dados inválido
	ErrInvalidHandle       = "VAL_004" // Handle do Instagram inválido
	ErrTooManyEntities     = "VAL_005" // Contas demais para comparar
	ErrUnknownNiche        = "VAL_006" // Nicho fora do catálogo

	// Erros do upstream (3000-3999)
	ErrRateLimited         = "UPS_001" // Upstream limitou as requisições
	ErrUpstreamUnavailable = "UPS_002" // Upstream indisponível ou timeout
	ErrMalformedPayload    = "UPS_003" // Resposta do upstream inválida
	ErrEntityNotFound      = "UPS_004" // Conta não encontrada no upstream

	// Erros do servidor (5000-5999)
	ErrInternalServer    = "SRV_001" // Erro interno do servidor
	ErrDatabaseOperation = "SRV_002" // Erro de operação de banco de dados
	ErrConflict          = "SRV_003" // Operação já em andamento
)

// Mapeamento de códigos de erro para status HTTP
var httpStatusMap = map[string]int{
	ErrInvalidToken:          http.StatusUnauthorized,
	ErrExpiredToken:          http.StatusUnauthorized,
	ErrInsufficientPrivilege: http.StatusForbidden,
	ErrInvalidRequest:        http.StatusBadRequest,
	ErrMissingRequiredData:   http.StatusBadRequest,
	ErrInvalidFormat:         http.StatusBadRequest,
	ErrInvalidHandle:         http.StatusBadRequest,
	ErrTooManyEntities:       http.StatusBadRequest,
	ErrUnknownNiche:          http.StatusNotFound,
	ErrRateLimited:           http.StatusTooManyRequests,
	ErrUpstreamUnavailable:   http.StatusServiceUnavailable,
	ErrMalformedPayload:      http.StatusBadGateway,
	ErrEntityNotFound:        http.StatusNotFound,
	ErrInternalServer:        http.StatusInternalServerError,
	ErrDatabaseOperation:     http.StatusInternalServerError,
	ErrConflict:              http.StatusConflict,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`              // Código de erro para o cliente
	Message string `json:"message,omitempty"` // Mensagem descritiva (opcional)
	Details any    `json:"details,omitempty"` // Detalhes adicionais (opcional)
}

// StatusFor retorna o status HTTP associado ao código
func StatusFor(code string) int {
	status, exists := httpStatusMap[code]
	if !exists {
		return http.StatusInternalServerError
	}
	return status
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusFor(code))
	json.NewEncoder(w).Encode(apiErr)
}

// WriteRateLimited escreve um 429 com o cabeçalho Retry-After quando conhecido
func WriteRateLimited(w http.ResponseWriter, message string, retryAfterSeconds int64) {
	if retryAfterSeconds > 0 {
		w.Header().Set("Retry-After", strconv.FormatInt(retryAfterSeconds, 10))
	}

	var details any
	if retryAfterSeconds > 0 {
		details = map[string]int64{"retry_after_seconds": retryAfterSeconds}
	}

	WriteError(w, ErrRateLimited, message, details)
}

// FromError cria um erro de API a partir de um erro Go
// Útil para quando você quer envolver um erro existente em um erro de API
func FromError(err error, code string) APIError {
	if err == nil {
		return APIError{
			Code:    ErrInternalServer,
			Message: "Erro desconhecido",
		}
	}

	return APIError{
		Code:    code,
		Message: err.Error(),
	}
}
