package domain

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims é o conteúdo do token emitido pelo serviço de login.
// Este serviço apenas valida o token e usa o modo para liberar as rotas.
type Claims struct {
	UserID    int    `json:"user_id"`
	UserEmail string `json:"user_email"`
	UserMode  Mode   `json:"user_mode"`
	jwt.RegisteredClaims
}
