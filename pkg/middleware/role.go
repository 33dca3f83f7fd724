package middleware

import (
	"net/http"

	"github.com/Sai2035/Social-Media-Analytics/internal/domain"
	"github.com/Sai2035/Social-Media-Analytics/pkg/apiErrors"
	"github.com/sirupsen/logrus"
)

// ModeMiddleware restringe o acesso com base no modo do usuário (marca ou criador)
func ModeMiddleware(allowedModes []domain.Mode) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userClaims, ok := r.Context().Value(ContextKeyUser).(*domain.Claims)
			if !ok {
				logrus.Warning("auth: access attempt without claims")
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
				return
			}

			for _, mode := range allowedModes {
				if userClaims.UserMode == mode {
					next.ServeHTTP(w, r)
					return
				}
			}

			logrus.Warningf("auth: access denied for user ID=%d, mode=%s", userClaims.UserID, userClaims.UserMode)
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Você não tem permissão para acessar este recurso", nil)
		})
	}
}

// BrandOnly libera a rota apenas para marcas, que comparam várias contas
func BrandOnly() func(http.Handler) http.Handler {
	return ModeMiddleware([]domain.Mode{domain.ModeBrand})
}

// AllModes libera a rota para marcas e criadores
func AllModes() func(http.Handler) http.Handler {
	return ModeMiddleware([]domain.Mode{domain.ModeBrand, domain.ModeCreator})
}

// ClaimsFromRequest retorna as claims injetadas pelo AuthMiddleware
func ClaimsFromRequest(r *http.Request) (*domain.Claims, bool) {
	claims, ok := r.Context().Value(ContextKeyUser).(*domain.Claims)
	return claims, ok
}
