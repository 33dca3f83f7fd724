package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Sai2035/Social-Media-Analytics/internal/domain"
	"github.com/Sai2035/Social-Media-Analytics/internal/usecases/authenticating"
	"github.com/stretchr/testify/assert"
)

type fakeAuthenticator struct {
	claims *domain.Claims
	err    error
}

func (f fakeAuthenticator) ValidateToken(string) (*domain.Claims, error) {
	return f.claims, f.err
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestAuthMiddleware(t *testing.T) {
	creator := &domain.Claims{UserID: 1, UserMode: domain.ModeCreator}

	tests := []struct {
		name       string
		path       string
		header     string
		auth       fakeAuthenticator
		wantStatus int
	}{
		{name: "healthcheck é público", path: "/healthcheck", wantStatus: http.StatusNoContent},
		{name: "metrics é público", path: "/metrics", wantStatus: http.StatusNoContent},
		{name: "sem header", path: "/v1/compare", wantStatus: http.StatusUnauthorized},
		{name: "sem bearer", path: "/v1/compare", header: "Token abc", wantStatus: http.StatusUnauthorized},
		{
			name:       "token expirado",
			path:       "/v1/compare",
			header:     "Bearer abc",
			auth:       fakeAuthenticator{err: authenticating.NewAuthError(authenticating.ErrExpiredToken, "")},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "token válido",
			path:       "/v1/entities/nike/metrics",
			header:     "Bearer abc",
			auth:       fakeAuthenticator{claims: creator},
			wantStatus: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			AuthMiddleware(tt.auth)(okHandler()).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestBrandOnly(t *testing.T) {
	tests := []struct {
		name       string
		claims     *domain.Claims
		wantStatus int
	}{
		{name: "marca acessa", claims: &domain.Claims{UserMode: domain.ModeBrand}, wantStatus: http.StatusNoContent},
		{name: "criador é bloqueado", claims: &domain.Claims{UserMode: domain.ModeCreator}, wantStatus: http.StatusForbidden},
		{name: "sem claims", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := fakeAuthenticator{claims: tt.claims}
			if tt.claims == nil {
				auth.err = errors.New("invalid")
			}

			req := httptest.NewRequest(http.MethodPost, "/v1/compare", nil)
			rec := httptest.NewRecorder()

			handler := BrandOnly()(okHandler())
			if tt.claims != nil {
				handler = AuthMiddleware(auth)(handler)
				req.Header.Set("Authorization", "Bearer abc")
			}
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestLogPanicMiddleware(t *testing.T) {
	panicking := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	rec := httptest.NewRecorder()
	LogPanicMiddleware()(LoggingMiddleware()(panicking)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
