package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Sai2035/Social-Media-Analytics/internal/api/handler"
	"github.com/Sai2035/Social-Media-Analytics/internal/config"
	"github.com/Sai2035/Social-Media-Analytics/internal/domain"
	"github.com/Sai2035/Social-Media-Analytics/internal/usecases/authenticating"
	insightmocks "github.com/Sai2035/Social-Media-Analytics/internal/usecases/insighting/mocks"
	"github.com/Sai2035/Social-Media-Analytics/internal/usecases/niching"
	"github.com/Sai2035/Social-Media-Analytics/internal/usecases/ranking"
	"github.com/Sai2035/Social-Media-Analytics/pkg/metrics"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testSecret = "test-secret"

func signToken(t *testing.T, mode domain.Mode) string {
	t.Helper()

	claims := domain.Claims{
		UserID:    42,
		UserEmail: "brand@example.com",
		UserMode:  mode,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func TestServer_Routes(t *testing.T) {
	metrics.Init()

	ctrl := gomock.NewController(t)
	insights := insightmocks.NewMockMetricsProvider(ctrl)

	cfg := &config.Config{
		Server:  config.Server{Host: "localhost", Port: "0"},
		Apify:   config.Apify{Timeout: time.Second},
		Auth:    config.Auth{Secret: testSecret},
		Metrics: config.Metrics{Enabled: true},
	}

	srv, err := New(
		cfg,
		insights,
		ranking.NewEngagementRankingService(),
		niching.NewCatalogService(map[string][]string{"fitness": {"nike"}}),
		authenticating.NewService(cfg),
		nil,
		handler.CronJobServices{},
	)
	require.NoError(t, err)

	tests := []struct {
		name       string
		method     string
		path       string
		token      string
		setup      func()
		wantStatus int
	}{
		{name: "healthcheck sem token", method: http.MethodGet, path: "/healthcheck", wantStatus: http.StatusOK},
		{name: "prometheus sem token", method: http.MethodGet, path: "/metrics", wantStatus: http.StatusOK},
		{name: "métricas sem token", method: http.MethodGet, path: "/v1/entities/nike/metrics", wantStatus: http.StatusUnauthorized},
		{name: "token assinado com outro segredo", method: http.MethodGet, path: "/v1/entities/nike/metrics", token: "Bearer abc.def.ghi", wantStatus: http.StatusUnauthorized},
		{
			name:   "criador consulta métricas",
			method: http.MethodGet,
			path:   "/v1/entities/nike/metrics",
			token:  "Bearer " + signToken(t, domain.ModeCreator),
			setup: func() {
				insights.EXPECT().GetMetrics(gomock.Any(), "nike", false).Return(&domain.DerivedMetrics{EntityID: "nike"}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "marca lista os nichos",
			method:     http.MethodGet,
			path:       "/v1/niches",
			token:      "Bearer " + signToken(t, domain.ModeBrand),
			wantStatus: http.StatusOK,
		},
		{
			name:       "criador não lista nichos",
			method:     http.MethodGet,
			path:       "/v1/niches",
			token:      "Bearer " + signToken(t, domain.ModeCreator),
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "preflight liberado",
			method:     http.MethodOptions,
			path:       "/v1/compare",
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setup != nil {
				tt.setup()
			}

			req := httptest.NewRequest(tt.method, tt.path, nil)
			req.Header.Set("Origin", "http://localhost:3000")
			if tt.token != "" {
				req.Header.Set("Authorization", tt.token)
			}
			rec := httptest.NewRecorder()

			srv.Handler().ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.NotEmpty(t, rec.Header().Get("X-Correlation-ID"))
		})
	}
}
