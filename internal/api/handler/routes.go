package handler

import (
	"net/http"

	"github.com/Sai2035/Social-Media-Analytics/internal/api/handler/router"
	"github.com/Sai2035/Social-Media-Analytics/internal/usecases/insighting"
	"github.com/Sai2035/Social-Media-Analytics/internal/usecases/niching"
	"github.com/Sai2035/Social-Media-Analytics/internal/usecases/ranking"
	"github.com/Sai2035/Social-Media-Analytics/pkg/metrics"
	"github.com/Sai2035/Social-Media-Analytics/pkg/middleware"
)

func Healthcheck(db Pinger) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(db),
		},
	}
}

func Prometheus() []router.Route {
	return []router.Route{
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: metrics.Handler(),
		},
	}
}

func EntityMetrics(service insighting.MetricsProvider) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/entities/:handle/metrics",
			Method:      http.MethodGet,
			Handler:     GetEntityMetrics(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllModes()},
		},
	}
}

func Compare(service insighting.MetricsProvider, rankingService ranking.RankingService, catalog niching.NicheCatalog) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/compare",
			Method:      http.MethodPost,
			Handler:     CompareEntities(service, rankingService, catalog),
			Middlewares: []func(http.Handler) http.Handler{middleware.BrandOnly()},
		},
	}
}

func Niches(catalog niching.NicheCatalog) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/niches",
			Method:      http.MethodGet,
			Handler:     ListNiches(catalog),
			Middlewares: []func(http.Handler) http.Handler{middleware.BrandOnly()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.BrandOnly()},
		},
		{
			Path:        "/v1/cron/:type/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.BrandOnly()},
		},
	}
}
