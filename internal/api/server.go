package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Sai2035/Social-Media-Analytics/internal/api/handler"
	"github.com/Sai2035/Social-Media-Analytics/internal/api/handler/router"
	"github.com/Sai2035/Social-Media-Analytics/internal/config"
	"github.com/Sai2035/Social-Media-Analytics/internal/usecases/authenticating"
	"github.com/Sai2035/Social-Media-Analytics/internal/usecases/insighting"
	"github.com/Sai2035/Social-Media-Analytics/internal/usecases/niching"
	"github.com/Sai2035/Social-Media-Analytics/internal/usecases/ranking"
	"github.com/Sai2035/Social-Media-Analytics/pkg/middleware"
	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
)

type Server struct {
	httpServer *http.Server
}

// New monta as rotas da API. db pode ser nil quando o store em memória estiver em uso.
func New(
	config *config.Config,
	insightService insighting.MetricsProvider,
	rankingService ranking.RankingService,
	nicheCatalog niching.NicheCatalog,
	authenticator authenticating.Authenticator,
	db handler.Pinger,
	cronServices handler.CronJobServices,
) (*Server, error) {
	rt := router.New(buildRoutes(config, insightService, rankingService, nicheCatalog, db, cronServices)...)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(),
		middleware.AuthMiddleware(authenticator),
	}

	handler := alice.New(middlewares...).Then(rt)

	// WriteTimeout acima do APIFY_TIMEOUT para a resposta de uma coleta lenta não ser cortada
	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           handler,
			ReadHeaderTimeout: 2 * time.Second,
			WriteTimeout:      config.Apify.Timeout + 15*time.Second,
		},
	}

	return srv, nil
}

func buildRoutes(
	config *config.Config,
	insightService insighting.MetricsProvider,
	rankingService ranking.RankingService,
	nicheCatalog niching.NicheCatalog,
	db handler.Pinger,
	cronServices handler.CronJobServices,
) []router.ConfigRouter {
	routes := []router.ConfigRouter{
		router.WithRoutes(handler.Healthcheck(db)...),
		router.WithRoutes(handler.EntityMetrics(insightService)...),
		router.WithRoutes(handler.Compare(insightService, rankingService, nicheCatalog)...),
		router.WithRoutes(handler.Niches(nicheCatalog)...),
		router.WithRoutes(handler.CronJobs(cronServices)...),
	}

	if config.Metrics.Enabled {
		routes = append(routes, router.WithRoutes(handler.Prometheus()...))
	}

	return routes
}

// Handler expõe a cadeia completa de middlewares e rotas
func (s Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("server: starting")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("server: listen failed")
			errCh <- err
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(done)

	select {
	case <-done:
		logrus.Info("server: interrupt signal received")
	case <-ctx.Done():
		logrus.Info("server: application context cancelled")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logrus.WithFields(logrus.Fields{
		"timeout": "15s",
	}).Info("server: graceful shutdown started")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("server: shutdown failed")
		return err
	}

	logrus.Info("server: stopped")
	return nil
}

// Shutdown encerra apenas o servidor HTTP. Banco e agendador são encerrados pelo main.
func (s Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
