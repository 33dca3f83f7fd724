package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/Sai2035/Social-Media-Analytics/infrastructure/database/postgres"
	"github.com/Sai2035/Social-Media-Analytics/infrastructure/integrator/apify"
	"github.com/Sai2035/Social-Media-Analytics/infrastructure/integrator/apify/apifyclient"
	"github.com/Sai2035/Social-Media-Analytics/infrastructure/repository"
	"github.com/Sai2035/Social-Media-Analytics/internal/api"
	"github.com/Sai2035/Social-Media-Analytics/internal/api/handler"
	"github.com/Sai2035/Social-Media-Analytics/internal/config"
	"github.com/Sai2035/Social-Media-Analytics/internal/scheduler"
	"github.com/Sai2035/Social-Media-Analytics/internal/usecases/authenticating"
	"github.com/Sai2035/Social-Media-Analytics/internal/usecases/insighting"
	"github.com/Sai2035/Social-Media-Analytics/internal/usecases/niching"
	"github.com/Sai2035/Social-Media-Analytics/internal/usecases/ranking"
	"github.com/Sai2035/Social-Media-Analytics/pkg/metrics"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	if cfg.Metrics.Enabled {
		metrics.Init()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	clock := clockwork.NewRealClock()

	// Sem DATABASE_URL o cache fica em memória e é perdido a cada deploy
	var (
		snapshotRepo repository.SnapshotRepository
		db           handler.Pinger
	)
	if cfg.Database.URL != "" {
		pgConn := pgconn(ctx, cfg.Database)
		defer pgConn.Close()

		if err := postgres.Migrate(ctx, pgConn); err != nil {
			logrus.WithError(err).Fatal("Erro ao aplicar o schema do cache de snapshots")
		}

		snapshotRepo = repository.NewSnapshotRepository(pgConn, cfg.Cache.TTL)
		db = pgConn
	} else {
		logrus.Warn("DATABASE_URL vazio, usando cache de snapshots em memória")
		snapshotRepo = repository.NewMemorySnapshotRepository(cfg.Cache.TTL, clock)
	}

	authenticator := authenticating.NewService(cfg)

	apifyClient := apifyclient.NewClient(cfg)
	apifyIntegrator := apify.New(cfg, apifyClient, clock)

	insightService := insighting.NewService(cfg, snapshotRepo, apifyIntegrator, clock)
	rankingService := ranking.NewEngagementRankingService()

	snapshotRefreshSyncService := scheduler.NewSnapshotRefreshSyncService(
		snapshotRepo,
		insightService, // Implementa Refresher
		clock,
		cfg,
	)

	if err := snapshotRefreshSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de refresh de snapshots")
	} else {
		logrus.Info("Agendador de refresh de snapshots iniciado com sucesso")
	}
	defer snapshotRefreshSyncService.Stop()

	server, err := api.New(
		cfg,
		insightService,
		rankingService,
		niching.NewCatalogService(cfg.Niches),
		authenticator,
		db,
		handler.CronJobServices{
			SnapshotRefreshSyncService: snapshotRefreshSyncService,
		},
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
