package main

import (
	"context"
	"flag"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/Sai2035/Social-Media-Analytics/infrastructure/database/postgres"
	"github.com/Sai2035/Social-Media-Analytics/internal/config"
	"github.com/sirupsen/logrus"
)

func setupLogger() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
	logrus.Info("Iniciando script de migração...")
}

// report mostra quantos snapshots existem e quantos já passaram do TTL
func report(ctx context.Context, conn postgres.Queryer) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	query, args, err := psql.
		Select("COUNT(*)", "COUNT(*) FILTER (WHERE expires_at <= NOW())").
		From("metric_snapshots").
		ToSql()
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao montar a consulta de resumo")
	}

	var total, expired int64
	if err := conn.QueryRowContext(ctx, query, args...).Scan(&total, &expired); err != nil {
		logrus.WithError(err).Fatal("Erro ao consultar o resumo de snapshots")
	}

	logrus.WithFields(logrus.Fields{
		"snapshots": total,
		"expired":   expired,
	}).Info("Resumo do cache de snapshots")
}

func main() {
	setupLogger()

	dryRun := flag.Bool("dry-run", false, "apenas mostra o resumo sem aplicar o schema")
	flag.Parse()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao carregar a configuração")
	}

	if cfg.Database.URL == "" {
		logrus.Fatal("DATABASE_URL não configurado")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	startTime := time.Now()

	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}
	defer conn.Close()

	if !*dryRun {
		if err := postgres.Migrate(ctx, conn); err != nil {
			logrus.WithError(err).Fatal("Erro ao aplicar o schema")
		}
		logrus.Info("Schema do cache de snapshots aplicado")
	}

	report(ctx, conn)

	logrus.Infof("Migração concluída em %v", time.Since(startTime))
}
