// Package scheduler contém os serviços de agendamento para atualização de snapshots
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Sai2035/Social-Media-Analytics/infrastructure/repository"
	"github.com/Sai2035/Social-Media-Analytics/internal/config"
	"github.com/Sai2035/Social-Media-Analytics/internal/usecases/insighting"
	"github.com/Sai2035/Social-Media-Analytics/pkg/metrics"
	"github.com/go-co-op/gocron"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc/pool"
)

// maxCandidatesPerSync limita quantas contas um ciclo de refresh agendado pode coletar
const maxCandidatesPerSync = 500

// SnapshotRefreshSyncConfig representa a configuração do refresh agendado de snapshots
type SnapshotRefreshSyncConfig struct {
	CronSchedule        string
	RecentWindow        time.Duration
	RequestDelaySeconds int
	MaxConcurrentJobs   int
	SyncEnabled         bool
}

// SnapshotRefreshSyncService renova os snapshots expirados de contas consultadas recentemente,
// mantendo o cache quente para o próximo acesso do painel
type SnapshotRefreshSyncService struct {
	scheduler           *gocron.Scheduler
	config              SnapshotRefreshSyncConfig
	store               repository.SnapshotRepository
	refresher           insighting.Refresher
	clock               clockwork.Clock
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSyncRefreshed   int
	lastSyncFailed      int
}

// NewSnapshotRefreshSyncService cria uma nova instância do refresh agendado
func NewSnapshotRefreshSyncService(
	store repository.SnapshotRepository,
	refresher insighting.Refresher,
	clock clockwork.Clock,
	appConfig *config.Config,
) *SnapshotRefreshSyncService {
	syncConfig := SnapshotRefreshSyncConfig{
		CronSchedule:        appConfig.SnapshotRefreshSync.CronSchedule,
		RecentWindow:        appConfig.SnapshotRefreshSync.RecentWindow,
		RequestDelaySeconds: appConfig.SnapshotRefreshSync.RequestDelaySeconds,
		MaxConcurrentJobs:   appConfig.SnapshotRefreshSync.MaxConcurrentJobs,
		SyncEnabled:         appConfig.SnapshotRefreshSync.Enabled,
	}

	if syncConfig.MaxConcurrentJobs <= 0 {
		syncConfig.MaxConcurrentJobs = 1
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule":         syncConfig.CronSchedule,
		"recent_window":         syncConfig.RecentWindow.String(),
		"request_delay_seconds": syncConfig.RequestDelaySeconds,
		"max_concurrent_jobs":   syncConfig.MaxConcurrentJobs,
		"sync_enabled":          syncConfig.SyncEnabled,
	}).Info("scheduler: snapshot refresh sync configured")

	return &SnapshotRefreshSyncService{
		scheduler: gocron.NewScheduler(time.UTC),
		config:    syncConfig,
		store:     store,
		refresher: refresher,
		clock:     clock,
	}
}

// Start agenda o refresh e para o agendador quando o contexto for cancelado
func (s *SnapshotRefreshSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("scheduler: snapshot refresh sync disabled by configuration")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("scheduler: starting snapshot refresh sync")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncRecentSnapshots(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar refresh de snapshots: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// Stop interrompe o agendador sem esperar o ciclo em andamento
func (s *SnapshotRefreshSyncService) Stop() {
	if s.scheduler.IsRunning() {
		logrus.Info("scheduler: stopping snapshot refresh sync")
		s.scheduler.Stop()
	}
}

// syncRecentSnapshots executa um ciclo de refresh. Ciclos sobrepostos são ignorados.
func (s *SnapshotRefreshSyncService) syncRecentSnapshots(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("scheduler: snapshot refresh sync already running, skipping")
		return
	}
	s.syncRunning = true
	s.lastSyncStartedAt = s.clock.Now()
	s.syncMutex.Unlock()

	refreshed, failed := 0, 0
	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.lastSyncCompletedAt = s.clock.Now()
		s.lastSyncRefreshed = refreshed
		s.lastSyncFailed = failed
		s.syncMutex.Unlock()
	}()

	startTime := time.Now()
	now := s.clock.Now()

	entityIDs, err := s.store.ListRefreshCandidates(ctx, now, now.Add(-s.config.RecentWindow), maxCandidatesPerSync)
	if err != nil {
		logrus.WithError(err).Error("scheduler: failed to list refresh candidates")
		return
	}

	if len(entityIDs) == 0 {
		logrus.Info("scheduler: no expired snapshots to refresh")
		metrics.RecordRefreshSync(time.Since(startTime), 0, 0)
		return
	}

	logrus.WithField("entity_count", len(entityIDs)).Info("scheduler: refreshing expired snapshots")

	refreshed, failed = s.refreshEntities(ctx, entityIDs)

	duration := time.Since(startTime)
	metrics.RecordRefreshSync(duration, len(entityIDs), failed)

	logrus.WithFields(logrus.Fields{
		"duration":         duration.String(),
		"entity_refreshed": refreshed,
		"entity_failed":    failed,
	}).Info("scheduler: snapshot refresh sync finished")
}

// refreshEntities renova cada conta em paralelo. A falha de uma conta não interrompe as demais.
func (s *SnapshotRefreshSyncService) refreshEntities(ctx context.Context, entityIDs []string) (int, int) {
	var mu sync.Mutex
	refreshed, failed := 0, 0

	p := pool.New().WithMaxGoroutines(s.config.MaxConcurrentJobs)
	for _, entityID := range entityIDs {
		p.Go(func() {
			if ctx.Err() != nil {
				return
			}

			_, err := s.refresher.Refresh(ctx, entityID)

			mu.Lock()
			if err != nil {
				failed++
			} else {
				refreshed++
			}
			mu.Unlock()

			if err != nil {
				logrus.WithFields(logrus.Fields{
					"entity_id": entityID,
					"error":     err.Error(),
				}).Warn("scheduler: failed to refresh snapshot")
			}

			// Aguardar antes da próxima coleta para não estourar o rate limit do upstream
			if s.config.RequestDelaySeconds > 0 {
				select {
				case <-ctx.Done():
				case <-s.clock.After(time.Duration(s.config.RequestDelaySeconds) * time.Second):
				}
			}
		})
	}
	p.Wait()

	return refreshed, failed
}

// TriggerManualSync inicia manualmente um ciclo de refresh
func (s *SnapshotRefreshSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("scheduler: snapshot refresh sync already running, ignoring manual trigger")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("scheduler: starting manual snapshot refresh sync")
	go s.syncRecentSnapshots(context.Background())
}

// GetStatus retorna o status atual do agendador
func (s *SnapshotRefreshSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_running":           s.syncRunning,
		"recent_window":          s.config.RecentWindow.String(),
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_sync_refreshed":    s.lastSyncRefreshed,
		"last_sync_failed":       s.lastSyncFailed,
	}
}
