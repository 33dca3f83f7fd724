package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Sai2035/Social-Media-Analytics/infrastructure/repository/mocks"
	"github.com/Sai2035/Social-Media-Analytics/internal/config"
	"github.com/Sai2035/Social-Media-Analytics/internal/domain"
	insightmocks "github.com/Sai2035/Social-Media-Analytics/internal/usecases/insighting/mocks"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newTestSyncConfig() *config.Config {
	return &config.Config{
		SnapshotRefreshSync: config.SnapshotRefreshSync{
			CronSchedule:      "0 */12 * * *",
			RecentWindow:      24 * time.Hour,
			MaxConcurrentJobs: 3,
			Enabled:           true,
		},
	}
}

func TestSnapshotRefreshSyncService_syncRecentSnapshots(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		setup    func(store *mocks.MockSnapshotRepository, refresher *insightmocks.MockRefresher)
		validate func(t *testing.T, status map[string]any)
	}{
		{
			name: "renova as contas expiradas consultadas recentemente",
			setup: func(store *mocks.MockSnapshotRepository, refresher *insightmocks.MockRefresher) {
				store.EXPECT().
					ListRefreshCandidates(gomock.Any(), now, now.Add(-24*time.Hour), uint64(maxCandidatesPerSync)).
					Return([]string{"nike", "adidas", "puma"}, nil)

				refresher.EXPECT().
					Refresh(gomock.Any(), gomock.Any()).
					Return(&domain.DerivedMetrics{}, nil).
					Times(3)
			},
			validate: func(t *testing.T, status map[string]any) {
				assert.Equal(t, 3, status["last_sync_refreshed"])
				assert.Equal(t, 0, status["last_sync_failed"])
				assert.Equal(t, false, status["sync_running"])
			},
		},
		{
			name: "falha de uma conta não interrompe as demais",
			setup: func(store *mocks.MockSnapshotRepository, refresher *insightmocks.MockRefresher) {
				store.EXPECT().
					ListRefreshCandidates(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]string{"nike", "ghost", "puma"}, nil)

				refresher.EXPECT().Refresh(gomock.Any(), "nike").Return(&domain.DerivedMetrics{}, nil)
				refresher.EXPECT().Refresh(gomock.Any(), "ghost").Return(nil, domain.ErrEntityNotFound)
				refresher.EXPECT().Refresh(gomock.Any(), "puma").Return(&domain.DerivedMetrics{}, nil)
			},
			validate: func(t *testing.T, status map[string]any) {
				assert.Equal(t, 2, status["last_sync_refreshed"])
				assert.Equal(t, 1, status["last_sync_failed"])
			},
		},
		{
			name: "nenhuma conta para renovar",
			setup: func(store *mocks.MockSnapshotRepository, refresher *insightmocks.MockRefresher) {
				store.EXPECT().
					ListRefreshCandidates(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, nil)
			},
			validate: func(t *testing.T, status map[string]any) {
				assert.Equal(t, 0, status["last_sync_refreshed"])
				assert.Equal(t, 0, status["last_sync_failed"])
				assert.Equal(t, now, status["last_sync_completed_at"])
			},
		},
		{
			name: "erro ao listar candidatos encerra o ciclo",
			setup: func(store *mocks.MockSnapshotRepository, refresher *insightmocks.MockRefresher) {
				store.EXPECT().
					ListRefreshCandidates(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, &domain.StorageError{Op: "list", Err: errors.New("connection refused")})
			},
			validate: func(t *testing.T, status map[string]any) {
				assert.Equal(t, 0, status["last_sync_refreshed"])
				assert.Equal(t, now, status["last_sync_started_at"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			store := mocks.NewMockSnapshotRepository(ctrl)
			refresher := insightmocks.NewMockRefresher(ctrl)
			tt.setup(store, refresher)

			service := NewSnapshotRefreshSyncService(store, refresher, clockwork.NewFakeClockAt(now), newTestSyncConfig())
			service.syncRecentSnapshots(context.Background())

			tt.validate(t, service.GetStatus())
		})
	}
}

func TestSnapshotRefreshSyncService_RespectsMaxConcurrentJobs(t *testing.T) {
	ctrl := gomock.NewController(t)

	store := mocks.NewMockSnapshotRepository(ctrl)
	refresher := insightmocks.NewMockRefresher(ctrl)

	store.EXPECT().
		ListRefreshCandidates(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]string{"a", "b", "c", "d", "e", "f"}, nil)

	var running, peak atomic.Int32
	refresher.EXPECT().Refresh(gomock.Any(), gomock.Any()).DoAndReturn(func(context.Context, string) (*domain.DerivedMetrics, error) {
		current := running.Add(1)
		for {
			observed := peak.Load()
			if current <= observed || peak.CompareAndSwap(observed, current) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		running.Add(-1)
		return &domain.DerivedMetrics{}, nil
	}).Times(6)

	service := NewSnapshotRefreshSyncService(store, refresher, clockwork.NewRealClock(), newTestSyncConfig())
	service.syncRecentSnapshots(context.Background())

	assert.LessOrEqual(t, peak.Load(), int32(3))
	assert.Equal(t, 6, service.GetStatus()["last_sync_refreshed"])
}

func TestSnapshotRefreshSyncService_SkipsOverlappingSync(t *testing.T) {
	ctrl := gomock.NewController(t)

	store := mocks.NewMockSnapshotRepository(ctrl)
	refresher := insightmocks.NewMockRefresher(ctrl)

	service := NewSnapshotRefreshSyncService(store, refresher, clockwork.NewRealClock(), newTestSyncConfig())
	service.syncRunning = true

	// Nenhuma chamada ao store é esperada enquanto outro ciclo estiver em andamento
	service.syncRecentSnapshots(context.Background())
	service.TriggerManualSync()

	assert.Equal(t, true, service.GetStatus()["sync_running"])
}

func TestSnapshotRefreshSyncService_StartDisabled(t *testing.T) {
	cfg := newTestSyncConfig()
	cfg.SnapshotRefreshSync.Enabled = false

	service := NewSnapshotRefreshSyncService(nil, nil, clockwork.NewRealClock(), cfg)

	assert.NoError(t, service.Start(context.Background()))
	assert.False(t, service.scheduler.IsRunning())
}

func TestSnapshotRefreshSyncService_StartInvalidCron(t *testing.T) {
	cfg := newTestSyncConfig()
	cfg.SnapshotRefreshSync.CronSchedule = "not a cron"

	service := NewSnapshotRefreshSyncService(nil, nil, clockwork.NewRealClock(), cfg)

	assert.Error(t, service.Start(context.Background()))
}

// waitForDelay espera até que um worker esteja parado no intervalo entre coletas
func waitForDelay(t *testing.T, clock clockwork.FakeClock) {
	t.Helper()

	blocked := make(chan struct{})
	go func() {
		clock.BlockUntil(1)
		close(blocked)
	}()

	select {
	case <-blocked:
	case <-time.After(time.Second):
		t.Fatal("nenhum worker aguardando o intervalo")
	}
}

func TestSnapshotRefreshSyncService_RequestDelay(t *testing.T) {
	tests := []struct {
		name     string
		release  func(t *testing.T, clock clockwork.FakeClock, cancel context.CancelFunc)
		validate func(t *testing.T, refreshed, failed int, calls int32)
	}{
		{
			name: "aguarda o intervalo entre coletas no relógio",
			release: func(t *testing.T, clock clockwork.FakeClock, cancel context.CancelFunc) {
				clock.Advance(time.Minute)
				waitForDelay(t, clock)
				clock.Advance(time.Minute)
			},
			validate: func(t *testing.T, refreshed, failed int, calls int32) {
				assert.Equal(t, 2, refreshed)
				assert.Equal(t, 0, failed)
				assert.Equal(t, int32(2), calls)
			},
		},
		{
			name: "cancelamento interrompe a espera e as coletas pendentes",
			release: func(t *testing.T, clock clockwork.FakeClock, cancel context.CancelFunc) {
				cancel()
			},
			validate: func(t *testing.T, refreshed, failed int, calls int32) {
				assert.Equal(t, 1, refreshed)
				assert.Equal(t, 0, failed)
				assert.Equal(t, int32(1), calls)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			refresher := insightmocks.NewMockRefresher(ctrl)

			var calls atomic.Int32
			refresher.EXPECT().Refresh(gomock.Any(), gomock.Any()).DoAndReturn(func(context.Context, string) (*domain.DerivedMetrics, error) {
				calls.Add(1)
				return &domain.DerivedMetrics{}, nil
			}).AnyTimes()

			cfg := newTestSyncConfig()
			cfg.SnapshotRefreshSync.MaxConcurrentJobs = 1
			cfg.SnapshotRefreshSync.RequestDelaySeconds = 60

			clock := clockwork.NewFakeClock()
			service := NewSnapshotRefreshSyncService(nil, refresher, clock, cfg)

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			type result struct{ refreshed, failed int }
			done := make(chan result, 1)
			go func() {
				refreshed, failed := service.refreshEntities(ctx, []string{"nike", "adidas"})
				done <- result{refreshed, failed}
			}()

			waitForDelay(t, clock)
			tt.release(t, clock, cancel)

			select {
			case r := <-done:
				tt.validate(t, r.refreshed, r.failed, calls.Load())
			case <-time.After(time.Second):
				t.Fatal("refreshEntities não terminou")
			}
		})
	}
}
