package insighting

import (
	"context"
	"sync"

	"github.com/Sai2035/Social-Media-Analytics/infrastructure/integrator/apify"
	"github.com/Sai2035/Social-Media-Analytics/infrastructure/repository"
	"github.com/Sai2035/Social-Media-Analytics/internal/config"
	"github.com/Sai2035/Social-Media-Analytics/internal/domain"
	"github.com/Sai2035/Social-Media-Analytics/pkg/log"
	"github.com/Sai2035/Social-Media-Analytics/pkg/metrics"
	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"
	"github.com/sourcegraph/conc/pool"
	"golang.org/x/sync/singleflight"
)

// Service orquestra cache, coleta no upstream e cálculo de deltas
type Service struct {
	cfg     *config.Config
	store   repository.SnapshotRepository
	fetcher apify.SnapshotFetcher
	clock   clockwork.Clock
	flights singleflight.Group
}

// NewService cria uma nova instância do serviço de insights
func NewService(
	cfg *config.Config,
	store repository.SnapshotRepository,
	fetcher apify.SnapshotFetcher,
	clock clockwork.Clock,
) *Service {
	return &Service{
		cfg:     cfg,
		store:   store,
		fetcher: fetcher,
		clock:   clock,
	}
}

func (s *Service) GetMetrics(ctx context.Context, entityID string, forceRefresh bool) (*domain.DerivedMetrics, error) {
	id, err := domain.NormalizeHandle(entityID)
	if err != nil {
		return nil, domain.NewInsightError(err, entityID, "")
	}

	derived, err := s.resolve(ctx, id, forceRefresh)
	if err != nil {
		return nil, err
	}

	// Falha ao registrar o acesso só tira a conta do próximo refresh agendado
	if err := s.store.MarkAccessed(context.WithoutCancel(ctx), id, s.clock.Now()); err != nil {
		log.ForContext(ctx).WithField("entity_id", id).WithError(err).Warn("insights: failed to mark entity access")
	}

	return derived, nil
}

func (s *Service) Refresh(ctx context.Context, entityID string) (*domain.DerivedMetrics, error) {
	id, err := domain.NormalizeHandle(entityID)
	if err != nil {
		return nil, domain.NewInsightError(err, entityID, "")
	}

	return s.resolve(ctx, id, false)
}

func (s *Service) Compare(ctx context.Context, entityIDs []string) (map[string]domain.CompareResult, error) {
	ids, err := domain.NormalizeHandles(entityIDs)
	if err != nil {
		return nil, err
	}

	var mu sync.Mutex
	results := make(map[string]domain.CompareResult, len(ids))

	p := pool.New().WithMaxGoroutines(domain.MaxCompareEntities)
	for _, id := range ids {
		p.Go(func() {
			derived, err := s.GetMetrics(ctx, id, false)

			mu.Lock()
			results[id] = domain.CompareResult{Metrics: derived, Err: err}
			mu.Unlock()
		})
	}
	p.Wait()

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"entity_count":  len(ids),
		"entity_failed": failed,
	}).Info("insights: compare finished")

	return results, nil
}

func (s *Service) resolve(ctx context.Context, id string, forceRefresh bool) (*domain.DerivedMetrics, error) {
	logger := log.ForContext(ctx).WithField("entity_id", id)

	existing, err := s.store.Get(ctx, id)
	if err != nil {
		logger.WithError(err).Error("insights: failed to read snapshot")
		return nil, err
	}

	now := s.clock.Now()
	state := Classify(existing, now)

	if state == Fresh && !forceRefresh {
		metrics.RecordCacheLookup(metrics.CacheHit)
		logger.WithField("cache_state", metrics.CacheHit).Debug("insights: serving cached metrics")

		derived := existing.LastDerived
		derived.Stale = false
		return &derived, nil
	}

	ch := s.flights.DoChan(id, func() (any, error) {
		return s.refresh(ctx, id, existing)
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		metrics.RecordCacheLookup(lookupState(state, forceRefresh))
		return nil, ctx.Err()
	}

	if res.Err != nil {
		if existing != nil && domain.IsTransient(res.Err) {
			metrics.RecordCacheLookup(metrics.CacheStaleFallback)
			logger.WithError(res.Err).WithField("cache_state", metrics.CacheStaleFallback).Warn("insights: upstream failed, serving cached metrics")

			derived := existing.LastDerived
			derived.Stale = !IsFresh(existing, now)
			return &derived, nil
		}

		metrics.RecordCacheLookup(lookupState(state, forceRefresh))
		logger.WithError(res.Err).Error("insights: failed to refresh metrics")
		return nil, res.Err
	}

	metrics.RecordCacheLookup(lookupState(state, forceRefresh))

	// O resultado é compartilhado entre as chamadas agrupadas
	derived := *res.Val.(*domain.DerivedMetrics)
	return &derived, nil
}

// refresh faz uma única coleta no upstream, calcula o delta contra o snapshot anterior e grava o registro
func (s *Service) refresh(ctx context.Context, id string, existing *domain.CacheRecord) (*domain.DerivedMetrics, error) {
	// A coleta é compartilhada: o cancelamento de um chamador não interrompe os demais
	detached := context.WithoutCancel(ctx)

	snapshot, err := s.fetchWithTimeout(detached, id)
	if err != nil {
		return nil, err
	}

	if snapshot.EntityID != id {
		return nil, domain.NewInsightError(domain.ErrMalformedPayload, id, "snapshot for "+snapshot.EntityID)
	}

	var previous *domain.MetricSnapshot
	if existing != nil {
		previous = &existing.Snapshot
	}

	derived := ComputeDelta(*snapshot, previous, s.clock.Now())

	if err := s.store.Put(detached, id, *snapshot, derived); err != nil {
		return nil, err
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"entity_id":           id,
		"entity_has_baseline": derived.HasBaseline,
		"entity_growth":       derived.FollowerGrowth,
	}).Info("insights: snapshot refreshed")

	return &derived, nil
}

type fetchResult struct {
	snapshot *domain.MetricSnapshot
	err      error
}

// fetchWithTimeout abandona a coleta que passar de APIFY_TIMEOUT. O resultado tardio cai
// no canal com buffer e é descartado sem ser gravado.
func (s *Service) fetchWithTimeout(ctx context.Context, id string) (*domain.MetricSnapshot, error) {
	timeout := s.cfg.Apify.Timeout

	fetchCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ch := make(chan fetchResult, 1)
	go func() {
		snapshot, err := s.fetcher.FetchSnapshot(fetchCtx, id)
		ch <- fetchResult{snapshot: snapshot, err: err}
	}()

	select {
	case r := <-ch:
		if r.err == nil && r.snapshot == nil {
			return nil, domain.NewInsightError(domain.ErrMalformedPayload, id, "empty snapshot")
		}
		return r.snapshot, r.err
	case <-fetchCtx.Done():
		return nil, errors.Wrapf(domain.ErrUpstreamUnavailable, "upstream timeout after %s", timeout)
	}
}

func lookupState(state CacheState, forceRefresh bool) metrics.CacheState {
	switch {
	case state == NoRecord:
		return metrics.CacheMiss
	case state == Fresh && forceRefresh:
		return metrics.CacheForced
	default:
		return metrics.CacheExpired
	}
}

var (
	_ MetricsProvider = (*Service)(nil)
	_ Refresher       = (*Service)(nil)
)
