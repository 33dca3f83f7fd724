package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Sai2035/Social-Media-Analytics/internal/domain"
	"github.com/Sai2035/Social-Media-Analytics/pkg/utils"
	"github.com/jonboulle/clockwork"
)

// memorySnapshotRepository é o store usado sem banco configurado e nos testes.
// Os registros são copiados na entrada e na saída.
type memorySnapshotRepository struct {
	mu      sync.RWMutex
	records map[string]*domain.CacheRecord
	ttl     time.Duration
	clock   clockwork.Clock
}

func NewMemorySnapshotRepository(ttl time.Duration, clock clockwork.Clock) SnapshotRepository {
	return &memorySnapshotRepository{
		records: make(map[string]*domain.CacheRecord),
		ttl:     ttl,
		clock:   clock,
	}
}

func (r *memorySnapshotRepository) Get(_ context.Context, entityID string) (*domain.CacheRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.records[entityID].Clone(), nil
}

func (r *memorySnapshotRepository) Put(_ context.Context, entityID string, snapshot domain.MetricSnapshot, derived domain.DerivedMetrics) error {
	if err := snapshot.Validate(); err != nil {
		return &domain.StorageError{Op: "validate", EntityID: entityID, Err: err}
	}

	record := domain.NewCacheRecord(snapshot, derived, r.ttl)
	now := r.clock.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.records[entityID]
	if ok && existing.Snapshot.FetchedAt.After(record.Snapshot.FetchedAt) {
		return nil
	}

	if ok {
		record.ID = existing.ID
		record.CreatedAt = existing.CreatedAt
		record.LastAccessedAt = existing.LastAccessedAt
	} else {
		id, err := utils.GenerateID()
		if err != nil {
			return &domain.StorageError{Op: "generate id", EntityID: entityID, Err: err}
		}
		record.ID = id
		record.CreatedAt = now
	}
	record.UpdatedAt = now

	r.records[entityID] = record
	return nil
}

func (r *memorySnapshotRepository) MarkAccessed(_ context.Context, entityID string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.records[entityID]
	if !ok {
		return nil
	}

	if record.LastAccessedAt == nil || record.LastAccessedAt.Before(at) {
		accessed := at.UTC()
		record.LastAccessedAt = &accessed
	}
	return nil
}

func (r *memorySnapshotRepository) ListRefreshCandidates(_ context.Context, now time.Time, accessedSince time.Time, limit uint64) ([]string, error) {
	r.mu.RLock()
	candidates := make([]*domain.CacheRecord, 0)
	for _, record := range r.records {
		if record.ExpiresAt.After(now) || record.LastAccessedAt == nil || record.LastAccessedAt.Before(accessedSince) {
			continue
		}
		candidates = append(candidates, record)
	}
	r.mu.RUnlock()

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].ExpiresAt.Before(candidates[j].ExpiresAt)
	})

	ids := make([]string, 0, len(candidates))
	for _, record := range candidates {
		if limit > 0 && uint64(len(ids)) >= limit {
			break
		}
		ids = append(ids, record.EntityID)
	}

	return ids, nil
}
