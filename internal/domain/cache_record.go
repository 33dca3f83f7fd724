package domain

import "time"

// CacheRecord é o registro único por conta mantido pelo snapshot store.
// É sobrescrito a cada refresh e nunca removido: um registro expirado continua
// servindo como base anterior para o cálculo de crescimento.
type CacheRecord struct {
	ID          string         `json:"id"`
	EntityID    string         `json:"entity_id"`
	Snapshot    MetricSnapshot `json:"snapshot"`
	ExpiresAt   time.Time      `json:"expires_at"`
	LastDerived DerivedMetrics `json:"last_derived"`
	// LastAccessedAt só avança em consultas de usuários, nunca no refresh agendado
	LastAccessedAt *time.Time `json:"last_accessed_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// NewCacheRecord monta o registro calculando a expiração a partir do fetched_at
func NewCacheRecord(snapshot MetricSnapshot, derived DerivedMetrics, ttl time.Duration) *CacheRecord {
	return &CacheRecord{
		EntityID:    snapshot.EntityID,
		Snapshot:    snapshot.Clone(),
		ExpiresAt:   snapshot.FetchedAt.Add(ttl),
		LastDerived: derived,
	}
}

// Clone devolve uma cópia independente do registro
func (r *CacheRecord) Clone() *CacheRecord {
	if r == nil {
		return nil
	}

	clone := *r
	clone.Snapshot = r.Snapshot.Clone()
	if r.LastAccessedAt != nil {
		accessed := *r.LastAccessedAt
		clone.LastAccessedAt = &accessed
	}
	return &clone
}
