// Package repository contém as implementações dos repositórios para acesso aos dados
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/Sai2035/Social-Media-Analytics/infrastructure/database/postgres"
	"github.com/Sai2035/Social-Media-Analytics/internal/domain"
	"github.com/Sai2035/Social-Media-Analytics/pkg/metrics"
	"github.com/Sai2035/Social-Media-Analytics/pkg/utils"
	jsoniter "github.com/json-iterator/go"
)

//go:generate mockgen -source=snapshot.go -destination=mocks/mock_snapshot.go -package=mocks

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	snapshotTable = "metric_snapshots"
)

var snapshotColumns = []string{
	"id",
	"entity_id",
	"snapshot",
	"last_derived",
	"expires_at",
	"last_accessed_at",
	"created_at",
	"updated_at",
}

// SnapshotRepository guarda um CacheRecord por conta.
// Get devolve nil, nil quando a conta nunca foi coletada.
type SnapshotRepository interface {
	Get(ctx context.Context, entityID string) (*domain.CacheRecord, error)
	Put(ctx context.Context, entityID string, snapshot domain.MetricSnapshot, derived domain.DerivedMetrics) error
	MarkAccessed(ctx context.Context, entityID string, at time.Time) error
	ListRefreshCandidates(ctx context.Context, now time.Time, accessedSince time.Time, limit uint64) ([]string, error)
}

type snapshotRepository struct {
	conn postgres.Queryer
	ttl  time.Duration
}

func NewSnapshotRepository(conn postgres.Queryer, ttl time.Duration) SnapshotRepository {
	return &snapshotRepository{
		conn: conn,
		ttl:  ttl,
	}
}

func (r *snapshotRepository) Get(ctx context.Context, entityID string) (record *domain.CacheRecord, err error) {
	defer observe("get", time.Now(), &err)

	query, args, err := squirrel.
		Select(snapshotColumns...).
		From(snapshotTable).
		Where(squirrel.Eq{"entity_id": entityID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, &domain.StorageError{Op: "build get", EntityID: entityID, Err: err}
	}

	record, err = scanCacheRecord(r.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, &domain.StorageError{Op: "get", EntityID: entityID, Err: err}
	}

	return record, nil
}

// Put grava o snapshot num único upsert. Um snapshot mais antigo que o gravado não sobrescreve o registro.
func (r *snapshotRepository) Put(ctx context.Context, entityID string, snapshot domain.MetricSnapshot, derived domain.DerivedMetrics) (err error) {
	defer observe("put", time.Now(), &err)

	if err := snapshot.Validate(); err != nil {
		return &domain.StorageError{Op: "validate", EntityID: entityID, Err: err}
	}

	record := domain.NewCacheRecord(snapshot, derived, r.ttl)

	snapshotJSON, err := json.Marshal(record.Snapshot)
	if err != nil {
		return &domain.StorageError{Op: "encode snapshot", EntityID: entityID, Err: err}
	}

	derivedJSON, err := json.Marshal(record.LastDerived)
	if err != nil {
		return &domain.StorageError{Op: "encode derived", EntityID: entityID, Err: err}
	}

	id, err := utils.GenerateID()
	if err != nil {
		return &domain.StorageError{Op: "generate id", EntityID: entityID, Err: err}
	}

	query, args, err := squirrel.
		Insert(snapshotTable).
		Columns(
			"id",
			"entity_id",
			"follower_count",
			"snapshot",
			"last_derived",
			"fetched_at",
			"expires_at",
		).
		Values(
			id,
			entityID,
			record.Snapshot.FollowerCount,
			string(snapshotJSON),
			string(derivedJSON),
			record.Snapshot.FetchedAt,
			record.ExpiresAt,
		).
		Suffix(`
			ON CONFLICT (entity_id) DO UPDATE SET
				follower_count = EXCLUDED.follower_count,
				snapshot = EXCLUDED.snapshot,
				last_derived = EXCLUDED.last_derived,
				fetched_at = EXCLUDED.fetched_at,
				expires_at = EXCLUDED.expires_at,
				updated_at = CURRENT_TIMESTAMP
			WHERE metric_snapshots.fetched_at <= EXCLUDED.fetched_at
		`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return &domain.StorageError{Op: "build put", EntityID: entityID, Err: err}
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return &domain.StorageError{Op: "put", EntityID: entityID, Err: err}
	}

	return nil
}

func (r *snapshotRepository) MarkAccessed(ctx context.Context, entityID string, at time.Time) (err error) {
	defer observe("mark_accessed", time.Now(), &err)

	query, args, err := squirrel.
		Update(snapshotTable).
		Set("last_accessed_at", at.UTC()).
		Where(squirrel.Eq{"entity_id": entityID}).
		Where(squirrel.Or{
			squirrel.Eq{"last_accessed_at": nil},
			squirrel.Lt{"last_accessed_at": at.UTC()},
		}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return &domain.StorageError{Op: "build mark accessed", EntityID: entityID, Err: err}
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return &domain.StorageError{Op: "mark accessed", EntityID: entityID, Err: err}
	}

	return nil
}

// ListRefreshCandidates lista as contas expiradas que usuários consultaram desde accessedSince,
// começando pelas expiradas há mais tempo.
func (r *snapshotRepository) ListRefreshCandidates(ctx context.Context, now time.Time, accessedSince time.Time, limit uint64) (ids []string, err error) {
	defer observe("list_refresh_candidates", time.Now(), &err)

	builder := squirrel.
		Select("entity_id").
		From(snapshotTable).
		Where(squirrel.LtOrEq{"expires_at": now.UTC()}).
		Where(squirrel.GtOrEq{"last_accessed_at": accessedSince.UTC()}).
		OrderBy("expires_at ASC").
		PlaceholderFormat(squirrel.Dollar)
	if limit > 0 {
		builder = builder.Limit(limit)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, &domain.StorageError{Op: "build list", Err: err}
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &domain.StorageError{Op: "list", Err: err}
	}
	defer rows.Close()

	ids = make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, &domain.StorageError{Op: "scan list", Err: err}
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, &domain.StorageError{Op: "iterate list", Err: err}
	}

	return ids, nil
}

func scanCacheRecord(row *sql.Row) (*domain.CacheRecord, error) {
	record := &domain.CacheRecord{}

	var (
		snapshotJSON   []byte
		derivedJSON    []byte
		lastAccessedAt sql.NullTime
	)

	err := row.Scan(
		&record.ID,
		&record.EntityID,
		&snapshotJSON,
		&derivedJSON,
		&record.ExpiresAt,
		&lastAccessedAt,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(snapshotJSON, &record.Snapshot); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(derivedJSON, &record.LastDerived); err != nil {
		return nil, err
	}

	if lastAccessedAt.Valid {
		accessed := lastAccessedAt.Time
		record.LastAccessedAt = &accessed
	}

	return record, nil
}

func observe(method string, start time.Time, err *error) {
	metrics.RecordDbLatency(time.Since(start), method, err != nil && *err != nil)
}
