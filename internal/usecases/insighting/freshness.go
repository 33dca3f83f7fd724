package insighting

import (
	"time"

	"github.com/Sai2035/Social-Media-Analytics/internal/domain"
)

// CacheState é a classificação de um registro no momento da consulta
type CacheState int

const (
	NoRecord CacheState = iota
	Fresh
	Stale
)

func (s CacheState) String() string {
	switch s {
	case Fresh:
		return "fresh"
	case Stale:
		return "stale"
	default:
		return "no_record"
	}
}

// IsFresh indica se o registro ainda está dentro do TTL. No instante exato da expiração já é stale.
func IsFresh(record *domain.CacheRecord, now time.Time) bool {
	return record != nil && now.Before(record.ExpiresAt)
}

func Classify(record *domain.CacheRecord, now time.Time) CacheState {
	if record == nil {
		return NoRecord
	}

	if IsFresh(record, now) {
		return Fresh
	}

	return Stale
}
