package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Outcome string

const (
	Success Outcome = "success"
	Error   Outcome = "error"
)

func (o Outcome) String() string {
	return string(o)
}

// CacheState descreve como uma consulta de métricas foi atendida
type CacheState string

const (
	CacheHit           CacheState = "hit"
	CacheMiss          CacheState = "miss"
	CacheExpired       CacheState = "expired"
	CacheForced        CacheState = "forced"
	CacheStaleFallback CacheState = "stale_fallback"
)

var (
	once     sync.Once
	registry = prometheus.NewRegistry()

	defaultHistogramBucketsSeconds = []float64{0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 90}

	cacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "insights_cache_lookups_total",
			Help: "Snapshot cache lookups splitted by resulting state",
		},
		[]string{"state"},
	)

	upstreamLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "insights_upstream_latency_seconds",
			Help:    "Upstream scraper latency in seconds splitted by method and execution status",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"method", "status"},
	)

	upstreamErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "insights_upstream_errors_total",
			Help: "Upstream scraper failures splitted by kind",
		},
		[]string{"kind"},
	)

	dbLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "insights_db_latency_seconds",
			Help:    "DB latency in seconds splitted by method and execution status",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"method", "status"},
	)

	refreshSyncDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "insights_refresh_sync_duration_seconds",
			Help:    "Scheduled snapshot refresh duration in seconds",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600},
		},
		[]string{"status"},
	)

	refreshSyncEntities = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "insights_refresh_sync_entities",
			Help: "Entities selected by the last scheduled snapshot refresh",
		},
	)
)

// Init registra as métricas no registry da aplicação
func Init() {
	once.Do(func() {
		registry.MustRegister(
			cacheLookups,
			upstreamLatency,
			upstreamErrors,
			dbLatency,
			refreshSyncDuration,
			refreshSyncEntities,
		)
	})
}

// Handler expõe o registry no formato do Prometheus
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}

// Gatherer expõe o registry privado para leitura das métricas coletadas
func Gatherer() prometheus.Gatherer {
	return registry
}

func statusOf(failure bool) Outcome {
	if failure {
		return Error
	}
	return Success
}

func RecordCacheLookup(state CacheState) {
	cacheLookups.WithLabelValues(string(state)).Inc()
}

func RecordUpstreamLatency(d time.Duration, method string, failure bool) {
	upstreamLatency.WithLabelValues(method, statusOf(failure).String()).Observe(d.Seconds())
}

func IncUpstreamError(kind string) {
	upstreamErrors.WithLabelValues(kind).Inc()
}

func RecordDbLatency(d time.Duration, method string, failure bool) {
	dbLatency.WithLabelValues(method, statusOf(failure).String()).Observe(d.Seconds())
}

func RecordRefreshSync(d time.Duration, entities int, failures int) {
	refreshSyncEntities.Set(float64(entities))
	refreshSyncDuration.WithLabelValues(statusOf(failures > 0).String()).Observe(d.Seconds())
}

// StartUpstreamTimer mede uma chamada ao upstream e registra a latência ao final
func StartUpstreamTimer(method string) func(statusCode int) {
	startTime := time.Now()
	return func(statusCode int) {
		failure := statusCode == 0 || statusCode >= 400
		RecordUpstreamLatency(time.Since(startTime), method, failure)
		if failure {
			IncUpstreamError(strconv.Itoa(statusCode))
		}
	}
}
