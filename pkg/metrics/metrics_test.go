package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordCacheLookup(t *testing.T) {
	before := testutil.ToFloat64(cacheLookups.WithLabelValues(string(CacheStaleFallback)))

	RecordCacheLookup(CacheStaleFallback)
	RecordCacheLookup(CacheStaleFallback)

	after := testutil.ToFloat64(cacheLookups.WithLabelValues(string(CacheStaleFallback)))
	assert.Equal(t, before+2, after)
}

func TestStartUpstreamTimer(t *testing.T) {
	before := testutil.ToFloat64(upstreamErrors.WithLabelValues("429"))

	StartUpstreamTimer("start_run")(http.StatusTooManyRequests)
	StartUpstreamTimer("start_run")(http.StatusCreated)

	assert.Equal(t, before+1, testutil.ToFloat64(upstreamErrors.WithLabelValues("429")))
}

func TestHandlerExposesRegisteredMetrics(t *testing.T) {
	Init()
	Init()

	RecordCacheLookup(CacheHit)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "insights_cache_lookups_total")
}
