package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics(t *testing.T) {
	m := New()
	m.ObserveUpstream("sleeper", "ok", 10*time.Millisecond)
	m.ObserveUpstream("sleeper", "ok", 20*time.Millisecond)
	m.CacheHit()
	m.CacheMiss()
	m.CacheMiss()
	m.RefreshRun("failed")

	if got := testutil.ToFloat64(m.UpstreamRequests.WithLabelValues("sleeper", "ok")); got != 2 {
		t.Errorf("expected 2 upstream requests, got %v", got)
	}
	if got := testutil.ToFloat64(m.CacheLookups.WithLabelValues("miss")); got != 2 {
		t.Errorf("expected 2 misses, got %v", got)
	}
	if got := testutil.ToFloat64(m.RefreshRuns.WithLabelValues("failed")); got != 1 {
		t.Errorf("expected 1 failed refresh, got %v", got)
	}

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	b, _ := io.ReadAll(rr.Result().Body)
	if !strings.Contains(string(b), "rankings_cache_lookups_total") {
		t.Errorf("metrics output missing cache lookups")
	}
}

func TestMetrics_nil(t *testing.T) {
	var m *Metrics
	// None of these should panic.
	m.ObserveUpstream("sleeper", "ok", time.Second)
	m.CacheHit()
	m.CacheMiss()
	m.RefreshRun("ok")
}
