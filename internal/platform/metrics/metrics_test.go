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

func TestRegistry_RecordsAndExposes(t *testing.T) {
	t.Parallel()

	reg := New()
	reg.ObserveUpstream("league", OutcomeSuccess, 120*time.Millisecond)
	reg.ObserveUpstream("league", OutcomeSuccess, 80*time.Millisecond)
	reg.ObservePoolStrategy("league-pool", OutcomeSuccess)
	reg.ObserveHTTP(http.MethodGet, "/api/players/{seasonId}", http.StatusNotFound, time.Millisecond)

	if got := testutil.ToFloat64(reg.upstreamRequests.WithLabelValues("league", OutcomeSuccess)); got != 2 {
		t.Fatalf("expected 2 upstream requests, got %v", got)
	}
	if got := testutil.ToFloat64(reg.poolStrategy.WithLabelValues("league-pool", OutcomeSuccess)); got != 1 {
		t.Fatalf("expected 1 strategy run, got %v", got)
	}
	if got := testutil.ToFloat64(reg.httpRequests.WithLabelValues(http.MethodGet, "/api/players/{seasonId}", "4xx")); got != 1 {
		t.Fatalf("expected 1 http request, got %v", got)
	}

	rec := httptest.NewRecorder()
	reg.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	for _, name := range []string{
		"draft_assistant_espn_upstream_requests_total",
		"draft_assistant_espn_upstream_request_duration_seconds",
		"draft_assistant_player_pool_strategy_total",
		"draft_assistant_http_requests_total",
	} {
		if !strings.Contains(string(body), name) {
			t.Fatalf("expected %s in exposition, got %s", name, body)
		}
	}
}

func TestRegistry_NilIsNoop(t *testing.T) {
	t.Parallel()

	var reg *Registry
	reg.ObserveUpstream("league", OutcomeError, time.Second)
	reg.ObservePoolStrategy("season-players", OutcomeSkipped)
	reg.SetPoolSize(3)

	rec := httptest.NewRecorder()
	reg.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 from nil registry, got %d", rec.Code)
	}
}
