package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveInteraction(t *testing.T) {
	before := testutil.ToFloat64(interactionsTotal.WithLabelValues("like", "matched"))
	ObserveInteraction("like", "matched")
	after := testutil.ToFloat64(interactionsTotal.WithLabelValues("like", "matched"))
	if after-before != 1 {
		t.Fatalf("expected counter to grow by 1, got %v", after-before)
	}
}

func TestMatchCounters(t *testing.T) {
	c0, r0 := testutil.ToFloat64(matchesCreated), testutil.ToFloat64(matchesRemoved)
	MatchCreated()
	MatchCreated()
	MatchRemoved()
	if testutil.ToFloat64(matchesCreated)-c0 != 2 || testutil.ToFloat64(matchesRemoved)-r0 != 1 {
		t.Fatalf("unexpected match counters")
	}
}

func TestObserveHTTPRequest(t *testing.T) {
	ObserveHTTPRequest("GET", "/api/matches", 200, 10*time.Millisecond)
	if n := testutil.CollectAndCount(httpRequests); n == 0 {
		t.Fatalf("expected at least one series")
	}
}
