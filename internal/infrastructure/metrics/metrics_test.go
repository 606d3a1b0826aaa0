package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewRegistersMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	m.RecordEnvelopeBuilt("escrow", 9)

	metricFamilies, err := registry.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}
	if len(metricFamilies) == 0 {
		t.Fatalf("expected registered metrics, got none")
	}
}

func TestRecordEnvelopes(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.RecordEnvelopeBuilt("escrow", 9)
	m.RecordEnvelopeBuilt("escrow", 9)
	m.RecordEnvelopeBuilt("payment", 2)
	m.RecordEnvelopeFailed("close_escrow", "BadRequest")
	m.RecordEnvelopeFailed("close_escrow", "")

	if got := testutil.ToFloat64(m.EnvelopesBuilt.WithLabelValues("escrow")); got != 2 {
		t.Fatalf("expected 2 escrow envelopes, got %v", got)
	}
	if got := testutil.ToFloat64(m.EnvelopesBuilt.WithLabelValues("payment")); got != 1 {
		t.Fatalf("expected 1 payment envelope, got %v", got)
	}
	if got := testutil.ToFloat64(m.EnvelopeFailures.WithLabelValues("close_escrow", "BadRequest")); got != 1 {
		t.Fatalf("expected 1 classified failure, got %v", got)
	}
	if got := testutil.ToFloat64(m.EnvelopeFailures.WithLabelValues("close_escrow", "unclassified")); got != 1 {
		t.Fatalf("expected 1 unclassified failure, got %v", got)
	}
}

func TestRecordMemoSearch(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.RecordMemoSearch(3, false)
	m.RecordMemoSearch(1, true)

	if got := testutil.ToFloat64(m.DuplicateMemoBlocks); got != 1 {
		t.Fatalf("expected 1 duplicate memo, got %v", got)
	}
	if got := testutil.CollectAndCount(m.MemoSearchPages); got != 1 {
		t.Fatalf("expected memo search histogram to be collected, got %d", got)
	}
}

func TestObserveLedgerRequest(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveLedgerRequest("account", 200, 20*time.Millisecond)
	m.ObserveLedgerRequest("account", 503, 5*time.Millisecond)
	m.ObserveLedgerRequest("submit", 0, time.Second)

	if got := testutil.ToFloat64(m.LedgerRequests.WithLabelValues("account", "503")); got != 1 {
		t.Fatalf("expected one 503, got %v", got)
	}
	if got := testutil.ToFloat64(m.LedgerRequests.WithLabelValues("submit", "error")); got != 1 {
		t.Fatalf("expected transport failure to be labelled error, got %v", got)
	}
	if got := testutil.CollectAndCount(m.LedgerDuration); got != 2 {
		t.Fatalf("expected latency series for two endpoints, got %d", got)
	}
}
