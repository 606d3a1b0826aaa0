package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "escrowledger"

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Envelope metrics
	EnvelopesBuilt      *prometheus.CounterVec
	EnvelopeFailures    *prometheus.CounterVec
	EnvelopeOperations  *prometheus.HistogramVec
	MemoSearchPages     prometheus.Histogram
	DuplicateMemoBlocks prometheus.Counter

	// Ledger gateway metrics
	LedgerRequests *prometheus.CounterVec
	LedgerDuration *prometheus.HistogramVec
}

// New creates all metrics and registers them with reg. A nil reg uses the
// default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		EnvelopesBuilt: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "envelopes_built_total",
				Help:      "Total number of unsigned envelopes built by flow",
			},
			[]string{"flow"},
		),
		EnvelopeFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "envelope_failures_total",
				Help:      "Total number of envelope build failures by flow and error kind",
			},
			[]string{"flow", "kind"},
		),
		EnvelopeOperations: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "envelope_operations",
				Help:      "Operations per built envelope",
				Buckets:   []float64{1, 2, 4, 8, 16, 32, 64, 100},
			},
			[]string{"flow"},
		),
		MemoSearchPages: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "memo_search_pages",
			Help:      "Transaction history pages scanned per duplicate memo search",
			Buckets:   []float64{1, 2, 3, 5, 10, 20, 50},
		}),
		DuplicateMemoBlocks: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "duplicate_memo_total",
			Help:      "Payments rejected because the memo was already on the ledger",
		}),

		LedgerRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "ledger_requests_total",
				Help:      "Ledger gateway requests by endpoint and status",
			},
			[]string{"endpoint", "status"},
		),
		LedgerDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "ledger_request_duration_seconds",
				Help:      "Ledger gateway request latency",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		),
	}
}

// RecordEnvelopeBuilt implements usecase.BuildRecorder.
func (m *Metrics) RecordEnvelopeBuilt(flow string, operations int) {
	m.EnvelopesBuilt.WithLabelValues(flow).Inc()
	m.EnvelopeOperations.WithLabelValues(flow).Observe(float64(operations))
}

// RecordEnvelopeFailed implements usecase.BuildRecorder.
func (m *Metrics) RecordEnvelopeFailed(flow, kind string) {
	if kind == "" {
		kind = "unclassified"
	}
	m.EnvelopeFailures.WithLabelValues(flow, kind).Inc()
}

// RecordMemoSearch implements usecase.BuildRecorder.
func (m *Metrics) RecordMemoSearch(pages int, found bool) {
	m.MemoSearchPages.Observe(float64(pages))
	if found {
		m.DuplicateMemoBlocks.Inc()
	}
}

// ObserveLedgerRequest implements stellar.RequestObserver. Status 0 marks a
// transport failure.
func (m *Metrics) ObserveLedgerRequest(endpoint string, status int, duration time.Duration) {
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	m.LedgerRequests.WithLabelValues(endpoint, label).Inc()
	m.LedgerDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}
