package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Posting metrics
	PostingsCreated  *prometheus.CounterVec
	PostingsRejected *prometheus.CounterVec
	PostingDuration  prometheus.Histogram
	PostingAmount    prometheus.Histogram

	// Account metrics
	AccountsCreated prometheus.Counter

	// Database metrics
	DBRetries prometheus.Counter
}

// New creates and registers all Prometheus metrics on the given registerer.
// Tests pass a fresh prometheus.NewRegistry to avoid duplicate registration.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		PostingsCreated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bankbook_postings_created_total",
				Help: "Total number of completed postings by transaction type",
			},
			[]string{"type"},
		),
		PostingsRejected: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bankbook_postings_rejected_total",
				Help: "Total number of rejected postings by type and reason",
			},
			[]string{"type", "reason"},
		),
		PostingDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "bankbook_posting_duration_seconds",
			Help:    "Duration of posting operations",
			Buckets: prometheus.DefBuckets,
		}),
		PostingAmount: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "bankbook_posting_amount",
			Help:    "Posting amounts",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		}),
		AccountsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "bankbook_accounts_created_total",
			Help: "Total number of accounts created",
		}),
		DBRetries: factory.NewCounter(prometheus.CounterOpts{
			Name: "bankbook_db_retries_total",
			Help: "Total number of retried database transactions",
		}),
	}
}
