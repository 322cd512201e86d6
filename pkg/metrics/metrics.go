// Package metrics holds the Prometheus collectors of the ledger service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tailorshop"

// ─── Payouts ────────────────────────────────────────────────────────────────

// PayoutsProcessed counts payout events by outcome (paid, duplicate, failed).
var PayoutsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "payout",
	Name:      "events_total",
	Help:      "Payout events handled, by outcome.",
}, []string{"outcome"})

// CascadeFailures counts cascades that stopped part way, by step.
var CascadeFailures = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "payout",
	Name:      "cascade_failures_total",
	Help:      "Commission cascades interrupted by a failed write.",
}, []string{"step"})

// CascadeDuration observes how long one distribution takes.
var CascadeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Namespace: namespace,
	Subsystem: "payout",
	Name:      "cascade_duration_seconds",
	Help:      "Time spent distributing one payout event.",
	Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
})

// ─── Ledger ─────────────────────────────────────────────────────────────────

// LedgerRecords counts appended ledger records by wallet and direction.
var LedgerRecords = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "ledger",
	Name:      "records_total",
	Help:      "Ledger records written.",
}, []string{"wallet_type", "direction"})

// ─── Cache ──────────────────────────────────────────────────────────────────

// CacheHits counts read-through cache hits by key.
var CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "cache",
	Name:      "hits_total",
	Help:      "Read-through cache hits.",
}, []string{"key"})

// CacheMisses counts read-through cache misses by key.
var CacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "cache",
	Name:      "misses_total",
	Help:      "Read-through cache misses.",
}, []string{"key"})

// Outcomes of a payout event.
const (
	OutcomePaid      = "paid"
	OutcomeDuplicate = "duplicate"
	OutcomeFailed    = "failed"
)
