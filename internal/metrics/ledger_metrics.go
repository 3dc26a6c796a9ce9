package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

// Ledger operation labels
const (
	OperationGenerate = "generate"
	OperationSplit    = "split"
	OperationSettle   = "settle"
	OperationLineage  = "lineage"
	OperationRefresh  = "refresh"
)

// LedgerMetrics collects counters for the billing ledger.
// A nil *LedgerMetrics is valid and records nothing.
type LedgerMetrics struct {
	billsGenerated   prometheus.Counter
	splits           prometheus.Counter
	settlements      prometheus.Counter
	settledAmount    prometheus.Counter
	balancesRefreshed prometheus.Counter
	errors           *prometheus.CounterVec
	duration         *prometheus.HistogramVec
}

// NewLedgerMetrics creates and registers the ledger collectors.
// Pass prometheus.NewRegistry() in tests to avoid duplicate registration.
func NewLedgerMetrics(registerer prometheus.Registerer) *LedgerMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	m := &LedgerMetrics{
		billsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "frontdesk",
			Subsystem: "ledger",
			Name:      "bills_generated_total",
			Help:      "Bills generated from folios.",
		}),
		splits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "frontdesk",
			Subsystem: "ledger",
			Name:      "bill_splits_total",
			Help:      "Split bills created.",
		}),
		settlements: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "frontdesk",
			Subsystem: "ledger",
			Name:      "settlements_total",
			Help:      "Settlement payments recorded.",
		}),
		settledAmount: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "frontdesk",
			Subsystem: "ledger",
			Name:      "settlement_amount_total",
			Help:      "Sum of settlement payment amounts.",
		}),
		balancesRefreshed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "frontdesk",
			Subsystem: "ledger",
			Name:      "balances_refreshed_total",
			Help:      "Open bills whose persisted balance changed during a refresh run.",
		}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "frontdesk",
			Subsystem: "ledger",
			Name:      "errors_total",
			Help:      "Failed ledger operations by operation and error kind.",
		}, []string{"operation", "kind"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "frontdesk",
			Subsystem: "ledger",
			Name:      "operation_duration_seconds",
			Help:      "Latency of ledger operations.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
	}

	registerer.MustRegister(
		m.billsGenerated,
		m.splits,
		m.settlements,
		m.settledAmount,
		m.balancesRefreshed,
		m.errors,
		m.duration,
	)
	return m
}

// ObserveOperation records latency for an operation and, when kind is not
// empty, counts a failure of that kind.
func (m *LedgerMetrics) ObserveOperation(operation string, start time.Time, kind string) {
	if m == nil {
		return
	}
	m.duration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	if kind != "" {
		m.errors.WithLabelValues(operation, kind).Inc()
	}
}

func (m *LedgerMetrics) BillGenerated() {
	if m == nil {
		return
	}
	m.billsGenerated.Inc()
}

func (m *LedgerMetrics) BillSplit() {
	if m == nil {
		return
	}
	m.splits.Inc()
}

func (m *LedgerMetrics) SettlementRecorded(amount decimal.Decimal) {
	if m == nil {
		return
	}
	m.settlements.Inc()
	m.settledAmount.Add(amount.InexactFloat64())
}

func (m *LedgerMetrics) BalancesRefreshed(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.balancesRefreshed.Add(float64(n))
}
