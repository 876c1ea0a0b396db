package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

type LedgerPrometheusMetrics struct {
	dischargeSettledHist  prometheus.Histogram
	dischargedAmountTotal prometheus.Counter
	postCreationTasks     *prometheus.CounterVec
}

func newLedgerPrometheusMetrics(reg prometheus.Registerer) *LedgerPrometheusMetrics {
	dischargeSettledHist := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "ledger_discharge_settled_debits",
		Help:    "Number of debit transactions touched by one payment discharge.",
		Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100, 500},
	})

	dischargedAmountTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ledger_discharged_amount_total",
		Help: "Total amount moved from payments onto unsettled debits.",
	})

	postCreationTasks := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_post_creation_tasks_total",
		Help: "Post creation side effects by task and outcome.",
	}, []string{"task", "status"})

	reg.MustRegister(dischargeSettledHist, dischargedAmountTotal, postCreationTasks)

	return &LedgerPrometheusMetrics{
		dischargeSettledHist:  dischargeSettledHist,
		dischargedAmountTotal: dischargedAmountTotal,
		postCreationTasks:     postCreationTasks,
	}
}

func (m *LedgerPrometheusMetrics) ObserveDischarge(settledDebits int, discharged decimal.Decimal) {
	m.dischargeSettledHist.Observe(float64(settledDebits))
	m.dischargedAmountTotal.Add(discharged.InexactFloat64())
}

// ObservePostCreationTask status is one of "success", "failed", "dropped".
func (m *LedgerPrometheusMetrics) ObservePostCreationTask(task, status string) {
	m.postCreationTasks.WithLabelValues(task, status).Inc()
}
