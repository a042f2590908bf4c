package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Counters for the ledger's write path. Registered on the default registry
// and exposed on /metrics.
var (
	EntriesCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "staff_ledger_entries_created_total",
		Help: "Total number of ledger entries created, by kind.",
	}, []string{"kind"})

	PaymentsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "staff_ledger_payments_created_total",
		Help: "Total number of payments created.",
	})

	PaymentsReverted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "staff_ledger_payments_reverted_total",
		Help: "Total number of payments undone.",
	})

	PaymentConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "staff_ledger_payment_conflicts_total",
		Help: "Total number of payment attempts rejected because another payment claimed the same entries first.",
	})
)
