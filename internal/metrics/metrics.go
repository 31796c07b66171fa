package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MovementsRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stockledger_movements_recorded_total",
		Help: "Movements appended to the ledger.",
	})
	CascadedMovements = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stockledger_cascaded_movements_total",
		Help: "Ledger rows removed by catalog deletions.",
	})
)
