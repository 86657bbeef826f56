package models

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var settlementCount = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "credtrack_settlements_total",
		Help: "How many settlement operations marked at least one spend paid.",
	},
)

var recurrenceCount = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "credtrack_recurrences_generated_total",
		Help: "How many next occurrences were generated for recurring spends.",
	},
)

var adjustmentCount = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "credtrack_adjustments_created_total",
		Help: "How many adjustment or credit records were written by settlements.",
	},
)
