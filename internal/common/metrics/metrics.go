// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	FanOutRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fanout_runs_total",
			Help: "Total number of fan-out runs per trigger kind",
		},
		[]string{"kind"},
	)

	FanOutDuplicates = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fanout_duplicate_triggers_total",
			Help: "Fan-out runs suppressed by the trigger dedup guard",
		},
		[]string{"kind"},
	)

	FanOutFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fanout_stage_failures_total",
			Help: "Absorbed failures per fan-out stage",
		},
		[]string{"kind", "stage"},
	)

	NotificationsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fanout_notifications_created_total",
			Help: "Notification records created per trigger kind",
		},
		[]string{"kind"},
	)

	FanOutDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "fanout_run_duration_seconds",
			Help: "Duration of a fan-out run in seconds",
		},
		[]string{"kind"},
	)
)
