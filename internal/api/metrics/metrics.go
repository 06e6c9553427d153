// Package metrics defines and registers all custom Prometheus metrics for the
// FoodExpress API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation through promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "foodexpress"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthOperationsTotal counts auth operations by outcome.
// Labels:
//   - operation: "login", "register", "logout", "restore"
//   - outcome: "ok", "invalid", "rejected", "unavailable", "none"
var AuthOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_operations_total",
		Help:      "Total number of auth operations, by operation and outcome.",
	},
	[]string{"operation", "outcome"},
)

// ── Cart metrics ──────────────────────────────────────────────────────────────

// CartMutationsTotal counts applied cart mutations.
// Label:
//   - operation: "add", "remove", "clear_notification"
var CartMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_mutations_total",
		Help:      "Total number of cart mutations applied, by operation.",
	},
	[]string{"operation"},
)

// CartQueueDepth tracks pending jobs in each dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var CartQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "cart_queue_depth",
		Help:      "Current number of cart jobs pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// CartJobDuration measures how long a cart job waits and runs.
var CartJobDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "cart_job_duration_seconds",
		Help:      "Duration of a cart job from submission to completion.",
		Buckets:   prometheus.DefBuckets,
	},
)
