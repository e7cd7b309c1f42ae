// Package metrics defines and registers the custom Prometheus metrics of the
// storefront API. It is the single source of truth for metric names, labels,
// and help strings. Metrics register with the default registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storefront"

// ── Account metrics ───────────────────────────────────────────────────────────

// AuthAttemptsTotal counts sign-up, sign-in and sign-out submissions.
// Labels:
//   - op: "signup", "signin" or "signout"
//   - result: "ok", or the error kind ("validation", "conflict", "auth", "internal")
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of account form submissions, by operation and result.",
	},
	[]string{"op", "result"},
)

// AuthThrottledTotal counts account submissions rejected by the per-device limiter.
var AuthThrottledTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_throttled_total",
		Help:      "Total number of account submissions rejected for exceeding the rate limit.",
	},
)

// ── Cart metrics ──────────────────────────────────────────────────────────────

// CartMutationsTotal counts cart commands.
// Labels:
//   - op: "add", "change", "remove"
//   - result: "ok" or the error kind
var CartMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_mutations_total",
		Help:      "Total number of cart commands, by operation and result.",
	},
	[]string{"op", "result"},
)

// CheckoutsTotal counts checkouts that produced a receipt.
var CheckoutsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checkouts_total",
		Help:      "Total number of successful checkouts.",
	},
)

// CheckoutValue observes the total price of each checkout.
var CheckoutValue = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "checkout_value",
		Help:      "Total price of checked out carts.",
		Buckets:   []float64{5, 10, 20, 40, 80, 160},
	},
)

// ── Device metrics ────────────────────────────────────────────────────────────

// DevicesIssuedTotal counts device tokens handed out.
var DevicesIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "devices_issued_total",
		Help:      "Total number of device tokens issued.",
	},
)

// SerializerQueueDepth tracks pending commands in each serializer worker.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var SerializerQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "serializer_queue_depth",
		Help:      "Current number of commands pending in each serializer worker.",
	},
	[]string{"worker_id"},
)

// ObserveQueueDepth adapts SerializerQueueDepth to the serializer's observer hook.
func ObserveQueueDepth(workerID string, depth int) {
	SerializerQueueDepth.WithLabelValues(workerID).Set(float64(depth))
}
