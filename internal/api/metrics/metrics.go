// Package metrics defines and registers all custom Prometheus metrics for the
// Share2care admin console. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry on package load and
// are served from /metrics next to the echoprometheus HTTP metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "share2care_admin"

// ── Gateway metrics ───────────────────────────────────────────────────────────

// GatewayRequestsTotal counts calls made to the Share2care REST API.
// Labels:
//   - method: HTTP method
//   - resource: first path segment after /admin (e.g. "users", "events")
//   - outcome: "ok", "client_error", "server_error" or "transport_error"
var GatewayRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gateway_requests_total",
		Help:      "Total number of requests sent to the Share2care API.",
	},
	[]string{"method", "resource", "outcome"},
)

// GatewayRequestDuration measures API round-trip latency.
var GatewayRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "gateway_request_duration_seconds",
		Help:      "Latency of requests sent to the Share2care API.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "resource"},
)

// ── Listing metrics ───────────────────────────────────────────────────────────

// ListingRefreshTotal counts listing refreshes.
// Labels:
//   - entity: "users" or "events"
//   - result: "ok", "error" or "superseded"
var ListingRefreshTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "listing_refresh_total",
		Help:      "Total number of listing refreshes, by entity and result.",
	},
	[]string{"entity", "result"},
)

// ── Workflow metrics ──────────────────────────────────────────────────────────

// ApprovalDecisionsTotal counts approval decisions.
// Labels:
//   - status: "approved" or "rejected"
//   - result: "ok", "invalid" or "failed"
var ApprovalDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "approval_decisions_total",
		Help:      "Total number of user approval decisions.",
	},
	[]string{"status", "result"},
)

// SagaStepFailuresTotal counts optional workflow steps that failed.
var SagaStepFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "saga_step_failures_total",
		Help:      "Total number of best-effort workflow steps that failed.",
	},
	[]string{"saga", "step"},
)

// ── Messaging metrics ─────────────────────────────────────────────────────────

// BroadcastsTotal counts accepted mass messages, by channel.
var BroadcastsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "broadcasts_total",
		Help:      "Total number of mass messages accepted.",
	},
	[]string{"channel"},
)

// DeliveriesTotal counts per-recipient deliveries.
// Labels:
//   - channel: "email" or "notification"
//   - result: "ok" or "error"
var DeliveriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "deliveries_total",
		Help:      "Total number of per-recipient message deliveries.",
	},
	[]string{"channel", "result"},
)

// DeliveryQueueDepth tracks the number of deliveries waiting in each worker channel.
var DeliveryQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "delivery_queue_depth",
		Help:      "Current number of deliveries pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
