// Package metrics defines and registers the Prometheus metrics of the realm
// services. Metrics are registered with the default registry on package
// initialization and exposed by the /metrics route of both HTTP servers.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "realm"

// Result label values shared by several metrics.
const (
	ResultOK       = "ok"
	ResultError    = "error"
	ResultTooSoon  = "too_soon"
	ResultNotFound = "not_found"
	ResultRejected = "rejected"
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// UsersRegisteredTotal counts successful registrations.
var UsersRegisteredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of registered users.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "ok", "rejected" (bad credentials) or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Queue metrics ─────────────────────────────────────────────────────────────

// MessagesPublishedTotal counts publish attempts.
// Labels:
//   - queue: destination queue name
//   - result: "ok" or "error"
var MessagesPublishedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "messages_published_total",
		Help:      "Total number of messages published, by queue and result.",
	},
	[]string{"queue", "result"},
)

// DeliveriesTotal counts consumed deliveries by final acknowledgement.
// Labels:
//   - queue: source queue name
//   - outcome: "ack", "nack" or "reject"
var DeliveriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "deliveries_total",
		Help:      "Total number of consumed deliveries, by queue and outcome.",
	},
	[]string{"queue", "outcome"},
)

// DeliveryProcessingDuration measures how long one delivery takes from receipt
// to acknowledgement.
var DeliveryProcessingDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "delivery_processing_duration_seconds",
		Help:      "Duration of delivery processing from receipt to acknowledgement.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"queue", "outcome"},
)

// ConsumerReconnectsTotal counts consumer reconnect attempts.
var ConsumerReconnectsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "consumer_reconnects_total",
		Help:      "Total number of consumer reconnect attempts, by queue.",
	},
	[]string{"queue"},
)

// ── Game metrics ──────────────────────────────────────────────────────────────

// StateInitTotal counts State Initializer runs.
// Labels:
//   - source: "consumer" or "fallback"
//   - outcome: "existing", "created", "repaired" or "error"
var StateInitTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "state_init_total",
		Help:      "Total number of game state initializations, by source and outcome.",
	},
	[]string{"source", "outcome"},
)

// CollectionsTotal counts collect attempts.
// Label:
//   - result: "ok", "too_soon", "not_found" or "error"
var CollectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "collections_total",
		Help:      "Total number of resource collections, by result.",
	},
	[]string{"result"},
)

// UpgradesTotal counts successful building upgrades.
var UpgradesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upgrades_total",
		Help:      "Total number of building upgrades, by building.",
	},
	[]string{"building"},
)

// ── HTTP metrics ──────────────────────────────────────────────────────────────

// HTTPRequestDuration measures inbound request latency.
// Labels:
//   - method: HTTP method
//   - route: chi route pattern (e.g. "/build/{building_type}")
//   - status: response status code
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of inbound HTTP requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route", "status"},
)
