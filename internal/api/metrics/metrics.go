// Package metrics defines and registers the custom Prometheus metrics of the
// SMS API. It is the single source of truth for metric names, labels and help
// strings. Metrics are registered with the default registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "sms"

// ── Menu metrics ──────────────────────────────────────────────────────────────

// MenuResolutionsTotal counts resolved menus.
// Label:
//   - source: "cache" when served from Redis, "store" when resolved from Mongo
var MenuResolutionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "menu_resolutions_total",
		Help:      "Total number of menus resolved, by source.",
	},
	[]string{"source"},
)

// MenuFetchFailuresTotal counts resolver inputs that could not be fetched and
// were replaced by an empty list.
// Label:
//   - input: "catalog" or "access"
var MenuFetchFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "menu_fetch_failures_total",
		Help:      "Total number of failed menu input fetches, by input.",
	},
	[]string{"input"},
)

// MenuVisibleLeaves observes how many leaves a freshly resolved menu contains.
var MenuVisibleLeaves = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "menu_visible_leaves",
		Help:      "Number of visible leaves per resolved menu.",
		Buckets:   []float64{0, 1, 2, 5, 10, 20, 50},
	},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials", "inactive", "migrated" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Tracking metrics ──────────────────────────────────────────────────────────

// TrackingSavesTotal counts saved tracking records.
var TrackingSavesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tracking_saves_total",
		Help:      "Total number of tracking records saved.",
	},
)

// AttachmentsUploadedBytesTotal sums the size of stored attachments.
var AttachmentsUploadedBytesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "attachments_uploaded_bytes_total",
		Help:      "Total number of attachment bytes written to storage.",
	},
)

// AuditQueueDepth tracks the number of audit events waiting in each worker
// channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// AuditEventsDroppedTotal counts audit events discarded because the worker
// channel was full.
var AuditEventsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_dropped_total",
		Help:      "Total number of audit events dropped on a full queue.",
	},
)
