// Package metrics defines the custom Prometheus metrics of the RSVP API. It is
// the single source of truth for metric names, labels and help strings.
//
// Metrics are registered with the default registry on package init through
// promauto; HTTP request metrics come from the echoprometheus middleware.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "rsvp"

// ── RSVP metrics ──────────────────────────────────────────────────────────────

// RSVPsTotal counts RSVP attempts.
// Labels:
//   - status: requested RSVP status ("Going", "Maybe", "Can't Go", or "invalid")
//   - outcome: "accepted", "already_rsvpd", "full", "not_found" or "error"
var RSVPsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rsvps_total",
		Help:      "Total number of RSVP attempts, by requested status and outcome.",
	},
	[]string{"status", "outcome"},
)

// EventsCreatedTotal counts newly created events.
var EventsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_created_total",
		Help:      "Total number of events created.",
	},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// NotificationsTotal counts notification outcomes.
// Labels:
//   - kind: "rsvp" or "welcome"
//   - result: "sent", "failed", "duplicate" or "dropped"
var NotificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "Total number of notifications handled, by kind and result.",
	},
	[]string{"kind", "result"},
)

// NotificationQueueDepth tracks pending notifications per worker channel.
var NotificationQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notification_queue_depth",
		Help:      "Current number of notifications pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// NotificationSendDuration measures a single delivery attempt.
var NotificationSendDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "notification_send_duration_seconds",
		Help:      "Duration of a single email delivery attempt.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"result"},
)
