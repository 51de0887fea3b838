// Package metrics defines the custom Prometheus metrics of the registration
// API. Collectors register with the default registry on package init, which
// echoprometheus also serves at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/eventsphere/registration-api/internal/core/domain"
)

const namespace = "eventsphere"

// ── Registration metrics ──────────────────────────────────────────────────────

// RegistrationsTotal counts registration attempts.
// Label:
//   - result: "success" or the error kind (e.g. "duplicate_registration", "registration_closed")
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationDuration measures the registration workflow end-to-end.
var RegistrationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "registration_duration_seconds",
		Help:      "Duration of the registration workflow including the ticket encoding.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"result"},
)

// AttendeeRemovalsTotal counts successful attendee removals.
// Label:
//   - source: "participant" (cancellation) or "organizer"
var AttendeeRemovalsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "attendee_removals_total",
		Help:      "Total number of attendees removed, by who initiated the removal.",
	},
	[]string{"source"},
)

// ── Event metrics ─────────────────────────────────────────────────────────────

// EventLifecycleTotal counts event lifecycle transitions.
// Label:
//   - action: "created", "closed" or "deleted"
var EventLifecycleTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "event_lifecycle_total",
		Help:      "Total number of event lifecycle transitions, by action.",
	},
	[]string{"action"},
)

// Result returns the result label for err: "success" or its error kind.
func Result(err error) string {
	if err == nil {
		return "success"
	}
	return string(domain.KindOf(err))
}
