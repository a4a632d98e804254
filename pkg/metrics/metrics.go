package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AuthAttempts records authentication attempts by result (success|failure).
	AuthAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "artistcal_auth_attempts_total",
			Help: "Total number of authentication attempts",
		},
		[]string{"result"},
	)

	// AvailabilityToggles counts toggle operations by outcome (added|removed|rejected).
	AvailabilityToggles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "artistcal_availability_toggles_total",
			Help: "Total number of availability toggle operations",
		},
		[]string{"outcome"},
	)

	// BlockedDateCascades tracks availability records purged by date blocking.
	BlockedDateCascades = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "artistcal_blocked_date_purged_availabilities_total",
			Help: "Availability records removed when dates were blocked",
		},
	)

	// InvitationEmails counts invitation email deliveries by result (sent|failed|disabled).
	InvitationEmails = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "artistcal_invitation_emails_total",
			Help: "Total number of invitation email delivery attempts",
		},
		[]string{"result"},
	)

	// APILatency measures HTTP request latencies.
	APILatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "artistcal_api_latency_seconds",
			Help:    "API endpoint latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
