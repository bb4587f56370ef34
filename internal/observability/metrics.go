package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DonationsCreated    = promauto.NewCounter(prometheus.CounterOpts{Namespace: "aahar", Name: "donations_created_total", Help: "Total number of donations listed"})
	DonationConflicts   = promauto.NewCounter(prometheus.CounterOpts{Namespace: "aahar", Name: "donation_conflicts_total", Help: "Conditional donation updates that lost a race"})
	RewardsApplied      = promauto.NewCounter(prometheus.CounterOpts{Namespace: "aahar", Name: "rewards_applied_total", Help: "Delivered donations credited with reward points"})
	RewardFailures      = promauto.NewCounter(prometheus.CounterOpts{Namespace: "aahar", Name: "reward_failures_total", Help: "Deliveries whose reward application failed after commit"})
	DonationTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "aahar", Name: "donation_transitions_total", Help: "Committed donation lifecycle transitions"},
		[]string{"from", "to"},
	)
	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "aahar", Name: "notifications_total", Help: "Notification deliveries by channel and result"},
		[]string{"event", "channel", "result"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "aahar", Name: "http_requests_total", Help: "Total HTTP requests handled"},
		[]string{"method", "path", "status"},
	)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "aahar",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency distribution",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
