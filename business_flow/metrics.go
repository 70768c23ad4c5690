package businessflow

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Subscriber lookups partitioned by index or scan path and hit or miss
	subscriberLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "subscriber_resolver_lookups_total",
			Help: "Subscriber resolutions by lookup path and result",
		},
		[]string{"path", "result"},
	)

	// Pipeline outcomes partitioned by message type and outcome
	notificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_total",
			Help: "Notification pipeline runs by message type and outcome",
		},
		[]string{"message_type", "outcome"},
	)

	// Delivery status callbacks partitioned by status and whether a log entry matched
	deliveryStatusUpdatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "delivery_status_updates_total",
			Help: "Delivery status callbacks by reported status and match result",
		},
		[]string{"status", "matched"},
	)

	// Relay session operations partitioned by operation and result
	relaySessionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_sessions_total",
			Help: "Relay session operations by operation and result",
		},
		[]string{"operation", "result"},
	)
)

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
