package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
type Service struct {
	MatchesRecorded    prometheus.Counter
	MatchesDeleted     prometheus.Counter
	AccessCodeRejected prometheus.Counter
	StandingsDuration  prometheus.Histogram
	SlackNotifSent     prometheus.Counter
	SlackNotifFailed   prometheus.Counter
	EventsPublished    prometheus.Counter
	StartupTimeSeconds prometheus.Gauge
}

// Usage counter keys.
const (
	UsageMatchesRecorded = "matches_recorded"
	UsageMatchesDeleted  = "matches_deleted"
	UsageRostersReplaced = "rosters_replaced"
	UsageExports         = "exports_generated"
	UsageSignUps         = "accounts_created"
)
