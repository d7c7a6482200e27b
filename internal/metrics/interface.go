package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncMatchesRecorded()
	IncMatchesDeleted()
	IncAccessCodeRejected()
	ObserveStandingsDuration(duration float64)
	IncSlackNotifSent()
	IncSlackNotifFailed()
	IncEventsPublished()
	SetStartupTime(duration float64)
}

// UsageStore keeps lifetime usage counters in the database.
type UsageStore interface {
	Increment(key string)
	GetAll() (map[string]int, error)
}
