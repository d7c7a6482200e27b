package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client   *pubsub.Client
	prefix   string
	teardown func() error
}

// EventType represents the type of event/message sent via pubsub.
// It doubles as the topic name, after the configured prefix.
type EventType string

const (
	EventMatchRecorded   EventType = "match-recorded"
	EventMatchUpdated    EventType = "match-updated"
	EventMatchDeleted    EventType = "match-deleted"
	EventRosterReplaced  EventType = "roster-replaced"
	EventSettingsUpdated EventType = "settings-updated"
)

// LeagueEvent is the payload published for every league change.
type LeagueEvent struct {
	Type    EventType `msgpack:"type"`
	OwnerID string    `msgpack:"owner_id"`
	MatchID string    `msgpack:"match_id,omitempty"`
	Summary string    `msgpack:"summary,omitempty"`
	At      int64     `msgpack:"at"`
}
