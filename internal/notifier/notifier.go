package notifier

import (
	"errors"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/class-league/internal/league"
)

// Notifier defines a high-level interface for sending notifications about league events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For newly recorded matches
	SendResultNotification(settings league.Settings, result MatchResult, dryRun bool) error
	// For the current leaderboard
	SendStandings(settings league.Settings, standings []league.Standing, dryRun bool) error
	// For slash command responses
	FormatStandingsResponse(settings league.Settings, standings []league.Standing) (any, error)
}

// MatchResult is a recorded match with its team names resolved.
type MatchResult struct {
	Match     league.Match
	Team1Name string
	Team2Name string
}

// ErrDisabled is returned by Noop for operations that need a provider.
var ErrDisabled = errors.New("notifications are not configured")

// Noop discards every notification. It is used when no provider is configured.
type Noop struct{}

var _ Notifier = Noop{}

func (Noop) SendResultNotification(settings league.Settings, result MatchResult, dryRun bool) error {
	log.Debug("Notifications disabled, skipping result", "match", result.Match.ID)
	return nil
}

func (Noop) SendStandings(settings league.Settings, standings []league.Standing, dryRun bool) error {
	log.Debug("Notifications disabled, skipping standings", "owner", settings.OwnerID)
	return nil
}

func (Noop) FormatStandingsResponse(settings league.Settings, standings []league.Standing) (any, error) {
	return nil, ErrDisabled
}
