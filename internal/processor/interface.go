package processor

import (
	"context"

	"github.com/mauv0809/class-league/internal/league"
	"github.com/mauv0809/class-league/internal/notifier"
)

// Store defines the database reads required by the processor.
type Store interface {
	GetSettings(ctx context.Context, ownerID string) (*league.Settings, error)
	GetTeams(ctx context.Context, ownerID string) ([]league.Team, error)
	GetMatch(ctx context.Context, ownerID, matchID string) (*league.Match, error)
}

// Notifier defines the notification operations required by the processor.
type Notifier interface {
	notifier.Notifier
}
