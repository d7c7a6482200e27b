package store

import (
	"context"

	"github.com/mauv0809/class-league/internal/league"
)

// LeagueStore is the repository behind one owner's league data.
// All methods are scoped by owner ID.
type LeagueStore interface {
	GetSettings(ctx context.Context, ownerID string) (*league.Settings, error)
	SaveSettings(ctx context.Context, settings league.Settings) error
	GetTeams(ctx context.Context, ownerID string) ([]league.Team, error)
	ReplaceTeams(ctx context.Context, ownerID string, names []string) ([]league.Team, error)
	GetMatches(ctx context.Context, ownerID string) ([]league.Match, error)
	GetMatch(ctx context.Context, ownerID, matchID string) (*league.Match, error)
	InsertMatch(ctx context.Context, match *league.Match) error
	UpdateMatch(ctx context.Context, match *league.Match) error
	DeleteMatch(ctx context.Context, ownerID, matchID string) error
}
