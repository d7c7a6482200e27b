package classroom

import (
	"context"

	"github.com/mauv0809/class-league/internal/access"
	"github.com/mauv0809/class-league/internal/league"
)

// Service is the league application layer. Every operation takes the resolved viewer
// and checks its capabilities before touching the store.
// The dryRun flags only suppress side-channel delivery; database writes always happen.
type Service interface {
	Snapshot(ctx context.Context, ownerID string) (*Snapshot, error)
	League(ctx context.Context, viewer access.Viewer) (*LeagueView, error)
	Standings(ctx context.Context, viewer access.Viewer) ([]league.Standing, error)
	TeamHistory(ctx context.Context, viewer access.Viewer, teamID string) (*league.Standing, error)
	SearchHistory(ctx context.Context, viewer access.Viewer, term string) ([]league.HistoryEntry, error)

	RecordMatch(ctx context.Context, viewer access.Viewer, in league.MatchInput, dryRun bool) (*league.Match, error)
	EditMatch(ctx context.Context, viewer access.Viewer, matchID string, in league.MatchInput, dryRun bool) (*league.Match, error)
	DeleteMatch(ctx context.Context, viewer access.Viewer, matchID, accessCode string, dryRun bool) error

	Unlock(ctx context.Context, viewer access.Viewer, accessCode string) error
	SaveSettings(ctx context.Context, viewer access.Viewer, accessCode string, in SettingsInput, dryRun bool) (*league.Settings, error)
	SaveBonusItems(ctx context.Context, viewer access.Viewer, accessCode string, items []string, dryRun bool) (*league.Settings, error)
	ReplaceRoster(ctx context.Context, viewer access.Viewer, accessCode, raw string, dryRun bool) ([]league.Team, error)
	Export(ctx context.Context, viewer access.Viewer, accessCode string) (*Export, error)
	AnnounceStandings(ctx context.Context, viewer access.Viewer, accessCode string, dryRun bool) error
}
