package classroom

import (
	"context"
	"sync"

	"github.com/mauv0809/class-league/internal/access"
	"github.com/mauv0809/class-league/internal/league"
)

// Mock is a mock implementation of the Service interface for testing.
// Unset spies return zero values and no error.
type Mock struct {
	mu sync.Mutex

	// Spies
	SnapshotFunc          func(ctx context.Context, ownerID string) (*Snapshot, error)
	LeagueFunc            func(ctx context.Context, viewer access.Viewer) (*LeagueView, error)
	StandingsFunc         func(ctx context.Context, viewer access.Viewer) ([]league.Standing, error)
	TeamHistoryFunc       func(ctx context.Context, viewer access.Viewer, teamID string) (*league.Standing, error)
	SearchHistoryFunc     func(ctx context.Context, viewer access.Viewer, term string) ([]league.HistoryEntry, error)
	RecordMatchFunc       func(ctx context.Context, viewer access.Viewer, in league.MatchInput, dryRun bool) (*league.Match, error)
	EditMatchFunc         func(ctx context.Context, viewer access.Viewer, matchID string, in league.MatchInput, dryRun bool) (*league.Match, error)
	DeleteMatchFunc       func(ctx context.Context, viewer access.Viewer, matchID, accessCode string, dryRun bool) error
	UnlockFunc            func(ctx context.Context, viewer access.Viewer, accessCode string) error
	SaveSettingsFunc      func(ctx context.Context, viewer access.Viewer, accessCode string, in SettingsInput, dryRun bool) (*league.Settings, error)
	SaveBonusItemsFunc    func(ctx context.Context, viewer access.Viewer, accessCode string, items []string, dryRun bool) (*league.Settings, error)
	ReplaceRosterFunc     func(ctx context.Context, viewer access.Viewer, accessCode, raw string, dryRun bool) ([]league.Team, error)
	ExportFunc            func(ctx context.Context, viewer access.Viewer, accessCode string) (*Export, error)
	AnnounceStandingsFunc func(ctx context.Context, viewer access.Viewer, accessCode string, dryRun bool) error

	// Call records
	Viewers []access.Viewer
}

var _ Service = (*Mock)(nil)

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Viewers = nil
}

func (m *Mock) record(viewer access.Viewer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Viewers = append(m.Viewers, viewer)
}

func (m *Mock) Snapshot(ctx context.Context, ownerID string) (*Snapshot, error) {
	if m.SnapshotFunc != nil {
		return m.SnapshotFunc(ctx, ownerID)
	}
	return &Snapshot{Settings: league.DefaultSettings(ownerID)}, nil
}

func (m *Mock) League(ctx context.Context, viewer access.Viewer) (*LeagueView, error) {
	m.record(viewer)
	if m.LeagueFunc != nil {
		return m.LeagueFunc(ctx, viewer)
	}
	return &LeagueView{Settings: league.DefaultSettings(viewer.OwnerID), Viewer: viewer}, nil
}

func (m *Mock) Standings(ctx context.Context, viewer access.Viewer) ([]league.Standing, error) {
	m.record(viewer)
	if m.StandingsFunc != nil {
		return m.StandingsFunc(ctx, viewer)
	}
	return []league.Standing{}, nil
}

func (m *Mock) TeamHistory(ctx context.Context, viewer access.Viewer, teamID string) (*league.Standing, error) {
	m.record(viewer)
	if m.TeamHistoryFunc != nil {
		return m.TeamHistoryFunc(ctx, viewer, teamID)
	}
	return nil, ErrTeamNotFound
}

func (m *Mock) SearchHistory(ctx context.Context, viewer access.Viewer, term string) ([]league.HistoryEntry, error) {
	m.record(viewer)
	if m.SearchHistoryFunc != nil {
		return m.SearchHistoryFunc(ctx, viewer, term)
	}
	return []league.HistoryEntry{}, nil
}

func (m *Mock) RecordMatch(ctx context.Context, viewer access.Viewer, in league.MatchInput, dryRun bool) (*league.Match, error) {
	m.record(viewer)
	if m.RecordMatchFunc != nil {
		return m.RecordMatchFunc(ctx, viewer, in, dryRun)
	}
	return &league.Match{ID: "match-1", OwnerID: viewer.OwnerID}, nil
}

func (m *Mock) EditMatch(ctx context.Context, viewer access.Viewer, matchID string, in league.MatchInput, dryRun bool) (*league.Match, error) {
	m.record(viewer)
	if m.EditMatchFunc != nil {
		return m.EditMatchFunc(ctx, viewer, matchID, in, dryRun)
	}
	return &league.Match{ID: matchID, OwnerID: viewer.OwnerID}, nil
}

func (m *Mock) DeleteMatch(ctx context.Context, viewer access.Viewer, matchID, accessCode string, dryRun bool) error {
	m.record(viewer)
	if m.DeleteMatchFunc != nil {
		return m.DeleteMatchFunc(ctx, viewer, matchID, accessCode, dryRun)
	}
	return nil
}

func (m *Mock) Unlock(ctx context.Context, viewer access.Viewer, accessCode string) error {
	m.record(viewer)
	if m.UnlockFunc != nil {
		return m.UnlockFunc(ctx, viewer, accessCode)
	}
	return nil
}

func (m *Mock) SaveSettings(ctx context.Context, viewer access.Viewer, accessCode string, in SettingsInput, dryRun bool) (*league.Settings, error) {
	m.record(viewer)
	if m.SaveSettingsFunc != nil {
		return m.SaveSettingsFunc(ctx, viewer, accessCode, in, dryRun)
	}
	settings := league.DefaultSettings(viewer.OwnerID)
	return &settings, nil
}

func (m *Mock) SaveBonusItems(ctx context.Context, viewer access.Viewer, accessCode string, items []string, dryRun bool) (*league.Settings, error) {
	m.record(viewer)
	if m.SaveBonusItemsFunc != nil {
		return m.SaveBonusItemsFunc(ctx, viewer, accessCode, items, dryRun)
	}
	settings := league.DefaultSettings(viewer.OwnerID)
	settings.BonusItems = items
	return &settings, nil
}

func (m *Mock) ReplaceRoster(ctx context.Context, viewer access.Viewer, accessCode, raw string, dryRun bool) ([]league.Team, error) {
	m.record(viewer)
	if m.ReplaceRosterFunc != nil {
		return m.ReplaceRosterFunc(ctx, viewer, accessCode, raw, dryRun)
	}
	return []league.Team{}, nil
}

func (m *Mock) Export(ctx context.Context, viewer access.Viewer, accessCode string) (*Export, error) {
	m.record(viewer)
	if m.ExportFunc != nil {
		return m.ExportFunc(ctx, viewer, accessCode)
	}
	return &Export{FileName: "export.xlsx"}, nil
}

func (m *Mock) AnnounceStandings(ctx context.Context, viewer access.Viewer, accessCode string, dryRun bool) error {
	m.record(viewer)
	if m.AnnounceStandingsFunc != nil {
		return m.AnnounceStandingsFunc(ctx, viewer, accessCode, dryRun)
	}
	return nil
}
