package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/mauv0809/class-league/internal/league"
)

// MockStore is a mock implementation of the LeagueStore interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	GetSettingsFunc  func(ctx context.Context, ownerID string) (*league.Settings, error)
	SaveSettingsFunc func(ctx context.Context, settings league.Settings) error
	GetTeamsFunc     func(ctx context.Context, ownerID string) ([]league.Team, error)
	ReplaceTeamsFunc func(ctx context.Context, ownerID string, names []string) ([]league.Team, error)
	GetMatchesFunc   func(ctx context.Context, ownerID string) ([]league.Match, error)
	GetMatchFunc     func(ctx context.Context, ownerID, matchID string) (*league.Match, error)
	InsertMatchFunc  func(ctx context.Context, match *league.Match) error
	UpdateMatchFunc  func(ctx context.Context, match *league.Match) error
	DeleteMatchFunc  func(ctx context.Context, ownerID, matchID string) error

	// Call records
	SaveSettingsCalls []league.Settings
	ReplaceTeamsCalls []struct {
		OwnerID string
		Names   []string
	}
	InsertMatchCalls []league.Match
	UpdateMatchCalls []league.Match
	DeleteMatchCalls []struct {
		OwnerID string
		MatchID string
	}
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

// Reset clears all call records.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveSettingsCalls = nil
	m.ReplaceTeamsCalls = nil
	m.InsertMatchCalls = nil
	m.UpdateMatchCalls = nil
	m.DeleteMatchCalls = nil
}

func (m *MockStore) GetSettings(ctx context.Context, ownerID string) (*league.Settings, error) {
	if m.GetSettingsFunc != nil {
		return m.GetSettingsFunc(ctx, ownerID)
	}
	return nil, ErrNotFound
}

func (m *MockStore) SaveSettings(ctx context.Context, settings league.Settings) error {
	m.mu.Lock()
	m.SaveSettingsCalls = append(m.SaveSettingsCalls, settings)
	m.mu.Unlock()
	if m.SaveSettingsFunc != nil {
		return m.SaveSettingsFunc(ctx, settings)
	}
	return nil
}

func (m *MockStore) GetTeams(ctx context.Context, ownerID string) ([]league.Team, error) {
	if m.GetTeamsFunc != nil {
		return m.GetTeamsFunc(ctx, ownerID)
	}
	return []league.Team{}, nil
}

func (m *MockStore) ReplaceTeams(ctx context.Context, ownerID string, names []string) ([]league.Team, error) {
	m.mu.Lock()
	m.ReplaceTeamsCalls = append(m.ReplaceTeamsCalls, struct {
		OwnerID string
		Names   []string
	}{ownerID, names})
	m.mu.Unlock()
	if m.ReplaceTeamsFunc != nil {
		return m.ReplaceTeamsFunc(ctx, ownerID, names)
	}
	teams := make([]league.Team, 0, len(names))
	for _, name := range names {
		teams = append(teams, league.Team{ID: name, OwnerID: ownerID, Name: name})
	}
	return teams, nil
}

func (m *MockStore) GetMatches(ctx context.Context, ownerID string) ([]league.Match, error) {
	if m.GetMatchesFunc != nil {
		return m.GetMatchesFunc(ctx, ownerID)
	}
	return []league.Match{}, nil
}

func (m *MockStore) GetMatch(ctx context.Context, ownerID, matchID string) (*league.Match, error) {
	if m.GetMatchFunc != nil {
		return m.GetMatchFunc(ctx, ownerID, matchID)
	}
	return nil, ErrNotFound
}

func (m *MockStore) InsertMatch(ctx context.Context, match *league.Match) error {
	m.mu.Lock()
	if match.ID == "" {
		match.ID = fmt.Sprintf("match-%d", len(m.InsertMatchCalls)+1)
	}
	m.InsertMatchCalls = append(m.InsertMatchCalls, *match)
	m.mu.Unlock()
	if m.InsertMatchFunc != nil {
		return m.InsertMatchFunc(ctx, match)
	}
	return nil
}

func (m *MockStore) UpdateMatch(ctx context.Context, match *league.Match) error {
	m.mu.Lock()
	m.UpdateMatchCalls = append(m.UpdateMatchCalls, *match)
	m.mu.Unlock()
	if m.UpdateMatchFunc != nil {
		return m.UpdateMatchFunc(ctx, match)
	}
	return nil
}

func (m *MockStore) DeleteMatch(ctx context.Context, ownerID, matchID string) error {
	m.mu.Lock()
	m.DeleteMatchCalls = append(m.DeleteMatchCalls, struct {
		OwnerID string
		MatchID string
	}{ownerID, matchID})
	m.mu.Unlock()
	if m.DeleteMatchFunc != nil {
		return m.DeleteMatchFunc(ctx, ownerID, matchID)
	}
	return nil
}
