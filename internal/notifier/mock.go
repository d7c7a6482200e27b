package notifier

import (
	"sync"

	"github.com/mauv0809/class-league/internal/league"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Spies
	SendResultNotificationFunc func(settings league.Settings, result MatchResult, dryRun bool) error
	SendStandingsFunc          func(settings league.Settings, standings []league.Standing, dryRun bool) error
	FormatStandingsFunc        func(settings league.Settings, standings []league.Standing) (any, error)

	// Call records
	SendResultNotificationCalls []struct {
		Settings league.Settings
		Result   MatchResult
		DryRun   bool
	}
	SendStandingsCalls []struct {
		Settings  league.Settings
		Standings []league.Standing
		DryRun    bool
	}
}

var _ Notifier = (*Mock)(nil)

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendResultNotificationCalls = nil
	m.SendStandingsCalls = nil
}

// ResultNotifications returns the number of result notifications sent.
func (m *Mock) ResultNotifications() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.SendResultNotificationCalls)
}

func (m *Mock) SendResultNotification(settings league.Settings, result MatchResult, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendResultNotificationCalls = append(m.SendResultNotificationCalls, struct {
		Settings league.Settings
		Result   MatchResult
		DryRun   bool
	}{settings, result, dryRun})
	if m.SendResultNotificationFunc != nil {
		return m.SendResultNotificationFunc(settings, result, dryRun)
	}
	return nil
}

func (m *Mock) SendStandings(settings league.Settings, standings []league.Standing, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendStandingsCalls = append(m.SendStandingsCalls, struct {
		Settings  league.Settings
		Standings []league.Standing
		DryRun    bool
	}{settings, standings, dryRun})
	if m.SendStandingsFunc != nil {
		return m.SendStandingsFunc(settings, standings, dryRun)
	}
	return nil
}

func (m *Mock) FormatStandingsResponse(settings league.Settings, standings []league.Standing) (any, error) {
	if m.FormatStandingsFunc != nil {
		return m.FormatStandingsFunc(settings, standings)
	}
	return map[string]any{"text": settings.Title, "count": len(standings)}, nil
}
