package metrics

import (
	"testing"

	"github.com/mauv0809/class-league/internal/database"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a temporary in-memory SQLite database for testing.
func setupTestDB(t *testing.T) UsageStore {
	t.Helper()

	db, err := database.InitDB(database.DriverSQLite, ":memory:", "")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewUsageStore(db)
}

func TestIncrementAndGetAll(t *testing.T) {
	store := setupTestDB(t)

	// 1. Initially, there should be no counters
	counters, err := store.GetAll()
	require.NoError(t, err)
	assert.Empty(t, counters)

	// 2. Increment a new key
	store.Increment(UsageMatchesRecorded)
	counters, err = store.GetAll()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{UsageMatchesRecorded: 1}, counters)

	// 3. Increment the same key again
	store.Increment(UsageMatchesRecorded)
	counters, err = store.GetAll()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{UsageMatchesRecorded: 2}, counters)

	// 4. Increment a different key
	store.Increment(UsageExports)
	counters, err = store.GetAll()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{
		UsageMatchesRecorded: 2,
		UsageExports:         1,
	}, counters)
}

func TestServiceRegistersCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := NewService(reg)

	s.IncMatchesRecorded()
	s.IncMatchesRecorded()
	s.IncAccessCodeRejected()
	s.ObserveStandingsDuration(0.002)

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.Len(t, families, 8)

	values := make(map[string]float64)
	for _, f := range families {
		for _, m := range f.GetMetric() {
			if c := m.GetCounter(); c != nil {
				values[f.GetName()] = c.GetValue()
			}
			if h := m.GetHistogram(); h != nil {
				values[f.GetName()] = float64(h.GetSampleCount())
			}
		}
	}
	assert.Equal(t, 2.0, values["league_matches_recorded_total"])
	assert.Equal(t, 1.0, values["league_access_code_rejected_total"])
	assert.Equal(t, 0.0, values["league_matches_deleted_total"])
	assert.Equal(t, 1.0, values["league_standings_duration_seconds"])
}
