package store_test

import (
	"context"
	"testing"

	"github.com/mauv0809/class-league/internal/database"
	"github.com/mauv0809/class-league/internal/league"
	"github.com/mauv0809/class-league/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a temporary in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (store.LeagueStore, *database.DB) {
	t.Helper()

	db, err := database.InitDB(database.DriverSQLite, ":memory:", "")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return store.New(db), db
}

func TestSettings(t *testing.T) {
	s, _ := setupTestDB(t)
	ctx := context.Background()

	_, err := s.GetSettings(ctx, "owner1")
	assert.ErrorIs(t, err, store.ErrNotFound)

	settings := league.DefaultSettings("owner1")
	require.NoError(t, s.SaveSettings(ctx, settings))

	got, err := s.GetSettings(ctx, "owner1")
	require.NoError(t, err)
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, settings.Title, got.Title)
	assert.Equal(t, "1234", got.AccessCode)
	assert.Equal(t, []string{"Manners", "Fair play"}, got.BonusItems)
	assert.Equal(t, league.LeagueTypePoints, got.LeagueType)

	got.Title = "Spring league"
	got.LeagueType = league.LeagueTypeTime
	got.Unit = "s"
	got.BonusItems = nil
	require.NoError(t, s.SaveSettings(ctx, *got))

	updated, err := s.GetSettings(ctx, "owner1")
	require.NoError(t, err)
	assert.Equal(t, got.ID, updated.ID)
	assert.Equal(t, "Spring league", updated.Title)
	assert.Equal(t, league.LeagueTypeTime, updated.LeagueType)
	assert.Equal(t, "s", updated.Unit)
	assert.Empty(t, updated.BonusItems)

	_, err = s.GetSettings(ctx, "owner2")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestReplaceTeams(t *testing.T) {
	s, _ := setupTestDB(t)
	ctx := context.Background()

	first, err := s.ReplaceTeams(ctx, "owner1", []string{"Tigers", "Eagles"})
	require.NoError(t, err)
	require.Len(t, first, 2)

	_, err = s.ReplaceTeams(ctx, "owner2", []string{"Sharks"})
	require.NoError(t, err)

	second, err := s.ReplaceTeams(ctx, "owner1", []string{"Lions", "Bears", "Wolves"})
	require.NoError(t, err)

	teams, err := s.GetTeams(ctx, "owner1")
	require.NoError(t, err)
	require.Len(t, teams, 3)
	assert.Equal(t, "Lions", teams[0].Name)
	assert.Equal(t, "Bears", teams[1].Name)
	assert.Equal(t, "Wolves", teams[2].Name)
	assert.Equal(t, second[0].ID, teams[0].ID)
	assert.NotEqual(t, first[0].ID, teams[0].ID)

	other, err := s.GetTeams(ctx, "owner2")
	require.NoError(t, err)
	require.Len(t, other, 1)
	assert.Equal(t, "Sharks", other[0].Name)
}

func TestMatchLifecycle(t *testing.T) {
	s, _ := setupTestDB(t)
	ctx := context.Background()

	older := &league.Match{OwnerID: "owner1", Date: "2024-03-01", Team1ID: "a", Team2ID: "b", Score1: 2, Score2: 1, Bonus1: []string{"Manners"}}
	newer := &league.Match{OwnerID: "owner1", Date: "2024-03-09", Team1ID: "b", Team2ID: "a", Score1: 12.5, Score2: 13, Memo: "close game"}
	require.NoError(t, s.InsertMatch(ctx, older))
	require.NoError(t, s.InsertMatch(ctx, newer))
	require.NoError(t, s.InsertMatch(ctx, &league.Match{OwnerID: "owner2", Date: "2024-03-02", Team1ID: "x", Team2ID: "y"}))
	assert.NotEmpty(t, older.ID)

	matches, err := s.GetMatches(ctx, "owner1")
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, newer.ID, matches[0].ID)
	assert.Equal(t, 12.5, matches[0].Score1)
	assert.Equal(t, "close game", matches[0].Memo)
	assert.Equal(t, []string{}, matches[0].Bonus1)
	assert.Equal(t, []string{"Manners"}, matches[1].Bonus1)

	older.Score1 = 0
	older.Memo = "corrected"
	require.NoError(t, s.UpdateMatch(ctx, older))

	got, err := s.GetMatch(ctx, "owner1", older.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got.Score1)
	assert.Equal(t, "corrected", got.Memo)

	_, err = s.GetMatch(ctx, "owner2", older.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	assert.ErrorIs(t, s.DeleteMatch(ctx, "owner2", older.ID), store.ErrNotFound)
	require.NoError(t, s.DeleteMatch(ctx, "owner1", older.ID))
	assert.ErrorIs(t, s.DeleteMatch(ctx, "owner1", older.ID), store.ErrNotFound)

	missing := &league.Match{ID: "nope", OwnerID: "owner1", Date: "2024-03-01", Team1ID: "a", Team2ID: "b"}
	assert.ErrorIs(t, s.UpdateMatch(ctx, missing), store.ErrNotFound)

	matches, err = s.GetMatches(ctx, "owner1")
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestMatchesSurviveRosterReplace(t *testing.T) {
	s, _ := setupTestDB(t)
	ctx := context.Background()

	teams, err := s.ReplaceTeams(ctx, "owner1", []string{"Tigers", "Eagles"})
	require.NoError(t, err)
	require.NoError(t, s.InsertMatch(ctx, &league.Match{OwnerID: "owner1", Date: "2024-03-01", Team1ID: teams[0].ID, Team2ID: teams[1].ID}))

	_, err = s.ReplaceTeams(ctx, "owner1", []string{"Lions"})
	require.NoError(t, err)

	matches, err := s.GetMatches(ctx, "owner1")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, teams[0].ID, matches[0].Team1ID)
}
