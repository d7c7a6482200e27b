package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDB_CreatesTables(t *testing.T) {
	db, err := InitDB(DriverSQLite, ":memory:", "")
	require.NoError(t, err, "InitDB should not return an error")
	defer db.Close()

	for _, table := range []string{"accounts", "sessions", "reset_codes", "settings", "teams", "matches", "usage_counters"} {
		var name string
		err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		require.NoError(t, err, "Querying for %s table should not produce an error", table)
		assert.Equal(t, table, name)
	}
}

func TestInitDB_UnsupportedDriver(t *testing.T) {
	_, err := InitDB(Driver("oracle"), "x", "")
	assert.Error(t, err)
}

func TestRebind(t *testing.T) {
	query := "SELECT * FROM matches WHERE owner_id = ? AND match_date >= ?"

	sqlite := &DB{Driver: DriverSQLite}
	assert.Equal(t, query, sqlite.Rebind(query))

	pg := &DB{Driver: DriverPostgres}
	assert.Equal(t, "SELECT * FROM matches WHERE owner_id = $1 AND match_date >= $2", pg.Rebind(query))
}

func TestRunInTx(t *testing.T) {
	db, err := InitDB(DriverSQLite, ":memory:", "")
	require.NoError(t, err)
	defer db.Close()

	insert := "INSERT INTO teams (id, owner_id, name, created_at) VALUES (?, 'owner1', ?, 0)"

	t.Run("commit", func(t *testing.T) {
		err := db.RunInTx(context.Background(), func(tx *sql.Tx) error {
			_, err := tx.Exec(insert, "t1", "Tigers")
			return err
		})
		require.NoError(t, err)

		var count int
		require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM teams").Scan(&count))
		assert.Equal(t, 1, count)
	})

	t.Run("rollback", func(t *testing.T) {
		boom := errors.New("boom")
		err := db.RunInTx(context.Background(), func(tx *sql.Tx) error {
			if _, err := tx.Exec(insert, "t2", "Eagles"); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)

		var count int
		require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM teams").Scan(&count))
		assert.Equal(t, 1, count)
	})
}
