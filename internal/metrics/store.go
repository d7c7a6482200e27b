package metrics

import (
	"sync"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/class-league/internal/database"
)

// store handles usage counters in the database.
type store struct {
	db *database.DB
	mu sync.Mutex
}

// NewUsageStore creates a new UsageStore.
func NewUsageStore(db *database.DB) UsageStore {
	return &store{
		db: db,
	}
}

// Increment upserts a counter key and increments its value by one.
func (s *store) Increment(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(s.db.Rebind(`
		INSERT INTO usage_counters (name, value) VALUES (?, 1)
		ON CONFLICT(name) DO UPDATE SET value = usage_counters.value + 1`), key)
	if err != nil {
		log.Error("Failed to increment usage counter", "error", err, "key", key)
		return
	}
	log.Debug("Incremented usage counter", "key", key)
}

// GetAll returns all usage counters.
func (s *store) GetAll() (map[string]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query("SELECT name, value FROM usage_counters")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counters := make(map[string]int)
	for rows.Next() {
		var key string
		var value int
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		counters[key] = value
	}
	return counters, rows.Err()
}
