package store

import (
	"errors"
	"sync"

	"github.com/mauv0809/class-league/internal/database"
)

// ErrNotFound is returned when a requested row does not exist for the owner.
var ErrNotFound = errors.New("not found")

type store struct {
	db *database.DB
	mu sync.RWMutex
}
