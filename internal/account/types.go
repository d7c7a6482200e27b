package account

import (
	"errors"
	"sync"
	"time"

	"github.com/mauv0809/class-league/internal/database"
	"github.com/mauv0809/class-league/internal/email"
	"github.com/mauv0809/class-league/internal/store"
)

const (
	// InternalDomain is appended to usernames that are not email addresses.
	InternalDomain = "classleague.internal"

	SessionTTL        = 8 * time.Hour
	ResetCodeTTL      = 15 * time.Minute
	MinPasswordLength = 6

	sessionTokenBytes = 32
)

var (
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrAccountExists       = errors.New("account already exists")
	ErrInvalidCode         = errors.New("invalid or expired code")
	ErrManualResetRequired = errors.New("username accounts cannot reset their password automatically, ask the administrator")
	ErrInvalidSession      = errors.New("invalid or expired session")
	ErrWeakPassword        = errors.New("password is too short")
	ErrUsernameRequired    = errors.New("username is required")
)

// Account is a league owner.
type Account struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Session is an authenticated owner session.
type Session struct {
	Token     string    `json:"token"`
	AccountID string    `json:"account_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

type service struct {
	db      *database.DB
	leagues store.LeagueStore
	mailer  email.Sender
	now     func() time.Time
	mu      sync.Mutex
}
