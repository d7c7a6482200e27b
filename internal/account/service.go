package account

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/class-league/internal/database"
	"github.com/mauv0809/class-league/internal/email"
	"github.com/mauv0809/class-league/internal/league"
	"github.com/mauv0809/class-league/internal/store"
)

// New creates an account Service. New owners get default league settings in leagues.
func New(db *database.DB, leagues store.LeagueStore, mailer email.Sender) Service {
	return &service{
		db:      db,
		leagues: leagues,
		mailer:  mailer,
		now:     time.Now,
	}
}

// SignUp creates an owner account and seeds its league settings.
func (s *service) SignUp(ctx context.Context, username, password string) (*Account, error) {
	addr := NormalizeUsername(username)
	if addr == "" {
		return nil, ErrUsernameRequired
	}
	if len(password) < MinPasswordLength {
		return nil, ErrWeakPassword
	}

	hash, err := hashSecret(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.accountByEmail(ctx, addr); err == nil {
		return nil, ErrAccountExists
	} else if !errors.Is(err, ErrInvalidCredentials) {
		return nil, err
	}

	acc := &Account{ID: uuid.NewString(), Email: addr, CreatedAt: s.now().UTC().Truncate(time.Second)}
	_, err = s.db.ExecContext(ctx, s.db.Rebind(`
		INSERT INTO accounts (id, email, password_hash, created_at) VALUES (?, ?, ?, ?)`),
		acc.ID, acc.Email, hash, acc.CreatedAt.Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to insert account: %w", err)
	}

	if err := s.leagues.SaveSettings(ctx, league.DefaultSettings(acc.ID)); err != nil {
		return nil, fmt.Errorf("failed to create default settings: %w", err)
	}

	log.Info("Account created", "account", acc.ID, "internal", IsInternal(addr))
	return acc, nil
}

// SignIn checks the credentials and opens a new session.
func (s *service) SignIn(ctx context.Context, username, password string) (*Session, error) {
	addr := NormalizeUsername(username)
	if addr == "" {
		return nil, ErrInvalidCredentials
	}

	var id, hash string
	err := s.db.QueryRowContext(ctx, s.db.Rebind(`SELECT id, password_hash FROM accounts WHERE email = ?`), addr).Scan(&id, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query account: %w", err)
	}
	if !verifySecret(hash, password) {
		return nil, ErrInvalidCredentials
	}

	token, err := newSessionToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session token: %w", err)
	}
	session := &Session{Token: token, AccountID: id, ExpiresAt: s.now().Add(SessionTTL).UTC()}

	now := s.now().Unix()
	if _, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM sessions WHERE expires_at <= ?`), now); err != nil {
		log.Warn("Failed to purge expired sessions", "error", err)
	}
	_, err = s.db.ExecContext(ctx, s.db.Rebind(`
		INSERT INTO sessions (token, account_id, expires_at) VALUES (?, ?, ?)`),
		session.Token, session.AccountID, session.ExpiresAt.Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to insert session: %w", err)
	}

	log.Info("Account signed in", "account", id)
	return session, nil
}

// SignOut ends the session. Unknown tokens are ignored.
func (s *service) SignOut(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if _, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM sessions WHERE token = ?`), token); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Authenticate resolves a session token to its account.
func (s *service) Authenticate(ctx context.Context, token string) (*Account, error) {
	if token == "" {
		return nil, ErrInvalidSession
	}

	var (
		acc       Account
		createdAt int64
		expiresAt int64
	)
	err := s.db.QueryRowContext(ctx, s.db.Rebind(`
		SELECT a.id, a.email, a.created_at, s.expires_at
		FROM sessions s JOIN accounts a ON a.id = s.account_id
		WHERE s.token = ?`), token).Scan(&acc.ID, &acc.Email, &createdAt, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInvalidSession
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query session: %w", err)
	}
	if expiresAt <= s.now().Unix() {
		return nil, ErrInvalidSession
	}
	acc.CreatedAt = time.Unix(createdAt, 0).UTC()
	return &acc, nil
}

// RequestPasswordReset emails a one-time code to the account owner.
// Unknown addresses succeed silently so that accounts cannot be probed.
func (s *service) RequestPasswordReset(ctx context.Context, username string) error {
	addr := NormalizeUsername(username)
	if addr == "" {
		return ErrUsernameRequired
	}
	if IsInternal(addr) {
		return ErrManualResetRequired
	}

	acc, err := s.accountByEmail(ctx, addr)
	if errors.Is(err, ErrInvalidCredentials) {
		log.Info("Password reset requested for unknown account")
		return nil
	}
	if err != nil {
		return err
	}

	code, err := newResetCode()
	if err != nil {
		return fmt.Errorf("failed to generate reset code: %w", err)
	}
	hash, err := hashSecret(code)
	if err != nil {
		return fmt.Errorf("failed to hash reset code: %w", err)
	}

	_, err = s.db.ExecContext(ctx, s.db.Rebind(`
		INSERT INTO reset_codes (account_id, code_hash, expires_at) VALUES (?, ?, ?)
		ON CONFLICT(account_id) DO UPDATE SET code_hash = excluded.code_hash, expires_at = excluded.expires_at`),
		acc.ID, hash, s.now().Add(ResetCodeTTL).Unix())
	if err != nil {
		return fmt.Errorf("failed to store reset code: %w", err)
	}

	body := fmt.Sprintf("Your class league password reset code is %s. It expires in %d minutes.", code, int(ResetCodeTTL.Minutes()))
	if err := s.mailer.Send(ctx, acc.Email, "Class league password reset", body); err != nil {
		return fmt.Errorf("failed to send reset code: %w", err)
	}
	log.Info("Password reset code sent", "account", acc.ID)
	return nil
}

// VerifyOTP checks a reset code and replaces the password. The code is consumed
// and all sessions of the account are revoked.
func (s *service) VerifyOTP(ctx context.Context, addr, code, newPassword string) error {
	addr = NormalizeUsername(addr)
	code = strings.TrimSpace(code)
	if len(newPassword) < MinPasswordLength {
		return ErrWeakPassword
	}

	acc, err := s.accountByEmail(ctx, addr)
	if errors.Is(err, ErrInvalidCredentials) {
		return ErrInvalidCode
	}
	if err != nil {
		return err
	}

	var (
		hash      string
		expiresAt int64
	)
	err = s.db.QueryRowContext(ctx, s.db.Rebind(`SELECT code_hash, expires_at FROM reset_codes WHERE account_id = ?`), acc.ID).Scan(&hash, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrInvalidCode
	}
	if err != nil {
		return fmt.Errorf("failed to query reset code: %w", err)
	}
	if expiresAt <= s.now().Unix() || !verifySecret(hash, code) {
		return ErrInvalidCode
	}

	passwordHash, err := hashSecret(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	err = s.db.RunInTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, s.db.Rebind(`UPDATE accounts SET password_hash = ? WHERE id = ?`), passwordHash, acc.ID); err != nil {
			return fmt.Errorf("failed to update password: %w", err)
		}
		if _, err := tx.ExecContext(ctx, s.db.Rebind(`DELETE FROM reset_codes WHERE account_id = ?`), acc.ID); err != nil {
			return fmt.Errorf("failed to consume reset code: %w", err)
		}
		if _, err := tx.ExecContext(ctx, s.db.Rebind(`DELETE FROM sessions WHERE account_id = ?`), acc.ID); err != nil {
			return fmt.Errorf("failed to revoke sessions: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	log.Info("Password reset completed", "account", acc.ID)
	return nil
}

func (s *service) accountByEmail(ctx context.Context, addr string) (*Account, error) {
	var (
		acc       Account
		createdAt int64
	)
	err := s.db.QueryRowContext(ctx, s.db.Rebind(`SELECT id, email, created_at FROM accounts WHERE email = ?`), addr).Scan(&acc.ID, &acc.Email, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query account: %w", err)
	}
	acc.CreatedAt = time.Unix(createdAt, 0).UTC()
	return &acc, nil
}
