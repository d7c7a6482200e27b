package account

import (
	"context"
	"sync"
)

// Mock is a mock implementation of the Service interface for testing.
type Mock struct {
	mu sync.Mutex

	SignUpFunc               func(ctx context.Context, username, password string) (*Account, error)
	SignInFunc               func(ctx context.Context, username, password string) (*Session, error)
	SignOutFunc              func(ctx context.Context, token string) error
	AuthenticateFunc         func(ctx context.Context, token string) (*Account, error)
	RequestPasswordResetFunc func(ctx context.Context, username string) error
	VerifyOTPFunc            func(ctx context.Context, email, code, newPassword string) error

	SignOutCalls []string
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SignOutCalls = nil
}

func (m *Mock) SignUp(ctx context.Context, username, password string) (*Account, error) {
	if m.SignUpFunc != nil {
		return m.SignUpFunc(ctx, username, password)
	}
	return &Account{ID: "owner1", Email: NormalizeUsername(username)}, nil
}

func (m *Mock) SignIn(ctx context.Context, username, password string) (*Session, error) {
	if m.SignInFunc != nil {
		return m.SignInFunc(ctx, username, password)
	}
	return nil, ErrInvalidCredentials
}

func (m *Mock) SignOut(ctx context.Context, token string) error {
	m.mu.Lock()
	m.SignOutCalls = append(m.SignOutCalls, token)
	m.mu.Unlock()
	if m.SignOutFunc != nil {
		return m.SignOutFunc(ctx, token)
	}
	return nil
}

func (m *Mock) Authenticate(ctx context.Context, token string) (*Account, error) {
	if m.AuthenticateFunc != nil {
		return m.AuthenticateFunc(ctx, token)
	}
	return nil, ErrInvalidSession
}

func (m *Mock) RequestPasswordReset(ctx context.Context, username string) error {
	if m.RequestPasswordResetFunc != nil {
		return m.RequestPasswordResetFunc(ctx, username)
	}
	return nil
}

func (m *Mock) VerifyOTP(ctx context.Context, email, code, newPassword string) error {
	if m.VerifyOTPFunc != nil {
		return m.VerifyOTPFunc(ctx, email, code, newPassword)
	}
	return nil
}
