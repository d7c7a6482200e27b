package account

import "context"

// Service manages owner accounts, their sessions and password resets.
type Service interface {
	SignUp(ctx context.Context, username, password string) (*Account, error)
	SignIn(ctx context.Context, username, password string) (*Session, error)
	SignOut(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (*Account, error)
	RequestPasswordReset(ctx context.Context, username string) error
	VerifyOTP(ctx context.Context, email, code, newPassword string) error
}
