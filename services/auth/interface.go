package auth

import "context"

// AuthService drives the email OTP login flow: guarded initiation
// (lockout, daily cap, entitlement) and code verification that mints
// a session token on success.
type AuthService interface {
	InitiateLogin(ctx context.Context, email string) error
	VerifyCode(ctx context.Context, email, code string) (string, error)
}
