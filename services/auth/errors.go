package auth

import (
	"errors"
	"fmt"
)

// ErrDailyLimit signals that the address hit its OTP send cap for the day.
var ErrDailyLimit = errors.New("daily login limit reached")

// ErrNoSubscription signals that the license provider found no valid membership.
var ErrNoSubscription = errors.New("no active subscription found")

// ErrCodeExpired signals that no live challenge exists for the address.
var ErrCodeExpired = errors.New("code expired or invalid")

// LockedError signals an active lockout created by earlier failed attempts.
type LockedError struct {
	RetryAfter string
}

func (e LockedError) Error() string {
	return "account locked due to failed attempts; retry after " + e.RetryAfter
}

// LockoutTrippedError signals that this attempt exhausted the limit and
// created a fresh lockout. The submitted code is never compared first.
type LockoutTrippedError struct{}

func (e LockoutTrippedError) Error() string {
	return "too many failed attempts; account locked"
}

// IncorrectCodeError reports a failed comparison and how many tries remain.
type IncorrectCodeError struct {
	AttemptsRemaining int
}

func (e IncorrectCodeError) Error() string {
	return fmt.Sprintf("incorrect code, %d attempts remaining", e.AttemptsRemaining)
}

// ProviderError wraps a license provider failure. Fails closed: no access
// is granted, but the client sees a system problem, not missing entitlement.
type ProviderError struct {
	Err error
}

func (e ProviderError) Error() string {
	return "license check failed: " + e.Err.Error()
}

func (e ProviderError) Unwrap() error {
	return e.Err
}

// DeliveryError wraps an email delivery failure. The stored challenge
// remains valid even though the user never received the code.
type DeliveryError struct {
	Err error
}

func (e DeliveryError) Error() string {
	return "failed to send email: " + e.Err.Error()
}

func (e DeliveryError) Unwrap() error {
	return e.Err
}
