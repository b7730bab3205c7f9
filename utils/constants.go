// File: utils/constants.go
package utils

import "time"

// Redis key prefixes for gateway state.
const (
	OTPKeyPrefix    = "otp:"
	SendCountPrefix = "sends:"
	LockKeyPrefix   = "block:"
	UserDataPrefix  = "data:"
	MaintenanceKey  = "maintenance"
)

// OTPChallengeTTL is how long an issued code stays verifiable.
const OTPChallengeTTL = 5 * time.Minute

// MaxVerifyAttempts is the number of failed verifications one challenge survives.
const MaxVerifyAttempts = 3

// DailySendCap limits OTP emails per address per UTC day.
const DailySendCap = 5

// SendCountTTL expires the daily counter key.
const SendCountTTL = 24 * time.Hour

// LockoutDuration is how long an address stays locked after exhausting attempts.
const LockoutDuration = 24 * time.Hour

// SessionTTL is the lifetime of a minted session token.
const SessionTTL = 7 * 24 * time.Hour

// SessionCookieName carries the session token alongside the response body.
const SessionCookieName = "__Secure-MsToken"
