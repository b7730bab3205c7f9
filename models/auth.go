package models

// OtpChallenge is the live verification state for one email address.
// Stored in Redis under "otp:<email>" with a 5 minute TTL; at most one
// challenge exists per address since re-initiation overwrites the key.
type OtpChallenge struct {
	Code     string `json:"code"`
	Attempts int    `json:"attempts"`
}
