package mailer

import "context"

// Mailer delivers one-time access codes to an email address.
type Mailer interface {
	SendCode(ctx context.Context, email, code string) error
}
