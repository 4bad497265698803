// Package mail delivers one-time codes to users over SMTP. The Mailer
// interface is the seam the services depend on; tests substitute fakes.
package mail

import "context"

// Mailer sends the two notification kinds the account lifecycle needs.
// Implementations must not log the code at a level that ships to production
// log sinks.
type Mailer interface {
	SendVerificationCode(ctx context.Context, to, code string) error
	SendPasswordReset(ctx context.Context, to, code string) error
}
