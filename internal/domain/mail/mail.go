package mail

import "context"

// Mailer delivers a verification link to an address. Dispatch is
// fire-and-forget from the caller's point of view: a failed send is logged by
// the implementation and never fails the enclosing request.
type Mailer interface {
	SendVerificationLink(ctx context.Context, to, link string) error
}
