package service

import "context"

// CodeSender delivers a second-factor code through an out-of-band channel.
// Implementations must attempt delivery before returning; the caller decides
// what a delivery failure means for the login flow.
type CodeSender interface {
	// SendCode delivers the code to the given address.
	SendCode(ctx context.Context, email, code string) error
}
