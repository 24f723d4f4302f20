package ports

import "context"

// OTPService issues and verifies one-time passcodes proving control of
// an email address.
type OTPService interface {
	Send(ctx context.Context, email string) error
	// Verify consumes the live code on success and marks the account
	// verified. An expired or never-issued code fails identically.
	Verify(ctx context.Context, email, code string, meta RequestMeta) error
}
