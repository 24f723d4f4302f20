package ports

import (
	"context"
	"time"
)

// OTPStore is the fast expiring key-value store holding one-time
// passcodes. At most one live code exists per email; Set overwrites.
type OTPStore interface {
	Set(ctx context.Context, email, code string, ttl time.Duration) error
	// Get returns the live code for email, or domain.ErrOTPInvalid when
	// no code exists (never issued, consumed, or expired).
	Get(ctx context.Context, email string) (string, error)
	Del(ctx context.Context, email string) error
}

// Mailer delivers transactional mail. Implementations must not be
// relied on for request outcomes beyond the operations that send mail.
type Mailer interface {
	SendOTP(ctx context.Context, to, name, code string) error
	SendPasswordReset(ctx context.Context, to, name, resetLink string) error
}

// PasswordHasher is the one-way credential hasher.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Compare(plaintext, digest string) bool
}
