package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/rs/zerolog"

	"github.com/userhub/dashboard-api/internal/core/domain"
	"github.com/userhub/dashboard-api/internal/core/ports"
)

// otpTTL is the fixed lifetime of a one-time passcode.
const otpTTL = 2 * time.Minute

type otpService struct {
	users  ports.UserRepository
	store  ports.OTPStore
	mailer ports.Mailer
	logs   ports.ActivityLogService
	log    zerolog.Logger
}

// NewOTPService returns an OTPService implementation.
func NewOTPService(
	users ports.UserRepository,
	store ports.OTPStore,
	mailer ports.Mailer,
	logs ports.ActivityLogService,
	log zerolog.Logger,
) ports.OTPService {
	return &otpService{users: users, store: store, mailer: mailer, logs: logs, log: log}
}

func (s *otpService) Send(ctx context.Context, email string) error {
	email = domain.NormalizeEmail(email)

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user.IsVerified {
		return domain.ErrAlreadyVerified
	}

	code, err := generateOTP()
	if err != nil {
		return fmt.Errorf("generate otp: %w", err)
	}

	// Overwrites any live code: at most one per email.
	if err := s.store.Set(ctx, email, code, otpTTL); err != nil {
		return fmt.Errorf("store otp: %w", err)
	}

	if err := s.mailer.SendOTP(ctx, user.Email, user.Name, code); err != nil {
		return fmt.Errorf("send otp mail: %w", err)
	}

	s.log.Info().Str("email", email).Msg("otp issued")
	return nil
}

func (s *otpService) Verify(ctx context.Context, email, code string, meta ports.RequestMeta) error {
	email = domain.NormalizeEmail(email)

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user.IsVerified {
		return domain.ErrAlreadyVerified
	}

	saved, err := s.store.Get(ctx, email)
	if err != nil {
		return err
	}
	if saved != code {
		return domain.ErrOTPMismatch
	}

	if err := s.users.MarkVerified(ctx, email); err != nil {
		return err
	}
	// Consume the code so it cannot be replayed.
	if err := s.store.Del(ctx, email); err != nil {
		s.log.Warn().Err(err).Str("email", email).Msg("failed to delete consumed otp")
	}

	s.logs.Record(ctx, &domain.ActivityLog{
		UserID:       user.ID,
		ActivityType: domain.ActivityEmailVerified,
		Description:  fmt.Sprintf("User %s verified their email", user.Email),
		IPAddress:    meta.IP,
		UserAgent:    meta.UserAgent,
	})
	return nil
}

// generateOTP produces a uniformly random 6-digit numeric code.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
