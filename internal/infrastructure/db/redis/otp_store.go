package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/userhub/dashboard-api/internal/core/domain"
)

// OTPStore keeps one-time passcodes in Redis under expiring keys.
// Key format: otp:<email>. SET overwrites, so at most one code is live
// per email; expiry and consumption both surface as a missing key.
type OTPStore struct {
	client *redis.Client
}

// NewOTPStore creates an OTPStore wrapping the given Redis client.
func NewOTPStore(client *redis.Client) *OTPStore {
	return &OTPStore{client: client}
}

func (s *OTPStore) Set(ctx context.Context, email, code string, ttl time.Duration) error {
	return s.client.Set(ctx, s.key(email), code, ttl).Err()
}

func (s *OTPStore) Get(ctx context.Context, email string) (string, error) {
	code, err := s.client.Get(ctx, s.key(email)).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrOTPInvalid
	}
	if err != nil {
		return "", fmt.Errorf("otp get: %w", err)
	}
	return code, nil
}

func (s *OTPStore) Del(ctx context.Context, email string) error {
	return s.client.Del(ctx, s.key(email)).Err()
}

func (s *OTPStore) key(email string) string {
	return "otp:" + domain.NormalizeEmail(email)
}
