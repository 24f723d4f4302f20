package ports

import (
	"context"

	"github.com/userhub/dashboard-api/internal/core/domain"
)

// RequestMeta carries the caller-facing facts of a request that the
// activity log records: remote IP and user agent.
type RequestMeta struct {
	IP        string
	UserAgent string
}

// TokenPair is an access/refresh token couple issued on login.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// AuthService implements the credential and token lifecycle.
type AuthService interface {
	// Login authenticates email+password and issues a token pair. The
	// account must be verified and active.
	Login(ctx context.Context, email, password string, meta RequestMeta) (TokenPair, *domain.User, error)
	// Refresh verifies a refresh token, re-checks account state, and
	// issues a fresh access token.
	Refresh(ctx context.Context, refreshToken string) (string, error)
	Logout(ctx context.Context, claims Claims, meta RequestMeta)
	// ChangePassword verifies the old password before storing a new hash;
	// on mismatch the stored hash is left untouched.
	ChangePassword(ctx context.Context, claims Claims, oldPassword, newPassword string, meta RequestMeta) error
	// SetPassword adds a local credential to a federated-only account.
	SetPassword(ctx context.Context, claims Claims, password string, meta RequestMeta) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, userID, token, newPassword string, meta RequestMeta) error
	// FederatedLogin finds or creates the account for a verified OAuth
	// profile and issues a token pair.
	FederatedLogin(ctx context.Context, profile OAuthProfile, meta RequestMeta) (TokenPair, *domain.User, error)
}
