package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/userhub/dashboard-api/internal/core/domain"
	"github.com/userhub/dashboard-api/internal/core/ports"
)

type authService struct {
	users       ports.UserRepository
	tokens      ports.TokenService
	hasher      ports.PasswordHasher
	logs        ports.ActivityLogService
	otp         ports.OTPService
	mailer      ports.Mailer
	frontendURL string
	log         zerolog.Logger
}

// NewAuthService returns an AuthService implementation.
func NewAuthService(
	users ports.UserRepository,
	tokens ports.TokenService,
	hasher ports.PasswordHasher,
	logs ports.ActivityLogService,
	otp ports.OTPService,
	mailer ports.Mailer,
	frontendURL string,
	log zerolog.Logger,
) ports.AuthService {
	return &authService{
		users:       users,
		tokens:      tokens,
		hasher:      hasher,
		logs:        logs,
		otp:         otp,
		mailer:      mailer,
		frontendURL: frontendURL,
		log:         log,
	}
}

func (s *authService) Login(ctx context.Context, email, password string, meta ports.RequestMeta) (ports.TokenPair, *domain.User, error) {
	email = domain.NormalizeEmail(email)

	user, err := s.users.FindByEmail(ctx, email)
	if err == domain.ErrUserNotFound {
		return ports.TokenPair{}, nil, domain.ErrInvalidCredentials
	} else if err != nil {
		return ports.TokenPair{}, nil, err
	}

	if !user.IsVerified {
		// Re-issue a verification code so the caller can complete signup.
		if otpErr := s.otp.Send(ctx, email); otpErr != nil {
			s.log.Warn().Err(otpErr).Str("email", email).Msg("failed to resend otp on unverified login")
		}
		return ports.TokenPair{}, nil, domain.ErrUserNotVerified
	}
	if user.Status == domain.StatusSuspended {
		return ports.TokenPair{}, nil, domain.ErrUserSuspended
	}
	if user.Password == "" && user.HasProvider(domain.ProviderGoogle) {
		return ports.TokenPair{}, nil, domain.NewError(domain.KindBadRequest,
			"account has no password; login with Google and set a password first")
	}
	if !s.hasher.Compare(password, user.Password) {
		return ports.TokenPair{}, nil, domain.ErrInvalidCredentials
	}

	pair, err := s.issuePair(user)
	if err != nil {
		return ports.TokenPair{}, nil, err
	}

	s.logs.Record(ctx, &domain.ActivityLog{
		UserID:       user.ID,
		ActivityType: domain.ActivityUserLogin,
		Description:  fmt.Sprintf("User %s logged in successfully", user.Email),
		IPAddress:    meta.IP,
		UserAgent:    meta.UserAgent,
	})
	return pair, user, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.tokens.Verify(refreshToken, ports.PurposeRefresh)
	if err != nil {
		return "", err
	}

	user, err := s.users.FindByEmail(ctx, claims.Email)
	if err == domain.ErrUserNotFound {
		return "", domain.NewError(domain.KindUnauthorized, "user does not exist")
	} else if err != nil {
		return "", err
	}
	if !user.IsVerified {
		return "", domain.ErrUserNotVerified
	}
	if user.Status != domain.StatusActive {
		return "", domain.ErrUserSuspended
	}

	return s.tokens.Issue(user, ports.PurposeAccess)
}

func (s *authService) Logout(ctx context.Context, claims ports.Claims, meta ports.RequestMeta) {
	s.logs.Record(ctx, &domain.ActivityLog{
		UserID:       claims.UserID,
		ActivityType: domain.ActivityUserLogout,
		Description:  fmt.Sprintf("User %s logged out", claims.Email),
		IPAddress:    meta.IP,
		UserAgent:    meta.UserAgent,
	})
}

func (s *authService) ChangePassword(ctx context.Context, claims ports.Claims, oldPassword, newPassword string, meta ports.RequestMeta) error {
	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		return err
	}

	// The stored hash stays untouched unless the old password verifies.
	if !s.hasher.Compare(oldPassword, user.Password) {
		return domain.ErrPasswordMismatch
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	if err := s.users.SetPassword(ctx, user.ID, hash, nil); err != nil {
		return err
	}

	s.logs.Record(ctx, &domain.ActivityLog{
		UserID:       user.ID,
		ActivityType: domain.ActivityPasswordChanged,
		Description:  fmt.Sprintf("User %s changed their password", user.Email),
		IPAddress:    meta.IP,
		UserAgent:    meta.UserAgent,
	})
	return nil
}

func (s *authService) SetPassword(ctx context.Context, claims ports.Claims, password string, meta ports.RequestMeta) error {
	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		return err
	}

	if user.Password != "" && user.HasProvider(domain.ProviderGoogle) {
		return domain.ErrPasswordAlreadySet
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}

	provider := &domain.AuthProvider{
		Provider:   domain.ProviderCredentials,
		ProviderID: user.Email,
	}
	if err := s.users.SetPassword(ctx, user.ID, hash, provider); err != nil {
		return err
	}

	s.logs.Record(ctx, &domain.ActivityLog{
		UserID:       user.ID,
		ActivityType: domain.ActivityPasswordChanged,
		Description:  fmt.Sprintf("User %s set a local password", user.Email),
		IPAddress:    meta.IP,
		UserAgent:    meta.UserAgent,
	})
	return nil
}

func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	email = domain.NormalizeEmail(email)

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if !user.IsVerified {
		return domain.NewError(domain.KindForbidden, "user is not verified")
	}
	if user.Status == domain.StatusSuspended {
		return domain.NewError(domain.KindForbidden, "user is suspended")
	}

	resetToken, err := s.tokens.Issue(user, ports.PurposeReset)
	if err != nil {
		return err
	}

	resetLink := fmt.Sprintf("%s/reset-password?userId=%s&token=%s", s.frontendURL, user.ID, resetToken)
	if err := s.mailer.SendPasswordReset(ctx, user.Email, user.Name, resetLink); err != nil {
		return fmt.Errorf("send reset mail: %w", err)
	}
	return nil
}

func (s *authService) ResetPassword(ctx context.Context, userID, token, newPassword string, meta ports.RequestMeta) error {
	claims, err := s.tokens.Verify(token, ports.PurposeReset)
	if err != nil {
		return err
	}
	if claims.UserID != userID {
		return domain.ErrForbidden
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		return err
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	if err := s.users.SetPassword(ctx, user.ID, hash, nil); err != nil {
		return err
	}

	s.logs.Record(ctx, &domain.ActivityLog{
		UserID:       user.ID,
		ActivityType: domain.ActivityPasswordReset,
		Description:  fmt.Sprintf("User %s reset their password", user.Email),
		IPAddress:    meta.IP,
		UserAgent:    meta.UserAgent,
	})
	return nil
}

func (s *authService) FederatedLogin(ctx context.Context, profile ports.OAuthProfile, meta ports.RequestMeta) (ports.TokenPair, *domain.User, error) {
	if profile.Email == "" {
		return ports.TokenPair{}, nil, domain.NewError(domain.KindUnauthorized, "no email in provider profile")
	}
	email := domain.NormalizeEmail(profile.Email)

	user, err := s.users.FindByEmail(ctx, email)
	switch {
	case err == domain.ErrUserNotFound:
		// First federated login creates a verified account with no local
		// credential; the google provider satisfies the auth invariant.
		user, err = s.users.Create(ctx, &domain.User{
			Name:       profile.Name,
			Email:      email,
			Role:       domain.RoleUser,
			Status:     domain.StatusActive,
			IsVerified: true,
			Picture:    profile.Picture,
			Auths: []domain.AuthProvider{
				{Provider: domain.ProviderGoogle, ProviderID: profile.ProviderID},
			},
		})
		if err != nil {
			return ports.TokenPair{}, nil, err
		}
		s.logs.Record(ctx, &domain.ActivityLog{
			UserID:       user.ID,
			ActivityType: domain.ActivityUserRegister,
			Description:  fmt.Sprintf("User %s registered via Google OAuth", user.Email),
			IPAddress:    meta.IP,
			UserAgent:    meta.UserAgent,
		})
	case err != nil:
		return ports.TokenPair{}, nil, err
	default:
		if !user.IsVerified {
			return ports.TokenPair{}, nil, domain.ErrUserNotVerified
		}
		if user.Status == domain.StatusSuspended {
			return ports.TokenPair{}, nil, domain.ErrUserSuspended
		}
	}

	pair, err := s.issuePair(user)
	if err != nil {
		return ports.TokenPair{}, nil, err
	}

	s.logs.Record(ctx, &domain.ActivityLog{
		UserID:       user.ID,
		ActivityType: domain.ActivityUserLogin,
		Description:  fmt.Sprintf("User %s logged in via Google OAuth", user.Email),
		IPAddress:    meta.IP,
		UserAgent:    meta.UserAgent,
	})
	return pair, user, nil
}

func (s *authService) issuePair(user *domain.User) (ports.TokenPair, error) {
	access, err := s.tokens.Issue(user, ports.PurposeAccess)
	if err != nil {
		return ports.TokenPair{}, err
	}
	refresh, err := s.tokens.Issue(user, ports.PurposeRefresh)
	if err != nil {
		return ports.TokenPair{}, err
	}
	return ports.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
