package service

import (
	"context"
	"fmt"

	"github.com/userhub/dashboard-api/internal/core/domain"
	"github.com/userhub/dashboard-api/internal/core/ports"
)

// userSearchableFields are OR-matched by the free-text search.
var userSearchableFields = []string{"name", "email"}

// userFilterFields is the allow-list of equality filters on user listings.
var userFilterFields = []string{"role", "status", "isVerified"}

type userService struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	logs   ports.ActivityLogService
}

// NewUserService returns a UserService implementation.
func NewUserService(users ports.UserRepository, hasher ports.PasswordHasher, logs ports.ActivityLogService) ports.UserService {
	return &userService{users: users, hasher: hasher, logs: logs}
}

func (s *userService) Register(ctx context.Context, in ports.RegisterInput, meta ports.RequestMeta) (*domain.User, error) {
	email := domain.NormalizeEmail(in.Email)

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrUserExists
	} else if err != domain.ErrUserNotFound {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:       in.Name,
		Email:      email,
		Password:   hash,
		Role:       domain.RoleUser,
		Status:     domain.StatusActive,
		IsVerified: false,
		Auths: []domain.AuthProvider{
			{Provider: domain.ProviderCredentials, ProviderID: email},
		},
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logs.Record(ctx, &domain.ActivityLog{
		UserID:       created.ID,
		ActivityType: domain.ActivityUserRegister,
		Description:  fmt.Sprintf("User %s registered", created.Email),
		IPAddress:    meta.IP,
		UserAgent:    meta.UserAgent,
	})
	return created, nil
}

func (s *userService) List(ctx context.Context, query map[string]string) ([]*domain.User, domain.ListMeta, error) {
	q, err := domain.ParseListQuery(query, userFilterFields)
	if err != nil {
		return nil, domain.ListMeta{}, err
	}
	users, total, err := s.users.List(ctx, q)
	if err != nil {
		return nil, domain.ListMeta{}, err
	}
	return users, q.Meta(total), nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *userService) Me(ctx context.Context, claims ports.Claims) (*domain.User, error) {
	return s.users.FindByID(ctx, claims.UserID)
}

func (s *userService) Update(ctx context.Context, id string, in ports.UpdateUserInput, actor ports.Claims, meta ports.RequestMeta) (*domain.User, error) {
	if actor.Role == domain.RoleUser && id != actor.UserID {
		return nil, domain.ErrForbidden
	}

	current, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	adminOnly := in.Role != nil || in.Status != nil || in.IsVerified != nil
	if adminOnly && actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	if in.Role != nil && !domain.ValidRole(*in.Role) {
		return nil, domain.ValidationError("invalid role",
			domain.ErrorSource{Path: "role", Message: "must be ADMIN or USER"})
	}
	if in.Status != nil && !domain.ValidStatus(*in.Status) {
		return nil, domain.ValidationError("invalid status",
			domain.ErrorSource{Path: "status", Message: "must be ACTIVE or SUSPENDED"})
	}

	updated, err := s.users.Update(ctx, id, ports.UserUpdate{
		Name:       in.Name,
		Picture:    in.Picture,
		Role:       in.Role,
		Status:     in.Status,
		IsVerified: in.IsVerified,
	})
	if err != nil {
		return nil, err
	}

	s.recordUpdate(ctx, current, updated, in, actor, meta)
	return updated, nil
}

// recordUpdate logs the most specific activity for an update: role and
// status transitions get their own types, everything else is a profile
// update.
func (s *userService) recordUpdate(ctx context.Context, before, after *domain.User, in ports.UpdateUserInput, actor ports.Claims, meta ports.RequestMeta) {
	entry := &domain.ActivityLog{
		UserID:    actor.UserID,
		IPAddress: meta.IP,
		UserAgent: meta.UserAgent,
	}
	if actor.UserID != after.ID {
		entry.TargetUserID = after.ID
	}

	switch {
	case in.Role != nil && before.Role != after.Role:
		entry.ActivityType = domain.ActivityRoleChanged
		entry.Description = fmt.Sprintf("Role of %s changed from %s to %s", after.Email, before.Role, after.Role)
		entry.Metadata = map[string]any{"from": before.Role, "to": after.Role}
	case in.Status != nil && after.Status == domain.StatusSuspended && before.Status != domain.StatusSuspended:
		entry.ActivityType = domain.ActivityUserSuspended
		entry.Description = fmt.Sprintf("User %s was suspended", after.Email)
	case in.Status != nil && after.Status == domain.StatusActive && before.Status != domain.StatusActive:
		entry.ActivityType = domain.ActivityUserActivated
		entry.Description = fmt.Sprintf("User %s was activated", after.Email)
	case in.IsVerified != nil && after.IsVerified && !before.IsVerified:
		entry.ActivityType = domain.ActivityEmailVerified
		entry.Description = fmt.Sprintf("User %s was marked verified", after.Email)
	default:
		entry.ActivityType = domain.ActivityProfileUpdated
		entry.Description = fmt.Sprintf("Profile of %s was updated", after.Email)
	}

	s.logs.Record(ctx, entry)
}
