package ports

import (
	"context"

	"github.com/userhub/dashboard-api/internal/core/domain"
)

// UserUpdate carries the mutable fields of a user. Nil pointers mean
// "leave unchanged". Email and password are intentionally absent: email
// is immutable and password changes go through dedicated operations.
type UserUpdate struct {
	Name       *string
	Picture    *string
	Role       *string
	Status     *string
	IsVerified *bool
}

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// Update applies the non-nil fields of upd and returns the new state.
	Update(ctx context.Context, id string, upd UserUpdate) (*domain.User, error)
	// SetPassword replaces the stored hash; when provider is non-nil it is
	// appended to the user's auth providers in the same update.
	SetPassword(ctx context.Context, id, hash string, provider *domain.AuthProvider) error
	// MarkVerified sets the verification flag for the account with email.
	MarkVerified(ctx context.Context, email string) error
	// List returns a page of users matching q plus the total count under
	// the same filter predicate, pre-pagination.
	List(ctx context.Context, q domain.ListQuery) ([]*domain.User, int64, error)
}
