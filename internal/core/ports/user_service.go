package ports

import (
	"context"

	"github.com/userhub/dashboard-api/internal/core/domain"
)

// RegisterInput is the payload for self-registration.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// UpdateUserInput mirrors UserUpdate at the service boundary. Role,
// status and verification changes are admin-only; the service enforces
// that against the acting claims.
type UpdateUserInput struct {
	Name       *string
	Picture    *string
	Role       *string
	Status     *string
	IsVerified *bool
}

// UserService implements account CRUD.
type UserService interface {
	Register(ctx context.Context, in RegisterInput, meta RequestMeta) (*domain.User, error)
	// List applies the generic list query (filter/search/sort/date-range/
	// paginate) over the users collection.
	List(ctx context.Context, query map[string]string) ([]*domain.User, domain.ListMeta, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	Me(ctx context.Context, claims Claims) (*domain.User, error)
	Update(ctx context.Context, id string, in UpdateUserInput, actor Claims, meta RequestMeta) (*domain.User, error)
}
