package ports

import "github.com/userhub/dashboard-api/internal/core/domain"

// TokenPurpose selects which secret and TTL a token is bound to. Tokens
// issued for one purpose never verify against another.
type TokenPurpose string

const (
	PurposeAccess  TokenPurpose = "access"
	PurposeRefresh TokenPurpose = "refresh"
	PurposeReset   TokenPurpose = "reset"
)

// Claims is the decoded identity payload of a verified token.
type Claims struct {
	UserID string
	Email  string
	Role   string
}

// TokenService issues and verifies signed, time-limited identity tokens.
type TokenService interface {
	Issue(user *domain.User, purpose TokenPurpose) (string, error)
	Verify(token string, purpose TokenPurpose) (Claims, error)
}
