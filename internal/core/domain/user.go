package domain

import (
	"strings"
	"time"
)

const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

const (
	StatusActive    = "ACTIVE"
	StatusSuspended = "SUSPENDED"
)

const (
	ProviderCredentials = "credentials"
	ProviderGoogle      = "google"
)

// AuthProvider links a user to a local or federated authentication method.
type AuthProvider struct {
	Provider   string `json:"provider"`
	ProviderID string `json:"providerId"`
}

// User models an account in the system. Password is empty for accounts
// created through a federated provider that never set a local credential;
// such accounts must carry at least one non-credentials AuthProvider.
type User struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Email      string         `json:"email"`
	Password   string         `json:"-"`
	Role       string         `json:"role"`
	Status     string         `json:"status"`
	IsVerified bool           `json:"isVerified"`
	Auths      []AuthProvider `json:"auths"`
	Picture    string         `json:"picture,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}

// NormalizeEmail canonicalizes an email for storage and lookup.
// Email uniqueness is case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// HasProvider reports whether the user is linked to the named provider.
func (u *User) HasProvider(provider string) bool {
	for _, a := range u.Auths {
		if a.Provider == provider {
			return true
		}
	}
	return false
}

func ValidRole(r string) bool {
	return r == RoleAdmin || r == RoleUser
}

func ValidStatus(s string) bool {
	return s == StatusActive || s == StatusSuspended
}
