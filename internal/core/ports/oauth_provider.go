package ports

import "context"

// OAuthProfile is the subset of a federated identity the system needs.
type OAuthProfile struct {
	ProviderID string
	Email      string
	Name       string
	Picture    string
}

// OAuthProvider abstracts the federated login flow: build the redirect
// URL, then exchange the callback code for a verified profile. Provider
// internals (scopes, endpoints) stay behind this interface.
type OAuthProvider interface {
	AuthURL(state string) string
	Exchange(ctx context.Context, code string) (OAuthProfile, error)
}
