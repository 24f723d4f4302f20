package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/userhub/dashboard-api/internal/core/ports"
)

const userinfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// GoogleProvider implements ports.OAuthProvider against Google's OAuth2
// endpoints. Scopes are limited to profile and email.
type GoogleProvider struct {
	oauth *oauth2.Config
}

func NewGoogleProvider(clientID, clientSecret, callbackURL string) *GoogleProvider {
	return &GoogleProvider{
		oauth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  callbackURL,
			Scopes:       []string{"profile", "email"},
			Endpoint:     google.Endpoint,
		},
	}
}

func (p *GoogleProvider) AuthURL(state string) string {
	return p.oauth.AuthCodeURL(state)
}

type googleUserinfo struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// Exchange trades the callback code for an access token and fetches the
// userinfo profile with it.
func (p *GoogleProvider) Exchange(ctx context.Context, code string) (ports.OAuthProfile, error) {
	token, err := p.oauth.Exchange(ctx, code)
	if err != nil {
		return ports.OAuthProfile{}, fmt.Errorf("oauth exchange: %w", err)
	}

	resp, err := p.oauth.Client(ctx, token).Get(userinfoURL)
	if err != nil {
		return ports.OAuthProfile{}, fmt.Errorf("oauth userinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ports.OAuthProfile{}, fmt.Errorf("oauth userinfo: unexpected status %d", resp.StatusCode)
	}

	var info googleUserinfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return ports.OAuthProfile{}, fmt.Errorf("oauth userinfo decode: %w", err)
	}

	return ports.OAuthProfile{
		ProviderID: info.ID,
		Email:      info.Email,
		Name:       info.Name,
		Picture:    info.Picture,
	}, nil
}
