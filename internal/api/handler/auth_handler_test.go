package handler

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/userhub/dashboard-api/internal/core/domain"
	"github.com/userhub/dashboard-api/internal/core/ports"
	"github.com/userhub/dashboard-api/internal/infrastructure/oauth"
)

type stubOAuthProvider struct {
	profile ports.OAuthProfile
	err     error
}

func (p *stubOAuthProvider) AuthURL(state string) string {
	return "https://accounts.google.test/o/oauth2/auth?state=" + url.QueryEscape(state)
}

func (p *stubOAuthProvider) Exchange(context.Context, string) (ports.OAuthProfile, error) {
	return p.profile, p.err
}

type stubAuthService struct {
	pair ports.TokenPair
	user *domain.User
	err  error
}

func (s *stubAuthService) Login(context.Context, string, string, ports.RequestMeta) (ports.TokenPair, *domain.User, error) {
	return s.pair, s.user, s.err
}

func (s *stubAuthService) Refresh(context.Context, string) (string, error) {
	return s.pair.AccessToken, s.err
}

func (s *stubAuthService) Logout(context.Context, ports.Claims, ports.RequestMeta) {}

func (s *stubAuthService) ChangePassword(context.Context, ports.Claims, string, string, ports.RequestMeta) error {
	return s.err
}

func (s *stubAuthService) SetPassword(context.Context, ports.Claims, string, ports.RequestMeta) error {
	return s.err
}

func (s *stubAuthService) ForgotPassword(context.Context, string) error {
	return s.err
}

func (s *stubAuthService) ResetPassword(context.Context, string, string, string, ports.RequestMeta) error {
	return s.err
}

func (s *stubAuthService) FederatedLogin(context.Context, ports.OAuthProfile, ports.RequestMeta) (ports.TokenPair, *domain.User, error) {
	return s.pair, s.user, s.err
}

func newGoogleHandler(svc ports.AuthService) (*AuthHandler, *oauth.StateCodec) {
	state := oauth.NewStateCodec("session-secret")
	cookies := CookieManager{AccessTTL: time.Hour, RefreshTTL: time.Hour}
	h := NewAuthHandler(svc, nil, &stubOAuthProvider{
		profile: ports.OAuthProfile{ProviderID: "g-1", Email: "alice@example.com", Name: "Alice"},
	}, state, cookies, "https://app.example.com")
	return h, state
}

func TestAuthHandler_GoogleRedirect_SignsRedirectIntoState(t *testing.T) {
	h, codec := newGoogleHandler(&stubAuthService{})

	c, rec := newJSONContext(t, http.MethodGet, "/api/v1/auth/google?redirect=/settings", "")
	if err := h.GoogleRedirect(c); err != nil {
		t.Fatalf("GoogleRedirect returned error: %v", err)
	}
	if rec.Code != http.StatusTemporaryRedirect {
		t.Fatalf("expected 307, got %d", rec.Code)
	}

	location, err := url.Parse(rec.Header().Get("Location"))
	if err != nil {
		t.Fatalf("bad Location header: %v", err)
	}
	if location.Host != "accounts.google.test" {
		t.Fatalf("not redirected to provider: %s", location)
	}
	redirect, err := codec.Decode(location.Query().Get("state"))
	if err != nil {
		t.Fatalf("state does not verify: %v", err)
	}
	if redirect != "/settings" {
		t.Fatalf("redirect path mangled: %q", redirect)
	}
}

func TestAuthHandler_GoogleRedirect_DefaultsToRoot(t *testing.T) {
	h, codec := newGoogleHandler(&stubAuthService{})

	c, rec := newJSONContext(t, http.MethodGet, "/api/v1/auth/google", "")
	if err := h.GoogleRedirect(c); err != nil {
		t.Fatalf("GoogleRedirect returned error: %v", err)
	}

	location, _ := url.Parse(rec.Header().Get("Location"))
	redirect, err := codec.Decode(location.Query().Get("state"))
	if err != nil {
		t.Fatalf("state does not verify: %v", err)
	}
	if redirect != "/" {
		t.Fatalf("expected default redirect /, got %q", redirect)
	}
}

func TestAuthHandler_GoogleCallback_SetsCookiesAndRedirects(t *testing.T) {
	svc := &stubAuthService{
		pair: ports.TokenPair{AccessToken: "acc", RefreshToken: "ref"},
		user: &domain.User{ID: "id-1", Email: "alice@example.com"},
	}
	h, codec := newGoogleHandler(svc)

	state := codec.Encode("/settings")
	c, rec := newJSONContext(t, http.MethodGet,
		"/api/v1/auth/google/callback?code=abc&state="+url.QueryEscape(state), "")
	if err := h.GoogleCallback(c); err != nil {
		t.Fatalf("GoogleCallback returned error: %v", err)
	}
	if rec.Code != http.StatusTemporaryRedirect {
		t.Fatalf("expected 307, got %d", rec.Code)
	}
	if got := rec.Header().Get("Location"); got != "https://app.example.com/settings" {
		t.Fatalf("unexpected redirect target: %s", got)
	}

	cookies := rec.Result().Cookies()
	found := map[string]string{}
	for _, ck := range cookies {
		found[ck.Name] = ck.Value
	}
	if found["accessToken"] != "acc" || found["refreshToken"] != "ref" {
		t.Fatalf("auth cookies not set: %v", found)
	}
}

func TestAuthHandler_GoogleCallback_TamperedStateBouncesToLogin(t *testing.T) {
	h, codec := newGoogleHandler(&stubAuthService{})

	state := codec.Encode("/settings")
	c, rec := newJSONContext(t, http.MethodGet,
		"/api/v1/auth/google/callback?code=abc&state="+url.QueryEscape(state+"x"), "")
	if err := h.GoogleCallback(c); err != nil {
		t.Fatalf("GoogleCallback returned error: %v", err)
	}

	location := rec.Header().Get("Location")
	if !strings.HasPrefix(location, "https://app.example.com/login?error=") {
		t.Fatalf("expected login error redirect, got %s", location)
	}
}

func TestAuthHandler_GoogleCallback_MissingCode(t *testing.T) {
	h, _ := newGoogleHandler(&stubAuthService{})

	c, rec := newJSONContext(t, http.MethodGet, "/api/v1/auth/google/callback", "")
	if err := h.GoogleCallback(c); err != nil {
		t.Fatalf("GoogleCallback returned error: %v", err)
	}
	if !strings.HasPrefix(rec.Header().Get("Location"), "https://app.example.com/login?error=") {
		t.Fatalf("expected login error redirect, got %s", rec.Header().Get("Location"))
	}
}
