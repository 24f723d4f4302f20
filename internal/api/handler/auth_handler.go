package handler

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/userhub/dashboard-api/internal/api/metrics"
	"github.com/userhub/dashboard-api/internal/api/middleware"
	"github.com/userhub/dashboard-api/internal/core/domain"
	"github.com/userhub/dashboard-api/internal/core/ports"
	"github.com/userhub/dashboard-api/internal/infrastructure/oauth"
)

type AuthHandler struct {
	auth        ports.AuthService
	tokens      ports.TokenService
	oauth       ports.OAuthProvider
	state       *oauth.StateCodec
	cookies     CookieManager
	frontendURL string
}

func NewAuthHandler(auth ports.AuthService, tokens ports.TokenService, provider ports.OAuthProvider, state *oauth.StateCodec, cookies CookieManager, frontendURL string) *AuthHandler {
	return &AuthHandler{
		auth:        auth,
		tokens:      tokens,
		oauth:       provider,
		state:       state,
		cookies:     cookies,
		frontendURL: strings.TrimRight(frontendURL, "/"),
	}
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return domain.NewError(domain.KindBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	pair, user, err := h.auth.Login(c.Request().Context(), req.Email, req.Password, requestMeta(c))
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("credentials", "failure").Inc()
		return err
	}
	metrics.LoginsTotal.WithLabelValues("credentials", "success").Inc()

	h.cookies.SetAuthCookies(c, pair)
	return respond(c, http.StatusOK, "Login successful", loginResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         user,
	})
}

func (h *AuthHandler) Refresh(c echo.Context) error {
	token := ""
	if cookie, err := c.Cookie(refreshCookie); err == nil {
		token = cookie.Value
	}
	if token == "" {
		return domain.NewError(domain.KindBadRequest, "no refresh token received from cookies")
	}

	access, err := h.auth.Refresh(c.Request().Context(), token)
	if err != nil {
		return err
	}

	h.cookies.SetAuthCookies(c, ports.TokenPair{AccessToken: access})
	return respond(c, http.StatusOK, "Access token refreshed successfully", refreshResponse{AccessToken: access})
}

// Logout is reachable without the auth middleware so that a client with an
// expired access token can still clear its cookies. The activity entry is
// recorded only when the token still verifies.
func (h *AuthHandler) Logout(c echo.Context) error {
	if token := bearerOrCookie(c); token != "" {
		if claims, err := h.tokens.Verify(token, ports.PurposeAccess); err == nil {
			h.auth.Logout(c.Request().Context(), claims, requestMeta(c))
		}
	}

	h.cookies.ClearAuthCookies(c)
	return respond(c, http.StatusOK, "Logged out successfully", nil)
}

func (h *AuthHandler) ChangePassword(c echo.Context) error {
	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return domain.NewError(domain.KindBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	claims, err := middleware.ClaimsFrom(c)
	if err != nil {
		return err
	}
	if err := h.auth.ChangePassword(c.Request().Context(), claims, req.OldPassword, req.NewPassword, requestMeta(c)); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Password changed successfully", nil)
}

func (h *AuthHandler) SetPassword(c echo.Context) error {
	var req setPasswordRequest
	if err := c.Bind(&req); err != nil {
		return domain.NewError(domain.KindBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	claims, err := middleware.ClaimsFrom(c)
	if err != nil {
		return err
	}
	if err := h.auth.SetPassword(c.Request().Context(), claims, req.Password, requestMeta(c)); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Password set successfully", nil)
}

func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return domain.NewError(domain.KindBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.auth.ForgotPassword(c.Request().Context(), req.Email); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Password reset email sent", nil)
}

func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return domain.NewError(domain.KindBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.auth.ResetPassword(c.Request().Context(), req.UserID, req.Token, req.NewPassword, requestMeta(c)); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Password reset successfully", nil)
}

// GoogleRedirect sends the browser to the Google consent screen. The
// post-login destination travels through the signed OAuth state.
func (h *AuthHandler) GoogleRedirect(c echo.Context) error {
	redirect := c.QueryParam("redirect")
	if redirect == "" {
		redirect = "/"
	}
	state := h.state.Encode(redirect)
	return c.Redirect(http.StatusTemporaryRedirect, h.oauth.AuthURL(state))
}

func (h *AuthHandler) GoogleCallback(c echo.Context) error {
	code := c.QueryParam("code")
	if code == "" {
		return c.Redirect(http.StatusTemporaryRedirect, h.loginErrorURL("missing authorization code"))
	}

	redirect := "/"
	if state := c.QueryParam("state"); state != "" {
		path, err := h.state.Decode(state)
		if err != nil {
			return c.Redirect(http.StatusTemporaryRedirect, h.loginErrorURL("invalid state"))
		}
		redirect = path
	}

	profile, err := h.oauth.Exchange(c.Request().Context(), code)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("google", "failure").Inc()
		return c.Redirect(http.StatusTemporaryRedirect, h.loginErrorURL("google sign-in failed"))
	}

	pair, _, err := h.auth.FederatedLogin(c.Request().Context(), profile, requestMeta(c))
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("google", "failure").Inc()
		return c.Redirect(http.StatusTemporaryRedirect, h.loginErrorURL(err.Error()))
	}
	metrics.LoginsTotal.WithLabelValues("google", "success").Inc()

	h.cookies.SetAuthCookies(c, pair)
	return c.Redirect(http.StatusTemporaryRedirect, h.frontendURL+"/"+strings.TrimPrefix(redirect, "/"))
}

func (h *AuthHandler) loginErrorURL(reason string) string {
	return h.frontendURL + "/login?error=" + url.QueryEscape(reason)
}

func bearerOrCookie(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header != "" {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	if cookie, err := c.Cookie(accessCookie); err == nil {
		return cookie.Value
	}
	return ""
}
