package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/userhub/dashboard-api/internal/core/domain"
	"github.com/userhub/dashboard-api/internal/core/ports"
)

// envelope is the canonical success response shape.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Meta    any    `json:"meta,omitempty"`
}

// respond writes the standard success envelope.
func respond(c echo.Context, status int, message string, data any) error {
	return c.JSON(status, envelope{Success: true, Message: message, Data: data})
}

// respondList writes a success envelope with pagination metadata.
func respondList(c echo.Context, message string, data any, meta domain.ListMeta) error {
	return c.JSON(http.StatusOK, envelope{Success: true, Message: message, Data: data, Meta: meta})
}

// queryMap flattens the request query string into the flat string map
// the list query builder consumes. Repeated keys keep the first value.
func queryMap(c echo.Context) map[string]string {
	params := c.QueryParams()
	m := make(map[string]string, len(params))
	for key, values := range params {
		if len(values) > 0 {
			m[key] = values[0]
		}
	}
	return m
}

// requestMeta captures the caller-facing request facts for audit entries.
func requestMeta(c echo.Context) ports.RequestMeta {
	return ports.RequestMeta{
		IP:        c.RealIP(),
		UserAgent: c.Request().UserAgent(),
	}
}

const (
	accessCookie  = "accessToken"
	refreshCookie = "refreshToken"
)

// CookieManager writes and clears the httpOnly auth cookies. In
// production cookies are Secure with SameSite=None (cross-site
// dashboard); otherwise Lax for local development.
type CookieManager struct {
	Domain     string
	Secure     bool
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

func (m CookieManager) SetAuthCookies(c echo.Context, pair ports.TokenPair) {
	if pair.AccessToken != "" {
		c.SetCookie(m.cookie(accessCookie, pair.AccessToken, m.AccessTTL))
	}
	if pair.RefreshToken != "" {
		c.SetCookie(m.cookie(refreshCookie, pair.RefreshToken, m.RefreshTTL))
	}
}

func (m CookieManager) ClearAuthCookies(c echo.Context) {
	c.SetCookie(m.cookie(accessCookie, "", -time.Second))
	c.SetCookie(m.cookie(refreshCookie, "", -time.Second))
}

func (m CookieManager) cookie(name, value string, ttl time.Duration) *http.Cookie {
	sameSite := http.SameSiteLaxMode
	if m.Secure {
		sameSite = http.SameSiteNoneMode
	}
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   m.Domain,
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.Secure,
		SameSite: sameSite,
	}
}
