package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/userhub/dashboard-api/internal/api/metrics"
	"github.com/userhub/dashboard-api/internal/core/domain"
	"github.com/userhub/dashboard-api/internal/core/ports"
)

// claimsKey is the echo context key holding verified auth claims.
const claimsKey = "user"

// CheckAuth gates a route on a verified access token and, when roles are
// given, on the caller's role. The gate is linear: token presence →
// signature/expiry → account exists, verified, active → role. Each
// failure short-circuits to the error handler; account state wins over
// token validity, so a suspended account is rejected even with a
// structurally valid unexpired token.
func CheckAuth(users ports.UserRepository, tokens ports.TokenService, roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c)
			if token == "" {
				metrics.AuthFailuresTotal.WithLabelValues("missing_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "no token received")
			}

			claims, err := tokens.Verify(token, ports.PurposeAccess)
			if err != nil {
				metrics.AuthFailuresTotal.WithLabelValues("invalid_token").Inc()
				return domain.ErrInvalidToken
			}

			user, err := users.FindByEmail(c.Request().Context(), claims.Email)
			if err != nil {
				metrics.AuthFailuresTotal.WithLabelValues("unknown_user").Inc()
				return domain.NewError(domain.KindUnauthorized, "user does not exist")
			}
			if !user.IsVerified {
				metrics.AuthFailuresTotal.WithLabelValues("unverified").Inc()
				return domain.ErrUserNotVerified
			}
			if user.Status == domain.StatusSuspended {
				metrics.AuthFailuresTotal.WithLabelValues("suspended").Inc()
				return domain.ErrUserSuspended
			}

			if len(allowed) > 0 {
				if _, ok := allowed[claims.Role]; !ok {
					metrics.AuthFailuresTotal.WithLabelValues("forbidden").Inc()
					return domain.ErrForbidden
				}
			}

			c.Set(claimsKey, claims)
			return next(c)
		}
	}
}

// extractToken prefers the Authorization bearer header and falls back to
// the access token cookie.
func extractToken(c echo.Context) string {
	if h := c.Request().Header.Get("Authorization"); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1]
		}
		// A bare token without the Bearer prefix is accepted too.
		if len(parts) == 1 {
			return parts[0]
		}
		return ""
	}
	if cookie, err := c.Cookie("accessToken"); err == nil {
		return cookie.Value
	}
	return ""
}

// ClaimsFrom extracts the claims stored by CheckAuth.
func ClaimsFrom(c echo.Context) (ports.Claims, error) {
	claims, ok := c.Get(claimsKey).(ports.Claims)
	if !ok || claims.Email == "" {
		return ports.Claims{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return claims, nil
}
