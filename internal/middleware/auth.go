package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/univ-lehavre/talent-finder-sub000/internal/domain"
)

// UserContextKey is the echo context key holding the signed-in *domain.User.
const UserContextKey = "user"

const sessionCookieName = "auth_token"

// Authenticator resolves a session token to a user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

// LoadUser makes the signed-in user, if any, available to every handler.
// Invalid session cookies are cleared.
func LoadUser(auth Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(sessionCookieName)
			if err != nil || cookie.Value == "" {
				return next(c)
			}

			user, err := auth.Authenticate(c.Request().Context(), cookie.Value)
			if err != nil || user == nil {
				FromContext(c.Request().Context()).DebugContext(c.Request().Context(), "Discarding invalid session cookie",
					"event", "auth_cookie_invalid", "error", err)
				c.SetCookie(&http.Cookie{
					Name:     sessionCookieName,
					Value:    "",
					Path:     "/",
					MaxAge:   -1,
					HttpOnly: true,
					Secure:   c.Request().TLS != nil,
					SameSite: http.SameSiteLaxMode,
				})
				return next(c)
			}

			c.Set(UserContextKey, user)
			return next(c)
		}
	}
}

// RequireUser rejects requests without a signed-in user. Pages redirect to
// the login form; API and htmx requests get 401.
func RequireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if CurrentUser(c) != nil {
			return next(c)
		}
		if wantsJSON(c) || c.Request().Header.Get("HX-Request") == "true" {
			return echo.NewHTTPError(http.StatusUnauthorized, domain.ErrUnauthenticated.Error())
		}
		return c.Redirect(http.StatusSeeOther, "/auth/login")
	}
}

// CurrentUser returns the signed-in user or nil.
func CurrentUser(c echo.Context) *domain.User {
	user, _ := c.Get(UserContextKey).(*domain.User)
	return user
}

func wantsJSON(c echo.Context) bool {
	if strings.HasPrefix(c.Request().URL.Path, "/api/") {
		return true
	}
	return strings.Contains(c.Request().Header.Get(echo.HeaderAccept), echo.MIMEApplicationJSON)
}
