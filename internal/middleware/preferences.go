package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/univ-lehavre/talent-finder-sub000/internal/i18n"
	"github.com/univ-lehavre/talent-finder-sub000/internal/theme"
)

const (
	// LocaleCookieName stores the chosen UI language.
	LocaleCookieName = "lang"
	// ThemeCookieName stores the chosen theme.
	ThemeCookieName = "theme"

	localeContextKey = "locale"
	themeContextKey  = "theme"
)

// Preferences resolves the UI locale and theme of each request from cookies,
// falling back to Accept-Language and the default theme.
func Preferences(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		var langCookie, themeCookie string
		if ck, err := c.Cookie(LocaleCookieName); err == nil {
			langCookie = ck.Value
		}
		if ck, err := c.Cookie(ThemeCookieName); err == nil {
			themeCookie = ck.Value
		}

		locale := i18n.Match(langCookie, c.Request().Header.Get("Accept-Language"))
		c.Set(localeContextKey, locale)
		c.Response().Header().Set("Content-Language", string(locale))

		name, ok := theme.Parse(themeCookie)
		if !ok {
			name = theme.Default
		}
		c.Set(themeContextKey, name)

		return next(c)
	}
}

// Locale returns the locale resolved for the request.
func Locale(c echo.Context) i18n.Locale {
	if l, ok := c.Get(localeContextKey).(i18n.Locale); ok {
		return l
	}
	return i18n.Default
}

// Theme returns the theme resolved for the request.
func Theme(c echo.Context) theme.Name {
	if n, ok := c.Get(themeContextKey).(theme.Name); ok {
		return n
	}
	return theme.Default
}
