package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/univ-lehavre/talent-finder-sub000/internal/i18n"
	"github.com/univ-lehavre/talent-finder-sub000/internal/middleware"
	"github.com/univ-lehavre/talent-finder-sub000/internal/view"
	"github.com/univ-lehavre/talent-finder-sub000/web/templates/pages"
)

const preferenceMaxAge = 365 * 24 * time.Hour

// SettingsGet renders the preferences form (GET /settings).
func SettingsGet(c echo.Context) error {
	page := view.NewPage(c, "settings.title")
	return renderPage(c, http.StatusOK, page, pages.Settings(page))
}

// SettingsPost stores the chosen locale and theme in cookies (POST /settings).
func SettingsPost(c echo.Context) error {
	var req SettingsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid settings form")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown locale or theme")
	}

	locale := middleware.Locale(c)
	if req.Locale != "" {
		locale = i18n.Locale(req.Locale)
		c.SetCookie(preferenceCookie(c, middleware.LocaleCookieName, req.Locale))
	}
	if req.Theme != "" {
		c.SetCookie(preferenceCookie(c, middleware.ThemeCookieName, req.Theme))
	}

	view.SetFlashSuccess(c, i18n.T(locale, "settings.saved"))
	return c.Redirect(http.StatusSeeOther, "/settings")
}

func preferenceCookie(c echo.Context, name, value string) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(preferenceMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   isSecure(c),
		SameSite: http.SameSiteLaxMode,
	}
}
