// Package view holds the request-level plumbing shared by every page: flash
// messages, the page model handed to layouts, and rendering helpers.
package view

import (
	"bytes"
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	g "maragu.dev/gomponents"

	"github.com/univ-lehavre/talent-finder-sub000/internal/domain"
	"github.com/univ-lehavre/talent-finder-sub000/internal/i18n"
	"github.com/univ-lehavre/talent-finder-sub000/internal/middleware"
	"github.com/univ-lehavre/talent-finder-sub000/internal/theme"
)

// Page is what every layout needs to know about the current request.
type Page struct {
	Title  string
	Path   string
	Locale i18n.Locale
	Theme  theme.Theme
	User   *domain.User
	Flash  FlashData
}

// NewPage builds the page model for c, translating titleKey and consuming
// pending flash messages.
func NewPage(c echo.Context, titleKey string) Page {
	locale := middleware.Locale(c)
	return Page{
		Title:  i18n.T(locale, titleKey),
		Path:   c.Request().URL.Path,
		Locale: locale,
		Theme:  theme.Get(string(middleware.Theme(c))),
		User:   middleware.CurrentUser(c),
		Flash:  GetFlashData(c),
	}
}

// T translates key in the page locale.
func (p Page) T(key string, args ...any) string {
	return i18n.T(p.Locale, key, args...)
}

// SignedIn reports whether a user is signed in.
func (p Page) SignedIn() bool {
	return p.User != nil
}

// Render writes component as an HTML response. The component is rendered
// into a buffer first so a failure still yields a clean error response.
func Render(c echo.Context, status int, component templ.Component) error {
	var buf bytes.Buffer
	if err := component.Render(c.Request().Context(), &buf); err != nil {
		return err
	}
	return c.HTMLBlob(status, buf.Bytes())
}

// RenderNode writes a gomponents node as an HTML response, typically an htmx fragment.
func RenderNode(c echo.Context, status int, node g.Node) error {
	return Render(c, status, AdaptGomponentToTempl(node))
}

// IsHTMX reports whether the request was issued by htmx.
func IsHTMX(c echo.Context) bool {
	return c.Request().Header.Get("HX-Request") == "true"
}

// Redirect sends the browser to path. htmx requests get an HX-Redirect
// header instead.
func Redirect(c echo.Context, path string) error {
	if IsHTMX(c) {
		c.Response().Header().Set("HX-Redirect", path)
		return c.NoContent(http.StatusOK)
	}
	return c.Redirect(http.StatusSeeOther, path)
}
