package handlers

import (
	"github.com/labstack/echo/v4"
	g "maragu.dev/gomponents"

	"github.com/univ-lehavre/talent-finder-sub000/internal/view"
	"github.com/univ-lehavre/talent-finder-sub000/web/templates/layouts"
)

func renderPage(c echo.Context, status int, page view.Page, content g.Node) error {
	return layouts.Render(c, status, page, content)
}

func isSecure(c echo.Context) bool {
	return c.Scheme() == "https"
}
