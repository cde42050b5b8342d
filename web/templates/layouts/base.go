// Package layouts holds the page shells that wrap every rendered page.
package layouts

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/univ-lehavre/talent-finder-sub000/internal/view"
	"github.com/univ-lehavre/talent-finder-sub000/web/templates/components"
)

const htmxSrc = "https://unpkg.com/htmx.org@2.0.4"

// CalculateTitle appends the application name to a page title.
func CalculateTitle(page view.Page) string {
	app := page.T("app.name")
	if page.Title != "" && page.Title != app {
		return page.Title + " - " + app
	}
	return app
}

// Base wraps content in the document shared by every page: theme variables,
// navigation, flash messages and footer.
func Base(page view.Page, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return document(ctx, page, content).Render(w)
	})
}

func document(ctx context.Context, page view.Page, content templ.Component) g.Node {
	return h.Doctype(
		h.HTML(
			h.Lang(string(page.Locale)),
			h.Data("theme", string(page.Theme.Name)),
			h.Head(
				h.Meta(h.Charset("utf-8")),
				h.Meta(h.Name("viewport"), h.Content("width=device-width, initial-scale=1")),
				h.TitleEl(g.Text(CalculateTitle(page))),
				h.StyleEl(g.Raw(page.Theme.CSSVariables())),
				h.Link(h.Rel("stylesheet"), h.Href("/static/app.css")),
				h.Script(h.Src(htmxSrc), h.Defer()),
			),
			h.Body(
				components.Nav(page),
				h.Main(
					h.Class("container"),
					components.Flash(page.Flash),
					view.AdaptTemplToGomponent(ctx, content),
				),
				h.Footer(
					h.Class("container muted"),
					g.Text(page.T("app.name")+" · "+page.T("app.tagline")),
				),
			),
		),
	)
}

// Render writes content wrapped in Base as the response.
func Render(c echo.Context, status int, page view.Page, content g.Node) error {
	return view.Render(c, status, Base(page, view.AdaptGomponentToTempl(content)))
}
