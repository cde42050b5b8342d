package pages

import (
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/univ-lehavre/talent-finder-sub000/internal/i18n"
	"github.com/univ-lehavre/talent-finder-sub000/internal/theme"
	"github.com/univ-lehavre/talent-finder-sub000/internal/view"
)

// Settings renders the language and theme preferences form.
func Settings(page view.Page) g.Node {
	return h.Section(
		h.Class("narrow card"),
		h.H1(g.Text(page.T("settings.title"))),
		h.Form(
			h.Method("post"),
			h.Action("/settings"),
			h.Label(h.For("locale"), g.Text(page.T("settings.locale"))),
			h.Select(
				h.ID("locale"),
				h.Name("locale"),
				g.Map(i18n.Supported, func(l i18n.Locale) g.Node {
					return h.Option(h.Value(string(l)), g.If(l == page.Locale, h.Selected()), g.Text(l.DisplayName()))
				}),
			),
			h.Label(h.For("theme"), g.Text(page.T("settings.theme"))),
			h.Select(
				h.ID("theme"),
				h.Name("theme"),
				g.Map(theme.Names(), func(n theme.Name) g.Node {
					return h.Option(h.Value(string(n)), g.If(n == page.Theme.Name, h.Selected()), g.Text(page.T("theme."+string(n))))
				}),
			),
			h.Button(h.Type("submit"), g.Text(page.T("settings.save"))),
		),
	)
}
