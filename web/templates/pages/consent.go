package pages

import (
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/univ-lehavre/talent-finder-sub000/internal/consent"
	"github.com/univ-lehavre/talent-finder-sub000/internal/domain"
	"github.com/univ-lehavre/talent-finder-sub000/internal/view"
	"github.com/univ-lehavre/talent-finder-sub000/web/templates/components"
)

// ConsentData is the consent overview and recent history of a user.
type ConsentData struct {
	Items   []consent.Item
	History []domain.ConsentEvent
}

// Consent renders the consent management page.
func Consent(page view.Page, data ConsentData) g.Node {
	return h.Section(
		h.H1(g.Text(page.T("consent.title"))),
		h.P(h.Class("muted"), g.Text(page.T("consent.lead"))),
		h.Ul(
			h.Class("consents"),
			g.Map(data.Items, func(item consent.Item) g.Node {
				return components.ConsentRow(page.Locale, item)
			}),
		),
		h.H2(g.Text(page.T("consent.history"))),
		components.ConsentHistory(page.Locale, data.History),
	)
}
