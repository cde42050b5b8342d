package pages

import (
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/univ-lehavre/talent-finder-sub000/internal/consent"
	"github.com/univ-lehavre/talent-finder-sub000/internal/view"
	"github.com/univ-lehavre/talent-finder-sub000/web/templates/components"
)

// DashboardData summarises the account of the signed-in user.
type DashboardData struct {
	Consents []consent.Item
	Commits  int
}

// Dashboard renders the member home page.
func Dashboard(page view.Page, data DashboardData) g.Node {
	granted := 0
	for _, item := range data.Consents {
		if item.Granted {
			granted++
		}
	}
	return h.Section(
		h.H1(g.Text(page.T("dashboard.welcome", page.User.DisplayName()))),
		g.If(len(data.Consents) > 0, h.P(
			g.Text(page.T("dashboard.consent", granted, len(data.Consents))+" "),
			h.A(h.Href("/app/consent"), g.Text(page.T("nav.consent"))),
		)),
		h.Div(
			h.Class("grid"),
			h.A(h.Class("card"), h.Href("/app/institutions"), g.Text(page.T("institutions.title"))),
			h.A(h.Class("card"), h.Href("/app/repository"),
				g.Text(page.T("repository.title")),
				g.If(data.Commits > 0, h.Span(h.Class("muted"), g.Text(" · "+components.FormatInt(data.Commits)+" "+page.T("repository.commits")))),
			),
		),
	)
}
