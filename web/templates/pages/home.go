package pages

import (
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/univ-lehavre/talent-finder-sub000/internal/view"
)

// HomeData is shown on the landing page.
type HomeData struct {
	Consortium string
	Members    []string
}

// Home renders the landing page.
func Home(page view.Page, data HomeData) g.Node {
	cta := "/auth/login"
	if page.SignedIn() {
		cta = "/app/dashboard"
	}
	return h.Section(
		h.Class("hero"),
		h.H1(g.Text(page.T("home.title"))),
		h.P(h.Class("lead"), g.Text(page.T("home.lead", data.Consortium))),
		h.A(h.Class("button"), h.Href(cta), g.Text(page.T("home.cta"))),
		g.If(len(data.Members) > 0, h.Div(
			h.H2(g.Text(page.T("institutions.members"))),
			h.Ul(h.Class("members"), g.Map(data.Members, func(name string) g.Node {
				return h.Li(g.Text(name))
			})),
		)),
	)
}

// ErrorPage renders a user-facing error message.
func ErrorPage(page view.Page, status int, messageKey string) g.Node {
	return h.Section(
		h.Class("narrow card"),
		h.H1(g.Textf("%d", status)),
		h.P(g.Text(page.T(messageKey))),
		h.A(h.Href("/"), g.Text(page.T("nav.home"))),
	)
}
