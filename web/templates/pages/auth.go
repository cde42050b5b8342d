// Package pages renders the content of each page. Layouts wrap the result.
package pages

import (
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/univ-lehavre/talent-finder-sub000/internal/view"
)

// LoginData pre-fills the login form.
type LoginData struct {
	Email string
}

// Login renders the form requesting a magic link.
func Login(page view.Page, data LoginData) g.Node {
	return h.Section(
		h.Class("narrow card"),
		h.H1(g.Text(page.T("login.title"))),
		h.P(h.Class("muted"), g.Text(page.T("login.lead"))),
		h.Form(
			h.Method("post"),
			h.Action("/auth/login"),
			h.Label(h.For("email"), g.Text(page.T("login.email"))),
			h.Input(
				h.ID("email"),
				h.Name("email"),
				h.Type("email"),
				h.Required(),
				h.AutoComplete("email"),
				h.Value(data.Email),
			),
			h.Button(h.Type("submit"), g.Text(page.T("login.submit"))),
		),
	)
}

// LinkSent confirms that a link was requested, without saying whether the
// address has an account.
func LinkSent(page view.Page, minutes int) g.Node {
	return h.Section(
		h.Class("narrow card"),
		h.H1(g.Text(page.T("sent.title"))),
		h.P(g.Text(page.T("sent.lead", minutes))),
	)
}
