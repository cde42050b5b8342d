// Package components holds the gomponents building blocks shared by pages.
package components

import (
	"strings"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/univ-lehavre/talent-finder-sub000/internal/view"
)

type navLink struct {
	href string
	key  string
}

var (
	publicLinks = []navLink{
		{"/", "nav.home"},
	}
	memberLinks = []navLink{
		{"/app/dashboard", "nav.dashboard"},
		{"/app/institutions", "nav.institutions"},
		{"/app/repository", "nav.repository"},
		{"/app/consent", "nav.consent"},
	}
)

// Nav renders the top navigation bar.
func Nav(page view.Page) g.Node {
	links := publicLinks
	if page.SignedIn() {
		links = append(append([]navLink{}, publicLinks...), memberLinks...)
	}

	return h.Header(
		h.Class("topbar"),
		h.Nav(
			h.Class("container nav"),
			h.A(h.Class("brand"), h.Href("/"), g.Text(page.T("app.name"))),
			h.Ul(
				g.Map(links, func(l navLink) g.Node {
					return h.Li(h.A(
						h.Href(l.href),
						g.If(isActive(page.Path, l.href), h.Aria("current", "page")),
						g.Text(page.T(l.key)),
					))
				}),
				h.Li(h.A(h.Href("/settings"), g.Text(page.T("nav.settings")))),
				account(page),
			),
		),
	)
}

func account(page view.Page) g.Node {
	if !page.SignedIn() {
		return h.Li(h.A(h.Class("button"), h.Href("/auth/login"), g.Text(page.T("nav.login"))))
	}
	return h.Li(
		h.Form(
			h.Method("post"),
			h.Action("/auth/logout"),
			h.Span(h.Class("muted"), g.Text(page.User.DisplayName())),
			h.Button(h.Type("submit"), h.Class("link"), g.Text(page.T("nav.logout"))),
		),
	)
}

func isActive(current, href string) bool {
	if href == "/" {
		return current == "/"
	}
	return strings.HasPrefix(current, href)
}
