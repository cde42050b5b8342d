package pages

import (
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/univ-lehavre/talent-finder-sub000/internal/health"
	"github.com/univ-lehavre/talent-finder-sub000/internal/view"
)

// Health renders the check list. Rows start pending and are replaced by the
// results streamed over the /health/live websocket by /static/health.js.
func Health(page view.Page, names []string) g.Node {
	return h.Section(
		h.H1(g.Text(page.T("health.title"))),
		h.P(h.Class("muted"), g.Text(page.T("health.live"))),
		h.Table(
			h.ID("health"),
			h.Data("socket", "/health/live"),
			h.TBody(g.Map(names, func(name string) g.Node {
				return HealthRow(page, health.Result{Name: name})
			})),
		),
		h.Script(h.Src("/static/health.js"), h.Defer()),
	)
}

// HealthRow is one check. A result without status is still pending.
func HealthRow(page view.Page, r health.Result) g.Node {
	state, label := "pending", page.T("health.pending")
	switch r.Status {
	case health.StatusOK:
		state, label = "ok", page.T("health.ok")
	case health.StatusFail:
		state, label = "fail", page.T("health.fail")
	}
	return h.Tr(
		h.ID("check-"+r.Name),
		h.Data("state", state),
		h.Th(g.Text(r.Name)),
		h.Td(h.Class("status "+state), g.Text(label)),
		h.Td(h.Class("muted"), g.Text(r.Message)),
		h.Td(h.Class("muted small"), g.If(r.Status != "", g.Textf("%d ms", r.LatencyMs))),
	)
}
