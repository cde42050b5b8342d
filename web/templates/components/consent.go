package components

import (
	"time"

	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	h "maragu.dev/gomponents/html"

	"github.com/univ-lehavre/talent-finder-sub000/internal/consent"
	"github.com/univ-lehavre/talent-finder-sub000/internal/domain"
	"github.com/univ-lehavre/talent-finder-sub000/internal/i18n"
)

// ConsentRowID is the DOM id of the row showing consent type t.
func ConsentRowID(t domain.ConsentType) string {
	return "consent-" + string(t)
}

// ConsentRow renders one consent type with a toggle. The toggle posts with
// htmx and the server answers with the updated row; without JavaScript the
// form posts normally and the server redirects back.
func ConsentRow(locale i18n.Locale, item consent.Item) g.Node {
	t := i18n.Translator{Locale: locale}
	action, label := "grant", t.T("consent.grant")
	status, statusClass := t.T("consent.revoked"), "badge"
	if item.Granted {
		action, label = "revoke", t.T("consent.revoke")
		status, statusClass = t.T("consent.granted"), "badge badge-on"
	}
	target := "/app/consent/" + string(item.Type) + "/" + action

	return h.Li(
		h.ID(ConsentRowID(item.Type)),
		h.Class("consent-row card"),
		h.Div(
			h.Strong(g.Text(t.T("consent."+string(item.Type)))),
			h.P(h.Class("muted"), g.Text(t.T("consent."+string(item.Type)+".help"))),
		),
		h.Span(h.Class(statusClass), g.Text(status)),
		h.Form(
			h.Method("post"),
			h.Action(target),
			hx.Post(target),
			hx.Target("#"+ConsentRowID(item.Type)),
			hx.Swap("outerHTML"),
			h.Button(h.Type("submit"), g.Text(label)),
		),
	)
}

// ConsentHistory lists past consent events, newest first.
func ConsentHistory(locale i18n.Locale, events []domain.ConsentEvent) g.Node {
	t := i18n.Translator{Locale: locale}
	if len(events) == 0 {
		return h.P(h.Class("muted"), g.Text(t.T("consent.history.empty")))
	}
	return h.Table(
		h.Class("history"),
		h.TBody(
			g.Map(events, func(e domain.ConsentEvent) g.Node {
				return h.Tr(
					h.Td(g.Text(e.At.Time.Local().Format(time.DateTime))),
					h.Td(g.Text(t.T("consent."+string(e.Type)))),
					h.Td(g.Text(t.T("consent.action."+string(e.Action)))),
				)
			}),
		),
	)
}
