package pages

import (
	"strconv"

	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	h "maragu.dev/gomponents/html"

	"github.com/univ-lehavre/talent-finder-sub000/internal/config"
	"github.com/univ-lehavre/talent-finder-sub000/internal/openalex"
	"github.com/univ-lehavre/talent-finder-sub000/internal/view"
	"github.com/univ-lehavre/talent-finder-sub000/web/templates/components"
)

// InstitutionsData is the consortium statistics page. Stats is nil when
// OpenAlex could not be queried.
type InstitutionsData struct {
	Consortium config.Consortium
	Years      int
	Stats      *openalex.Stats
}

// Institutions renders the consortium statistics.
func Institutions(page view.Page, data InstitutionsData) g.Node {
	return h.Section(
		h.H1(g.Text(page.T("institutions.title"))),
		h.P(h.Class("muted"), g.Text(page.T("institutions.lead", data.Years))),
		institutionStats(page, data.Stats),
		h.H2(g.Text(page.T("institutions.members"))),
		h.Ul(h.Class("members"), g.Map(data.Consortium.Institutions, func(inst config.Institution) g.Node {
			return h.Li(
				g.If(!inst.IsEnabled(), h.Class("muted")),
				g.Text(inst.Name),
				g.If(inst.Country != "", h.Span(h.Class("muted"), g.Text(" ("+inst.Country+")"))),
			)
		})),
		h.H2(g.Text(page.T("institutions.search"))),
		h.Input(
			h.Type("search"),
			h.Name("q"),
			h.Aria("label", page.T("institutions.search")),
			hx.Get("/app/institutions/search"),
			hx.Trigger("input changed delay:400ms, search"),
			hx.Target("#institution-results"),
		),
		h.Div(h.ID("institution-results")),
	)
}

func institutionStats(page view.Page, stats *openalex.Stats) g.Node {
	if stats == nil {
		return h.P(h.Class("alert alert-error"), g.Text(page.T("institutions.error")))
	}
	bars := make([]components.Bar, 0, len(stats.Years)+1)
	if len(stats.Years) > 0 {
		bars = append(bars, components.Bar{Label: page.T("institutions.before", stats.Years[0].Year), Value: stats.Before})
	}
	for _, y := range stats.Years {
		bars = append(bars, components.Bar{Label: strconv.Itoa(y.Year), Value: y.Count})
	}
	return h.Div(
		h.Div(
			h.Class("grid"),
			components.StatCard(page.T("institutions.works"), stats.Works),
			components.StatCard(page.T("institutions.authors"), stats.Authors),
		),
		components.BarChart(page.T("institutions.articles"), bars),
		h.P(h.Class("muted small"), g.Text(page.T("institutions.latency", stats.Timings.Total.Milliseconds()))),
	)
}

// InstitutionResults is the htmx fragment listing search matches.
func InstitutionResults(page view.Page, results []openalex.Institution) g.Node {
	if len(results) == 0 {
		return h.P(h.Class("muted"), g.Text(page.T("institutions.none")))
	}
	return h.Ul(h.Class("results"), g.Map(results, func(inst openalex.Institution) g.Node {
		return h.Li(
			h.Strong(g.Text(inst.DisplayName)),
			h.Span(h.Class("muted"), g.Textf(" %s · %s · ", inst.ShortID(), inst.CountryCode)),
			h.Span(g.Text(components.FormatInt(inst.WorksCount)+" "+page.T("institutions.works"))),
		)
	}))
}
