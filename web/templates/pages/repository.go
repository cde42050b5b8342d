package pages

import (
	"fmt"
	"strconv"
	"time"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/univ-lehavre/talent-finder-sub000/internal/github"
	"github.com/univ-lehavre/talent-finder-sub000/internal/gitstats"
	"github.com/univ-lehavre/talent-finder-sub000/internal/view"
	"github.com/univ-lehavre/talent-finder-sub000/web/templates/components"
)

// RepositoryData is the repository statistics page. Snapshot is nil until
// the CLI has generated one. Repo and Counts are set when the origin remote
// is on GitHub.
type RepositoryData struct {
	Snapshot *gitstats.Snapshot
	Repo     *github.Repo
	Counts   *github.Counts
}

var weekdayKeys = map[time.Weekday]string{
	time.Monday:    "weekday.mon",
	time.Tuesday:   "weekday.tue",
	time.Wednesday: "weekday.wed",
	time.Thursday:  "weekday.thu",
	time.Friday:    "weekday.fri",
	time.Saturday:  "weekday.sat",
	time.Sunday:    "weekday.sun",
}

// Repository renders development statistics of the project itself.
func Repository(page view.Page, data RepositoryData) g.Node {
	snap := data.Snapshot
	if snap == nil {
		return h.Section(
			h.H1(g.Text(page.T("repository.title"))),
			h.P(h.Class("muted"), g.Text(page.T("repository.missing"))),
		)
	}

	hourly := make([]components.Bar, len(snap.Hourly))
	for i, b := range snap.Hourly {
		hourly[i] = components.Bar{Label: fmt.Sprintf("%02d", b.Hour), Value: b.Commits}
	}
	weekdays := make([]components.Bar, len(snap.Weekdays))
	for i, b := range snap.Weekdays {
		weekdays[i] = components.Bar{Label: page.T(weekdayKeys[b.Weekday]), Value: b.Commits}
	}

	return h.Section(
		h.H1(g.Text(page.T("repository.title"))),
		h.P(h.Class("muted small"), g.Text(page.T("repository.updated", snap.GeneratedAt.Format("2006-01-02 15:04 MST")))),
		h.Div(
			h.Class("grid"),
			components.StatCard(page.T("repository.commits"), snap.Totals.Commits),
			components.StatCard(page.T("repository.authors"), snap.Totals.Authors),
			g.Iff(snap.Sources != nil, func() g.Node {
				return g.Group{
					components.StatCard(page.T("repository.files"), snap.Sources.Files),
					components.StatCard(page.T("repository.lines"), snap.Sources.Lines),
					components.StatCard(page.T("repository.tests"), snap.Sources.Matches["tests"]),
					components.StatCard(page.T("repository.functions"), snap.Sources.Matches["functions"]),
					components.StatCard(page.T("repository.todos"), snap.Sources.Matches["todos"]),
				}
			}),
			g.Iff(data.Repo != nil && data.Counts != nil, func() g.Node {
				return g.Group{
					h.A(h.Href(data.Repo.IssuesURL()), components.StatCard(page.T("repository.issues"), data.Counts.OpenIssues)),
					h.A(h.Href(data.Repo.PullsURL()), components.StatCard(page.T("repository.pulls"), data.Counts.OpenPulls)),
				}
			}),
		),
		components.BarChart(page.T("repository.hourly"), hourly),
		components.BarChart(page.T("repository.weekdays"), weekdays),
		h.H2(g.Text(page.T("repository.authors"))),
		authorsTable(page, snap.Authors),
		h.H2(g.Text(page.T("repository.recent"))),
		recentCommits(data),
	)
}

func authorsTable(page view.Page, authors []gitstats.AuthorStats) g.Node {
	return h.Table(
		h.THead(h.Tr(
			h.Th(g.Text(page.T("repository.author"))),
			h.Th(g.Text(page.T("repository.commits"))),
			h.Th(g.Text("+")),
			h.Th(g.Text("-")),
		)),
		h.TBody(g.Map(authors, func(a gitstats.AuthorStats) g.Node {
			return h.Tr(
				h.Td(g.Text(a.Name)),
				h.Td(g.Text(strconv.Itoa(a.Commits))),
				h.Td(h.Class("added"), g.Text(components.FormatInt(a.Added))),
				h.Td(h.Class("deleted"), g.Text(components.FormatInt(a.Deleted))),
			)
		})),
	)
}

func recentCommits(data RepositoryData) g.Node {
	return h.Ul(h.Class("commits"), g.Map(data.Snapshot.Recent, func(c gitstats.CommitSummary) g.Node {
		hash := g.Node(h.Code(g.Text(c.ShortHash())))
		if data.Repo != nil {
			hash = h.A(h.Href(data.Repo.CommitURL(c.Hash)), hash)
		}
		return h.Li(
			hash,
			g.Text(" "+c.Subject+" "),
			h.Span(h.Class("muted small"), g.Textf("%s, %s", c.Author, c.Date.Format("2006-01-02"))),
		)
	}))
}
