package components

import (
	"strconv"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// StatCard shows one headline number.
func StatCard(label string, value int) g.Node {
	return h.Div(
		h.Class("card stat"),
		h.Span(h.Class("stat-value"), g.Text(FormatInt(value))),
		h.Span(h.Class("stat-label muted"), g.Text(label)),
	)
}

// Bar is one column of a bar chart.
type Bar struct {
	Label string
	Value int
}

// BarChart renders bars as CSS columns scaled to the largest value.
func BarChart(title string, bars []Bar) g.Node {
	max := 0
	for _, b := range bars {
		if b.Value > max {
			max = b.Value
		}
	}
	return h.Figure(
		h.Class("chart"),
		h.FigCaption(g.Text(title)),
		h.Div(
			h.Class("bars"),
			g.Map(bars, func(b Bar) g.Node {
				height := 0
				if max > 0 {
					height = b.Value * 100 / max
				}
				return h.Div(
					h.Class("bar"),
					h.Title(b.Label+": "+FormatInt(b.Value)),
					h.Span(h.Class("bar-fill"), h.Style("height: "+strconv.Itoa(height)+"%")),
					h.Span(h.Class("bar-label"), g.Text(b.Label)),
				)
			}),
		),
	)
}

// FormatInt writes n with thin-space thousands separators.
func FormatInt(n int) string {
	s := strconv.Itoa(n)
	neg := false
	if n < 0 {
		neg = true
		s = s[1:]
	}
	var out []byte
	for i := range len(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, " "...)
		}
		out = append(out, s[i])
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}
