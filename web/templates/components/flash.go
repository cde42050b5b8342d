package components

import (
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/univ-lehavre/talent-finder-sub000/internal/view"
)

// Flash renders queued success and error messages.
func Flash(flash view.FlashData) g.Node {
	if flash.Empty() {
		return nil
	}
	return h.Div(
		h.Class("flashes"),
		h.Role("status"),
		g.Map(flash.Success, func(msg string) g.Node {
			return h.P(h.Class("flash flash-success"), g.Text(msg))
		}),
		g.Map(flash.Error, func(msg string) g.Node {
			return h.P(h.Class("flash flash-error"), g.Text(msg))
		}),
	)
}
