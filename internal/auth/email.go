package auth

import (
	"fmt"
	"strings"
	"time"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/univ-lehavre/talent-finder-sub000/internal/domain"
	"github.com/univ-lehavre/talent-finder-sub000/internal/i18n"
)

// LinkEmail renders the sign-in email in locale.
func LinkEmail(locale i18n.Locale, to, link string, ttl time.Duration) (domain.EmailMessage, error) {
	minutes := int(ttl.Minutes())
	t := i18n.Translator{Locale: locale}

	var html strings.Builder
	if err := linkEmailBody(t, link, minutes).Render(&html); err != nil {
		return domain.EmailMessage{}, err
	}

	text := fmt.Sprintf("%s\n\n%s\n\n%s\n\n%s\n",
		t.T("email.greeting"),
		t.T("email.body", minutes),
		link,
		t.T("email.ignore"),
	)

	return domain.EmailMessage{
		To:      to,
		Subject: t.T("email.subject"),
		HTML:    html.String(),
		Text:    text,
	}, nil
}

func linkEmailBody(t i18n.Translator, link string, minutes int) g.Node {
	return h.Doctype(
		h.HTML(
			h.Lang(string(t.Locale)),
			h.Head(
				h.Meta(h.Charset("utf-8")),
				h.TitleEl(g.Text(t.T("email.subject"))),
			),
			h.Body(
				h.Style("font-family: system-ui, sans-serif; color: #1f2933;"),
				h.P(g.Text(t.T("email.greeting"))),
				h.P(g.Text(t.T("email.body", minutes))),
				h.P(
					h.A(
						h.Href(link),
						h.Style("display: inline-block; padding: 10px 18px; background: #1d4ed8; color: #ffffff; border-radius: 6px; text-decoration: none;"),
						g.Text(t.T("email.button")),
					),
				),
				h.P(h.Style("font-size: 12px; color: #52606d;"), g.Text(t.T("email.ignore"))),
			),
		),
	)
}
