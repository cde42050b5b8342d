// Package i18n holds the UI text tables and locale negotiation.
package i18n

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Locale is a supported UI language.
type Locale string

const (
	English Locale = "en"
	French  Locale = "fr"
)

// Default is used when nothing else matches.
const Default = English

// Supported lists the locales in preference order.
var Supported = []Locale{English, French}

var tags = []language.Tag{language.English, language.French}

var matcher = language.NewMatcher(tags)

// Parse returns the supported locale for s, if any.
func Parse(s string) (Locale, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, l := range Supported {
		if string(l) == s {
			return l, true
		}
	}
	return "", false
}

// Match picks a locale from a cookie value, then an Accept-Language
// header, then falls back to Default.
func Match(cookie, acceptLanguage string) Locale {
	if l, ok := Parse(cookie); ok {
		return l
	}
	if acceptLanguage == "" {
		return Default
	}
	prefs, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(prefs) == 0 {
		return Default
	}
	_, idx, conf := matcher.Match(prefs...)
	if conf == language.No {
		return Default
	}
	return Supported[idx]
}

// Tag is the BCP 47 tag of l.
func (l Locale) Tag() language.Tag {
	if t, err := language.Parse(string(l)); err == nil {
		return t
	}
	return language.English
}

// DisplayName is the locale's own name for itself, capitalised: "English", "Français".
func (l Locale) DisplayName() string {
	tag := l.Tag()
	name := display.Self.Name(tag)
	if name == "" {
		return string(l)
	}
	return cases.Title(tag).String(name)
}

// T returns the text for key in l. Missing keys fall back to English, then
// to the key itself. Extra args are applied with fmt.Sprintf.
func T(l Locale, key string, args ...any) string {
	text, ok := catalog[l][key]
	if !ok {
		text, ok = catalog[Default][key]
	}
	if !ok {
		text = key
	}
	if len(args) > 0 {
		return fmt.Sprintf(text, args...)
	}
	return text
}

// Translator binds a locale.
type Translator struct {
	Locale Locale
}

// T translates key.
func (t Translator) T(key string, args ...any) string {
	return T(t.Locale, key, args...)
}
