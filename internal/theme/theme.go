// Package theme defines the colour palettes and font stacks of the UI.
package theme

import (
	"fmt"
	"sort"
	"strings"
)

// Name identifies a theme.
type Name string

const (
	Light      Name = "light"
	Dark       Name = "dark"
	Consortium Name = "consortium"
)

// Default is used for unknown or missing theme names.
const Default = Light

// Palette maps colour roles to CSS colours.
type Palette map[string]string

// Fonts are the font stacks of a theme.
type Fonts struct {
	Body    string
	Heading string
	Mono    string
}

// Theme is a palette and its fonts.
type Theme struct {
	Name    Name
	Scheme  string // CSS color-scheme
	Palette Palette
	Fonts   Fonts
}

var systemFonts = Fonts{
	Body:    `system-ui, -apple-system, "Segoe UI", Roboto, sans-serif`,
	Heading: `system-ui, -apple-system, "Segoe UI", Roboto, sans-serif`,
	Mono:    `ui-monospace, "SFMono-Regular", Menlo, Consolas, monospace`,
}

var themes = map[Name]Theme{
	Light: {
		Name:   Light,
		Scheme: "light",
		Palette: Palette{
			"bg":         "#ffffff",
			"surface":    "#f5f6f8",
			"text":       "#1d2330",
			"muted":      "#5b6475",
			"primary":    "#2456d6",
			"on-primary": "#ffffff",
			"accent":     "#0f9d8a",
			"border":     "#dde1e8",
			"success":    "#1e7e34",
			"danger":     "#c62828",
		},
		Fonts: systemFonts,
	},
	Dark: {
		Name:   Dark,
		Scheme: "dark",
		Palette: Palette{
			"bg":         "#11151c",
			"surface":    "#1b212b",
			"text":       "#e6e9ef",
			"muted":      "#9aa3b2",
			"primary":    "#6d95ff",
			"on-primary": "#0b0e13",
			"accent":     "#38c7b2",
			"border":     "#2c3442",
			"success":    "#5cc878",
			"danger":     "#ff6b6b",
		},
		Fonts: systemFonts,
	},
	Consortium: {
		Name:   Consortium,
		Scheme: "light",
		Palette: Palette{
			"bg":         "#fbfaf7",
			"surface":    "#f1ede4",
			"text":       "#22201c",
			"muted":      "#6b655a",
			"primary":    "#00577a",
			"on-primary": "#ffffff",
			"accent":     "#c9822b",
			"border":     "#dcd5c6",
			"success":    "#3f7d3a",
			"danger":     "#b3261e",
		},
		Fonts: Fonts{
			Body:    `"Source Sans 3", "Helvetica Neue", Arial, sans-serif`,
			Heading: `"Source Serif 4", Georgia, "Times New Roman", serif`,
			Mono:    systemFonts.Mono,
		},
	},
}

// Names lists the themes in display order.
func Names() []Name {
	return []Name{Light, Dark, Consortium}
}

// Parse returns the theme name for s, if known.
func Parse(s string) (Name, bool) {
	n := Name(strings.ToLower(strings.TrimSpace(s)))
	_, ok := themes[n]
	return n, ok
}

// Get returns the theme called name, or the default theme.
func Get(name string) Theme {
	if n, ok := Parse(name); ok {
		return themes[n]
	}
	return themes[Default]
}

// CSSVariables renders the theme as custom properties on :root.
func (t Theme) CSSVariables() string {
	keys := make([]string, 0, len(t.Palette))
	for k := range t.Palette {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {\n")
	fmt.Fprintf(&b, "  color-scheme: %s;\n", t.Scheme)
	for _, k := range keys {
		fmt.Fprintf(&b, "  --color-%s: %s;\n", k, t.Palette[k])
	}
	fmt.Fprintf(&b, "  --font-body: %s;\n", t.Fonts.Body)
	fmt.Fprintf(&b, "  --font-heading: %s;\n", t.Fonts.Heading)
	fmt.Fprintf(&b, "  --font-mono: %s;\n", t.Fonts.Mono)
	b.WriteString("}\n")
	return b.String()
}
