package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/univ-lehavre/talent-finder-sub000/internal/i18n"
	"github.com/univ-lehavre/talent-finder-sub000/internal/theme"
)

func TestPreferences(t *testing.T) {
	e := echo.New()
	e.Use(Preferences)
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, string(Locale(c))+"/"+string(Theme(c)))
	})

	tests := []struct {
		name    string
		cookies []*http.Cookie
		accept  string
		want    string
	}{
		{"defaults", nil, "", "en/light"},
		{"accept language", nil, "fr-CA,fr;q=0.9,en;q=0.5", "fr/light"},
		{"cookie wins", []*http.Cookie{{Name: LocaleCookieName, Value: "en"}}, "fr", "en/light"},
		{"theme cookie", []*http.Cookie{{Name: ThemeCookieName, Value: "dark"}}, "", "en/dark"},
		{"unknown values", []*http.Cookie{{Name: LocaleCookieName, Value: "de"}, {Name: ThemeCookieName, Value: "neon"}}, "de", "en/light"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			for _, c := range tt.cookies {
				req.AddCookie(c)
			}
			if tt.accept != "" {
				req.Header.Set("Accept-Language", tt.accept)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Body.String())
		})
	}
}

func TestPreferences_OutsideMiddleware(t *testing.T) {
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	assert.Equal(t, i18n.Default, Locale(c))
	assert.Equal(t, theme.Default, Theme(c))
}
