package view_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/univ-lehavre/talent-finder-sub000/internal/i18n"
	"github.com/univ-lehavre/talent-finder-sub000/internal/middleware"
	"github.com/univ-lehavre/talent-finder-sub000/internal/theme"
	"github.com/univ-lehavre/talent-finder-sub000/internal/view"
)

func TestNewPage(t *testing.T) {
	e := echo.New()
	var page view.Page
	e.GET("/settings", func(c echo.Context) error {
		page = view.NewPage(c, "settings.title")
		return nil
	}, middleware.Preferences)

	req := httptest.NewRequest(http.MethodGet, "/settings", nil)
	req.AddCookie(&http.Cookie{Name: middleware.LocaleCookieName, Value: "fr"})
	req.AddCookie(&http.Cookie{Name: middleware.ThemeCookieName, Value: "dark"})
	e.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, i18n.French, page.Locale)
	assert.Equal(t, theme.Dark, page.Theme.Name)
	assert.Equal(t, "/settings", page.Path)
	assert.Equal(t, i18n.T(i18n.French, "settings.title"), page.Title)
	assert.False(t, page.SignedIn())
}

func TestRenderNode(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	err := view.RenderNode(c, http.StatusCreated, h.P(g.Text("a < b")))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "<p>a &lt; b</p>", rec.Body.String())
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "text/html")
}

func TestRedirect(t *testing.T) {
	e := echo.New()

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)
	require.NoError(t, view.Redirect(c, "/app/consent"))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/app/consent", rec.Header().Get(echo.HeaderLocation))

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("HX-Request", "true")
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	require.NoError(t, view.Redirect(c, "/app/consent"))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/app/consent", rec.Header().Get("HX-Redirect"))
}
