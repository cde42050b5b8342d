package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/univ-lehavre/talent-finder-sub000/internal/handlers"
	"github.com/univ-lehavre/talent-finder-sub000/internal/middleware"
)

func setupSettingsTest() *echo.Echo {
	e := newTestEcho()
	e.GET("/settings", handlers.SettingsGet)
	e.POST("/settings", handlers.SettingsPost)
	return e
}

func TestSettingsGet(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/settings", nil)
	req.AddCookie(&http.Cookie{Name: middleware.LocaleCookieName, Value: "fr"})
	rec := serve(setupSettingsTest(), req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `<html lang="fr"`)
	assert.Contains(t, rec.Body.String(), "Paramètres")
}

func TestSettingsPost(t *testing.T) {
	t.Run("stores both preferences", func(t *testing.T) {
		rec := serve(setupSettingsTest(), postForm("/settings", url.Values{"locale": {"fr"}, "theme": {"dark"}}))

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		lang := cookie(rec, middleware.LocaleCookieName)
		require.NotNil(t, lang)
		assert.Equal(t, "fr", lang.Value)
		th := cookie(rec, middleware.ThemeCookieName)
		require.NotNil(t, th)
		assert.Equal(t, "dark", th.Value)
	})

	t.Run("empty field keeps the current value", func(t *testing.T) {
		rec := serve(setupSettingsTest(), postForm("/settings", url.Values{"theme": {"consortium"}}))

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Nil(t, cookie(rec, middleware.LocaleCookieName))
		assert.NotNil(t, cookie(rec, middleware.ThemeCookieName))
	})

	t.Run("unknown theme is rejected", func(t *testing.T) {
		rec := serve(setupSettingsTest(), postForm("/settings", url.Values{"theme": {"neon"}}))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Nil(t, cookie(rec, middleware.ThemeCookieName))
	})
}
