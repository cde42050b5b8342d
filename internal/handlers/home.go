package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/univ-lehavre/talent-finder-sub000/internal/config"
	"github.com/univ-lehavre/talent-finder-sub000/internal/view"
	"github.com/univ-lehavre/talent-finder-sub000/web/templates/pages"
)

// HomeHandler handles requests for the home page.
type HomeHandler struct {
	consortium *config.Consortium
}

// NewHomeHandler creates a new HomeHandler.
func NewHomeHandler(consortium *config.Consortium) *HomeHandler {
	return &HomeHandler{consortium: consortium}
}

// HomeGet handles the GET request for the home page.
func (h *HomeHandler) HomeGet(c echo.Context) error {
	data := pages.HomeData{}
	if h.consortium != nil {
		data.Consortium = h.consortium.Name
		for _, inst := range h.consortium.Institutions {
			if inst.IsEnabled() {
				data.Members = append(data.Members, inst.Name)
			}
		}
	}
	page := view.NewPage(c, "app.name")
	return renderPage(c, http.StatusOK, page, pages.Home(page, data))
}
