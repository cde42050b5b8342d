package consent

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/univ-lehavre/talent-finder-sub000/internal/consent"
	"github.com/univ-lehavre/talent-finder-sub000/internal/domain"
	"github.com/univ-lehavre/talent-finder-sub000/internal/i18n"
	"github.com/univ-lehavre/talent-finder-sub000/internal/middleware"
	"github.com/univ-lehavre/talent-finder-sub000/internal/view"
	"github.com/univ-lehavre/talent-finder-sub000/web/templates/components"
	"github.com/univ-lehavre/talent-finder-sub000/web/templates/layouts"
	"github.com/univ-lehavre/talent-finder-sub000/web/templates/pages"
)

// Service is what the handlers need from the consent service.
type Service interface {
	Apply(ctx context.Context, user *surrealmodels.RecordID, consentType, action string, meta consent.Meta) (*domain.ConsentState, error)
	Current(ctx context.Context, user *surrealmodels.RecordID) (map[domain.ConsentType]bool, error)
	Overview(ctx context.Context, user *surrealmodels.RecordID) ([]consent.Item, error)
	History(ctx context.Context, user *surrealmodels.RecordID, limit int) ([]domain.ConsentEvent, error)
}

// Handler serves the consent pages. Every route runs behind RequireUser.
type Handler struct {
	service Service
}

// NewHandler creates a consent Handler.
func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Get renders the overview and the recent history.
func (h *Handler) Get(c echo.Context) error {
	ctx := c.Request().Context()
	user := middleware.CurrentUser(c)

	items, err := h.service.Overview(ctx, user.ID)
	if err != nil {
		return err
	}
	history, err := h.service.History(ctx, user.ID, consent.DefaultHistoryLimit)
	if err != nil {
		return err
	}

	page := view.NewPage(c, "consent.title")
	return layouts.Render(c, http.StatusOK, page, pages.Consent(page, pages.ConsentData{Items: items, History: history}))
}

// Post grants or revokes one consent type. htmx requests get the updated
// row back; plain form posts are redirected to the overview.
func (h *Handler) Post(c echo.Context) error {
	ctx := c.Request().Context()
	user := middleware.CurrentUser(c)

	state, err := h.service.Apply(ctx, user.ID, c.Param("type"), c.Param("action"), consent.Meta{
		IP:        c.RealIP(),
		UserAgent: c.Request().UserAgent(),
	})
	if err != nil {
		return err
	}

	locale := middleware.Locale(c)
	if view.IsHTMX(c) {
		updated := state.UpdatedAt.Time
		return view.RenderNode(c, http.StatusOK, components.ConsentRow(locale, consent.Item{
			Type:      state.Type,
			Granted:   state.Granted,
			UpdatedAt: &updated,
		}))
	}
	view.SetFlashSuccess(c, i18n.T(locale, "consent.updated"))
	return c.Redirect(http.StatusSeeOther, "/app/consent")
}

// Current returns the consent map of the signed-in user as JSON.
func (h *Handler) Current(c echo.Context) error {
	current, err := h.service.Current(c.Request().Context(), middleware.CurrentUser(c).ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, current)
}
