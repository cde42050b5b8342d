package institutions

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/univ-lehavre/talent-finder-sub000/internal/domain"
	"github.com/univ-lehavre/talent-finder-sub000/internal/middleware"
	"github.com/univ-lehavre/talent-finder-sub000/internal/openalex"
	"github.com/univ-lehavre/talent-finder-sub000/internal/view"
	"github.com/univ-lehavre/talent-finder-sub000/web/templates/layouts"
	"github.com/univ-lehavre/talent-finder-sub000/web/templates/pages"
)

// SearchRequest is an institution search.
type SearchRequest struct {
	Query   string `query:"q" validate:"required,max=200"`
	PerPage int    `query:"per_page" validate:"omitempty,min=1,max=50"`
}

// StatsRequest lists institutions as a comma separated "ids" parameter.
// The consortium members are used when it is empty.
type StatsRequest struct {
	IDs string `query:"ids" validate:"max=2000"`
}

// Handler serves the institution routes.
type Handler struct {
	deps Dependencies
}

// NewHandler creates a Handler.
func NewHandler(deps Dependencies) *Handler {
	return &Handler{deps: deps}
}

// Page renders the consortium statistics. OpenAlex failures are shown on
// the page rather than failing the request.
func (h *Handler) Page(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), queryTimeout)
	defer cancel()

	data := pages.InstitutionsData{Consortium: *h.deps.Consortium, Years: h.deps.Years}
	if ids := h.deps.Consortium.IDs(); len(ids) > 0 {
		stats, err := h.deps.Stats.InstitutionStats(ctx, ids)
		if err != nil {
			middleware.FromContext(ctx).WarnContext(ctx, "Failed to load institution stats",
				"event", "openalex_stats_failure", "institutions", len(ids), "error", err)
		}
		data.Stats = stats
	}

	page := view.NewPage(c, "institutions.title")
	return layouts.Render(c, http.StatusOK, page, pages.Institutions(page, data))
}

// SearchFragment renders search matches for htmx.
func (h *Handler) SearchFragment(c echo.Context) error {
	results, err := h.search(c)
	if err != nil {
		return err
	}
	return view.RenderNode(c, http.StatusOK, pages.InstitutionResults(view.NewPage(c, ""), results))
}

// Search returns search matches as JSON (GET /api/openalex/institutions?q=).
func (h *Handler) Search(c echo.Context) error {
	results, err := h.search(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, results)
}

func (h *Handler) search(c echo.Context) ([]openalex.Institution, error) {
	var req SearchRequest
	if err := c.Bind(&req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if err := c.Validate(&req); err != nil {
		return nil, fmt.Errorf("%w: q is required and at most 200 characters", domain.ErrInvalidInput)
	}
	if req.PerPage == 0 {
		req.PerPage = defaultSearchResults
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), queryTimeout)
	defer cancel()
	return h.deps.Search.SearchInstitutions(ctx, req.Query, req.PerPage)
}

// Stats returns statistics for ?ids=, or for the consortium when no ids are
// given (GET /api/openalex/stats).
func (h *Handler) Stats(c echo.Context) error {
	var req StatsRequest
	if err := c.Bind(&req); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if err := c.Validate(&req); err != nil {
		return fmt.Errorf("%w: ids too long", domain.ErrInvalidInput)
	}

	ids := openalex.SplitIDs(req.IDs)
	if len(ids) == 0 {
		ids = h.deps.Consortium.IDs()
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), queryTimeout)
	defer cancel()
	stats, err := h.deps.Stats.InstitutionStats(ctx, ids)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}
