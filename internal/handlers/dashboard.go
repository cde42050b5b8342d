package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/univ-lehavre/talent-finder-sub000/internal/consent"
	"github.com/univ-lehavre/talent-finder-sub000/internal/gitstats"
	"github.com/univ-lehavre/talent-finder-sub000/internal/middleware"
	"github.com/univ-lehavre/talent-finder-sub000/internal/view"
	"github.com/univ-lehavre/talent-finder-sub000/web/templates/pages"
)

// ConsentOverview lists the consent state of a user.
type ConsentOverview interface {
	Overview(ctx context.Context, user *surrealmodels.RecordID) ([]consent.Item, error)
}

// SnapshotSource returns the latest repository snapshot.
type SnapshotSource interface {
	Get() (*gitstats.Snapshot, error)
}

// DashboardHandler handles requests for the user dashboard.
type DashboardHandler struct {
	consents  ConsentOverview
	snapshots SnapshotSource
}

// NewDashboardHandler creates a new DashboardHandler. Either source may be nil.
func NewDashboardHandler(consents ConsentOverview, snapshots SnapshotSource) *DashboardHandler {
	return &DashboardHandler{consents: consents, snapshots: snapshots}
}

// DashboardGet shows the user's dashboard page. RequireUser has already run.
func (h *DashboardHandler) DashboardGet(c echo.Context) error {
	ctx := c.Request().Context()
	user := middleware.CurrentUser(c)
	logger := middleware.FromContext(ctx)

	var data pages.DashboardData
	if h.consents != nil {
		items, err := h.consents.Overview(ctx, user.ID)
		if err != nil {
			logger.WarnContext(ctx, "Failed to load consent overview", "event", "dashboard_consent_failure", "error", err)
		}
		data.Consents = items
	}
	if h.snapshots != nil {
		if snap, err := h.snapshots.Get(); err == nil && snap != nil {
			data.Commits = snap.Totals.Commits
		}
	}

	page := view.NewPage(c, "dashboard.title")
	return renderPage(c, http.StatusOK, page, pages.Dashboard(page, data))
}
