package repository

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/univ-lehavre/talent-finder-sub000/internal/domain"
	"github.com/univ-lehavre/talent-finder-sub000/internal/github"
	"github.com/univ-lehavre/talent-finder-sub000/internal/gitstats"
	"github.com/univ-lehavre/talent-finder-sub000/internal/middleware"
	"github.com/univ-lehavre/talent-finder-sub000/internal/view"
	"github.com/univ-lehavre/talent-finder-sub000/web/templates/layouts"
	"github.com/univ-lehavre/talent-finder-sub000/web/templates/pages"
)

const countsTimeout = 5 * time.Second

// Handler serves the repository routes.
type Handler struct {
	snapshots SnapshotSource
	counts    *countsCache
}

// NewHandler creates a Handler. counts may be nil.
func NewHandler(snapshots SnapshotSource, counts *countsCache) *Handler {
	return &Handler{snapshots: snapshots, counts: counts}
}

// Page renders the statistics, or a hint to run the CLI when no snapshot exists.
func (h *Handler) Page(c echo.Context) error {
	ctx := c.Request().Context()
	logger := middleware.FromContext(ctx)

	snap, err := h.snapshots.Get()
	if err != nil && !errors.Is(err, gitstats.ErrNoSnapshot) {
		logger.WarnContext(ctx, "Repository snapshot unavailable", "event", "gitstats_unavailable", "error", err)
	}

	data := pages.RepositoryData{Snapshot: snap}
	if snap != nil && snap.Repository.Remote != "" {
		if repo, err := github.ParseRemote(snap.Repository.Remote); err == nil {
			data.Repo = &repo
			cctx, cancel := context.WithTimeout(ctx, countsTimeout)
			counts, err := h.counts.Get(cctx, repo)
			cancel()
			if err != nil {
				logger.WarnContext(ctx, "Failed to fetch GitHub counts", "event", "github_counts_failure", "repo", repo.FullName(), "error", err)
			}
			data.Counts = counts
		}
	}

	page := view.NewPage(c, "repository.title")
	return layouts.Render(c, http.StatusOK, page, pages.Repository(page, data))
}

// Snapshot returns the raw snapshot (GET /api/repository).
func (h *Handler) Snapshot(c echo.Context) error {
	snap, err := h.snapshots.Get()
	if errors.Is(err, gitstats.ErrNoSnapshot) {
		return fmt.Errorf("%w: %v", domain.ErrNotFound, err)
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, snap)
}
