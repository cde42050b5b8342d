// Package repository serves the development statistics of the project,
// read from the snapshot file written by talent-cli gitstats.
package repository

import (
	"context"
	"log/slog"
	"time"

	"github.com/univ-lehavre/talent-finder-sub000/internal/github"
	"github.com/univ-lehavre/talent-finder-sub000/internal/gitstats"
	"github.com/univ-lehavre/talent-finder-sub000/internal/module"
	"github.com/univ-lehavre/talent-finder-sub000/internal/registry"
)

// SnapshotKey is the registry key of the snapshot store.
const SnapshotKey registry.Key[SnapshotSource] = "repository.snapshots"

const countsTTL = 5 * time.Minute

// SnapshotSource returns the latest snapshot.
type SnapshotSource interface {
	Get() (*gitstats.Snapshot, error)
}

// Watcher reloads the snapshot when its file changes.
type Watcher interface {
	Watch(ctx context.Context) error
}

// CountsSource fetches the open issues and pull requests of a GitHub repository.
type CountsSource interface {
	Counts(ctx context.Context, repo github.Repo) (*github.Counts, error)
}

// Dependencies holds the services required by the repository module.
// GitHub may be nil.
type Dependencies struct {
	Snapshots SnapshotSource
	GitHub    CountsSource
}

// Module mounts the repository routes and keeps the snapshot fresh.
type Module struct {
	module.BaseModule
	deps   Dependencies
	counts *countsCache
	cancel context.CancelFunc
}

// New creates the repository module.
func New(deps Dependencies) *Module {
	return &Module{deps: deps, counts: newCountsCache(deps.GitHub, countsTTL)}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "repository"
}

// Register publishes the snapshot source.
func (m *Module) Register(reg *registry.Registry) error {
	registry.Set(reg, SnapshotKey, m.deps.Snapshots)
	return nil
}

// Boot mounts the routes and starts watching the snapshot file when the
// source supports it.
func (m *Module) Boot(ctx context.Context, routes module.Routes, reg *registry.Registry) error {
	if w, ok := m.deps.Snapshots.(Watcher); ok {
		watchCtx, cancel := context.WithCancel(context.Background())
		m.cancel = cancel
		if err := w.Watch(watchCtx); err != nil {
			slog.WarnContext(ctx, "Snapshot file will not be reloaded", "event", "gitstats_watch_failure", "error", err)
		}
	}

	h := NewHandler(m.deps.Snapshots, m.counts)
	routes.App.GET("/repository", h.Page)
	routes.API.GET("/repository", h.Snapshot)
	return nil
}

// Shutdown stops the file watcher.
func (m *Module) Shutdown(ctx context.Context) error {
	if m.cancel != nil {
		m.cancel()
	}
	return nil
}
