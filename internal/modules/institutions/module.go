// Package institutions shows OpenAlex statistics for the consortium members
// and exposes the underlying queries as JSON.
package institutions

import (
	"context"
	"time"

	"github.com/univ-lehavre/talent-finder-sub000/internal/config"
	"github.com/univ-lehavre/talent-finder-sub000/internal/module"
	"github.com/univ-lehavre/talent-finder-sub000/internal/openalex"
	"github.com/univ-lehavre/talent-finder-sub000/internal/registry"
)

const (
	defaultSearchResults = 10
	queryTimeout         = 15 * time.Second
)

// StatsSource computes institution statistics.
type StatsSource interface {
	InstitutionStats(ctx context.Context, ids []string) (*openalex.Stats, error)
}

// Searcher finds institutions by name.
type Searcher interface {
	SearchInstitutions(ctx context.Context, query string, perPage int) ([]openalex.Institution, error)
}

// Dependencies holds the services required by the institutions module.
type Dependencies struct {
	Stats      StatsSource
	Search     Searcher
	Consortium *config.Consortium
	Years      int
}

// Module mounts the institution routes.
type Module struct {
	module.BaseModule
	deps Dependencies
}

// New creates the institutions module.
func New(deps Dependencies) *Module {
	if deps.Consortium == nil {
		deps.Consortium = &config.Consortium{}
	}
	return &Module{deps: deps}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "institutions"
}

// Boot mounts /app/institutions and /api/openalex.
func (m *Module) Boot(ctx context.Context, routes module.Routes, reg *registry.Registry) error {
	h := NewHandler(m.deps)
	routes.App.GET("/institutions", h.Page)
	routes.App.GET("/institutions/search", h.SearchFragment)
	routes.API.GET("/openalex/institutions", h.Search)
	routes.API.GET("/openalex/stats", h.Stats)
	return nil
}
