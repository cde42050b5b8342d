// Package consent mounts the consent pages and publishes the consent service
// for the rest of the application.
package consent

import (
	"context"

	"github.com/univ-lehavre/talent-finder-sub000/internal/consent"
	"github.com/univ-lehavre/talent-finder-sub000/internal/domain"
	"github.com/univ-lehavre/talent-finder-sub000/internal/middleware"
	"github.com/univ-lehavre/talent-finder-sub000/internal/module"
	"github.com/univ-lehavre/talent-finder-sub000/internal/pubsub"
	"github.com/univ-lehavre/talent-finder-sub000/internal/registry"
)

// ServiceKey is the registry key of the *consent.Service.
const ServiceKey registry.Key[*consent.Service] = "consent.service"

// Dependencies holds the services required by the consent module.
type Dependencies struct {
	Repository domain.ConsentRepository
	Publisher  pubsub.Publisher
}

// Module owns the consent service and its routes.
type Module struct {
	module.BaseModule
	deps    Dependencies
	service *consent.Service
}

// New creates the consent module.
func New(deps Dependencies) *Module {
	return &Module{deps: deps}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "consent"
}

// Register creates the consent service and publishes it.
func (m *Module) Register(reg *registry.Registry) error {
	m.service = consent.NewService(m.deps.Repository, m.deps.Publisher)
	registry.Set(reg, ServiceKey, m.service)
	return nil
}

// Boot mounts /app/consent and /api/consent.
func (m *Module) Boot(ctx context.Context, routes module.Routes, reg *registry.Registry) error {
	h := NewHandler(m.service)
	routes.App.GET("/consent", h.Get)
	routes.App.POST("/consent/:type/:action", h.Post)
	routes.API.GET("/consent", h.Current, middleware.RequireUser)
	return nil
}
