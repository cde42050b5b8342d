// Package module defines the contract for self-contained application features.
package module

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/univ-lehavre/talent-finder-sub000/internal/registry"
)

// Routes are the groups a module may attach handlers to.
type Routes struct {
	// Public is mounted at the root and needs no session.
	Public *echo.Group
	// App is mounted at /app and requires a signed-in user.
	App *echo.Group
	// API is mounted at /api and returns JSON.
	API *echo.Group
}

// Module defines the contract for a self-contained application feature.
type Module interface {
	// Name returns a unique identifier for the module.
	Name() string

	// Register is called during startup to publish the module's services in
	// the registry.
	Register(reg *registry.Registry) error

	// Boot is called after every module has registered. Modules attach routes
	// and start background work here.
	Boot(ctx context.Context, routes Routes, reg *registry.Registry) error

	// Shutdown is called during graceful shutdown.
	Shutdown(ctx context.Context) error
}

// BaseModule provides no-op implementations for modules to embed.
type BaseModule struct{}

func (m *BaseModule) Register(reg *registry.Registry) error { return nil }
func (m *BaseModule) Boot(ctx context.Context, routes Routes, reg *registry.Registry) error {
	return nil
}
func (m *BaseModule) Shutdown(ctx context.Context) error { return nil }
