package server

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/univ-lehavre/talent-finder-sub000/internal/module"
	"github.com/univ-lehavre/talent-finder-sub000/internal/registry"
)

// InitModules registers every module, then boots them in the same order.
// Booting starts only once all services are in the registry, so modules may
// look each other up.
func (s *Server) InitModules(ctx context.Context, modules []module.Module, reg *registry.Registry) error {
	s.reg = reg

	for _, m := range modules {
		if err := m.Register(reg); err != nil {
			return fmt.Errorf("registering module %s: %w", m.Name(), err)
		}
		slog.DebugContext(ctx, "Module registered", "event", "module_registered", "module", m.Name())
	}

	for i, m := range modules {
		if err := m.Boot(ctx, s.routes, reg); err != nil {
			// Stop what already started before reporting.
			s.modules = modules[:i]
			_ = s.shutdownModules(ctx)
			return fmt.Errorf("booting module %s: %w", m.Name(), err)
		}
		slog.InfoContext(ctx, "Module booted", "event", "module_booted", "module", m.Name())
	}

	s.modules = modules
	return nil
}

// shutdownModules stops the modules in reverse boot order.
func (s *Server) shutdownModules(ctx context.Context) error {
	var firstErr error
	for i := len(s.modules) - 1; i >= 0; i-- {
		m := s.modules[i]
		if err := m.Shutdown(ctx); err != nil {
			slog.ErrorContext(ctx, "Module shutdown failed", "event", "module_shutdown_failure", "module", m.Name(), "error", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	s.modules = nil
	return firstErr
}
