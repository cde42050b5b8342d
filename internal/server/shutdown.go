package server

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

// waitForShutdown is closed when an interrupt or terminate signal is received.
func waitForShutdown() <-chan os.Signal {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	return quit
}

// Shutdown stops accepting requests, then stops the modules and runs the
// shutdown hooks. Every step runs even when an earlier one fails.
func (s *Server) Shutdown(ctx context.Context) error {
	var errs []error
	if err := s.E.Shutdown(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := s.shutdownModules(ctx); err != nil {
		errs = append(errs, err)
	}
	for _, fn := range s.onShutdown {
		if err := fn(ctx); err != nil {
			slog.ErrorContext(ctx, "Shutdown hook failed", "event", "shutdown_hook_failure", "error", err)
			errs = append(errs, err)
		}
	}
	s.onShutdown = nil
	return errors.Join(errs...)
}
