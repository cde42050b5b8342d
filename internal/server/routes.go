package server

import (
	"github.com/univ-lehavre/talent-finder-sub000/internal/handlers"
	"github.com/univ-lehavre/talent-finder-sub000/internal/middleware"
	consentmodule "github.com/univ-lehavre/talent-finder-sub000/internal/modules/consent"
	"github.com/univ-lehavre/talent-finder-sub000/internal/modules/repository"
	"github.com/univ-lehavre/talent-finder-sub000/internal/registry"
)

// RegisterRoutes sets up the routes that do not belong to a module. Call it
// after InitModules so the dashboard can find the module services.
func (s *Server) RegisterRoutes() {
	homeHandler := handlers.NewHomeHandler(s.consortium)
	authHandler := handlers.NewAuthHandler(s.auth)
	healthHandler := handlers.NewHealthHandler(s.health)
	dashboardHandler := s.dashboardHandler()
	rateLimiter := middleware.RateLimiter(middleware.LinkRequestsPerMinute, authHandler.LoginRateLimited)

	s.E.GET("/", homeHandler.HomeGet)

	authGroup := s.E.Group("/auth")
	authGroup.GET("/login", authHandler.LoginGet)
	authGroup.POST("/login", authHandler.LoginPost, rateLimiter)
	authGroup.GET("/sent", authHandler.SentGet)
	authGroup.GET("/magic", authHandler.MagicGet)
	authGroup.POST("/logout", authHandler.LogoutPost)

	s.E.GET("/settings", handlers.SettingsGet)
	s.E.POST("/settings", handlers.SettingsPost)

	s.E.GET("/health", healthHandler.HealthGet)
	s.E.GET("/health/live", healthHandler.LiveGet)

	s.routes.App.GET("/dashboard", dashboardHandler.DashboardGet)
}

func (s *Server) dashboardHandler() *handlers.DashboardHandler {
	var (
		consents  handlers.ConsentOverview
		snapshots handlers.SnapshotSource
	)
	if s.reg != nil {
		if svc, ok := registry.Get(s.reg, consentmodule.ServiceKey); ok && svc != nil {
			consents = svc
		}
		if src, ok := registry.Get(s.reg, repository.SnapshotKey); ok {
			snapshots = src
		}
	}
	return handlers.NewDashboardHandler(consents, snapshots)
}
