// Package server assembles the web application: middleware, core routes and
// the feature modules.
package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/univ-lehavre/talent-finder-sub000/internal/auth"
	"github.com/univ-lehavre/talent-finder-sub000/internal/config"
	"github.com/univ-lehavre/talent-finder-sub000/internal/handlers"
	"github.com/univ-lehavre/talent-finder-sub000/internal/middleware"
	"github.com/univ-lehavre/talent-finder-sub000/internal/module"
	"github.com/univ-lehavre/talent-finder-sub000/internal/registry"
	"github.com/univ-lehavre/talent-finder-sub000/web"
)

// AuthService is the magic link flow as seen by the web layer.
type AuthService interface {
	handlers.MagicLinkService
	middleware.Authenticator
}

// Dependencies holds everything the server needs that is built elsewhere.
type Dependencies struct {
	Config     config.Provider
	Auth       AuthService
	Health     handlers.HealthChecker
	Consortium *config.Consortium
	// Echo is optional; tests pass their own instance.
	Echo *echo.Echo
	// OnShutdown runs after the modules have stopped, in order.
	OnShutdown []func(context.Context) error
}

// Server holds the dependencies for the HTTP server.
type Server struct {
	E   *echo.Echo
	Cfg config.Provider

	auth       AuthService
	health     handlers.HealthChecker
	consortium *config.Consortium
	routes     module.Routes
	reg        *registry.Registry
	modules    []module.Module
	onShutdown []func(context.Context) error
}

// New creates the echo instance with the global middleware and the route
// groups. Routes are added by RegisterRoutes and InitModules.
func New(deps Dependencies) (*Server, error) {
	if deps.Config == nil {
		return nil, errors.New("server: config is required")
	}
	if deps.Auth == nil {
		return nil, errors.New("server: auth service is required")
	}
	if deps.Health == nil {
		return nil, errors.New("server: health checker is required")
	}
	if deps.Consortium == nil {
		deps.Consortium = &config.Consortium{}
	}

	e := deps.Echo
	if e == nil {
		e = echo.New()
	}
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = handlers.HTTPErrorHandler

	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(middleware.Logger)
	e.Use(middleware.AccessLog())

	store := sessions.NewCookieStore([]byte(deps.Config.GetSessionSecret()))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(auth.MaxSessionAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	e.Use(session.Middleware(store))
	e.Use(middleware.Preferences)
	e.Use(middleware.LoadUser(deps.Auth))

	e.StaticFS("/static", echo.MustSubFS(web.FS, "static"))

	return &Server{
		E:          e,
		Cfg:        deps.Config,
		auth:       deps.Auth,
		health:     deps.Health,
		consortium: deps.Consortium,
		routes: module.Routes{
			Public: e.Group(""),
			App:    e.Group("/app", middleware.RequireUser),
			API:    e.Group("/api"),
		},
		onShutdown: deps.OnShutdown,
	}, nil
}

// Routes returns the groups handed to modules.
func (s *Server) Routes() module.Routes {
	return s.routes
}
