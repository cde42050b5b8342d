package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/afero"

	"github.com/univ-lehavre/talent-finder-sub000/internal/app"
	"github.com/univ-lehavre/talent-finder-sub000/internal/auth"
	"github.com/univ-lehavre/talent-finder-sub000/internal/config"
	"github.com/univ-lehavre/talent-finder-sub000/internal/database"
	"github.com/univ-lehavre/talent-finder-sub000/internal/email"
	"github.com/univ-lehavre/talent-finder-sub000/internal/github"
	"github.com/univ-lehavre/talent-finder-sub000/internal/gitstats"
	"github.com/univ-lehavre/talent-finder-sub000/internal/httpclient"
	"github.com/univ-lehavre/talent-finder-sub000/internal/logging"
	"github.com/univ-lehavre/talent-finder-sub000/internal/openalex"
	"github.com/univ-lehavre/talent-finder-sub000/internal/pubsub"
	"github.com/univ-lehavre/talent-finder-sub000/internal/registry"
	"github.com/univ-lehavre/talent-finder-sub000/internal/server"
)

func main() {
	cfg := config.New()
	logging.New()

	if err := run(context.Background(), cfg); err != nil {
		slog.Error("Server stopped with error", "event", "server_failure", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	tracer, shutdownTracing, err := pubsub.SetupTracing(ctx, pubsub.LoadTracingConfigFromEnv())
	if err != nil {
		return fmt.Errorf("tracing: %w", err)
	}
	bus := pubsub.NewWatermillBridge(pubsub.WithTracer(tracer))

	conn := database.NewConnection(cfg)
	if err := conn.Connect(ctx); err != nil {
		return err
	}
	if err := database.ApplySchema(ctx, conn); err != nil {
		_ = conn.Close(ctx)
		return err
	}
	conn.StartMonitoring()

	users, err := database.NewUserStore(conn, cfg)
	if err != nil {
		return err
	}
	consents, err := database.NewConsentStore(conn, cfg, nil, nil)
	if err != nil {
		return err
	}
	authEvents, err := database.NewAuditStore(conn, cfg)
	if err != nil {
		return err
	}

	emailer, err := email.NewEmailService(cfg)
	if err != nil {
		return fmt.Errorf("email: %w", err)
	}

	authService := auth.NewService(auth.Dependencies{
		Users:     users,
		Identity:  database.NewIdentityStore(cfg),
		Emailer:   emailer,
		Publisher: bus,
		BaseURL:   cfg.GetAppBaseURL(),
		LinkTTL:   cfg.GetMagicLinkTTL(),
	})

	consortium, err := config.LoadConsortium(cfg.GetConsortiumFile())
	if err != nil {
		slog.WarnContext(ctx, "Consortium file not loaded, continuing without members",
			"event", "consortium_load_failure", "path", cfg.GetConsortiumFile(), "error", err)
		consortium = &config.Consortium{}
	}

	openAlex := openalex.NewClient(cfg)
	checker := app.NewHealthChecker(database.NewInspector(conn), httpclient.New(), cfg.GetHealthPublicURL())

	s, err := server.New(server.Dependencies{
		Config:     cfg,
		Auth:       authService,
		Health:     checker,
		Consortium: consortium,
		OnShutdown: []func(context.Context) error{
			func(context.Context) error { return bus.Close() },
			shutdownTracing,
			conn.Close,
		},
	})
	if err != nil {
		return err
	}

	modules := app.NewModules(app.Dependencies{
		Publisher:         bus,
		Subscriber:        bus,
		ConsentRepository: consents,
		AuthEvents:        authEvents,
		Stats:             openalex.NewStatsService(openAlex, cfg.GetOpenAlexYears()),
		Search:            openAlex,
		Consortium:        consortium,
		Years:             cfg.GetOpenAlexYears(),
		Snapshots:         gitstats.NewStore(afero.NewOsFs(), cfg.GetGitStatsFile()),
		GitHub:            github.NewClient(cfg),
	})
	if err := s.InitModules(ctx, modules, registry.New(cfg)); err != nil {
		_ = s.Shutdown(ctx)
		return err
	}
	s.RegisterRoutes()

	return s.Start()
}
