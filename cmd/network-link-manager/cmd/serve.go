package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/donaldgifford/network-link-manager/internal/api/handlers"
	mw "github.com/donaldgifford/network-link-manager/internal/api/middleware"
	"github.com/donaldgifford/network-link-manager/internal/config"
	"github.com/donaldgifford/network-link-manager/internal/engine"
	"github.com/donaldgifford/network-link-manager/internal/ingest"
	"github.com/donaldgifford/network-link-manager/internal/notify"
	"github.com/donaldgifford/network-link-manager/internal/session"
	"github.com/donaldgifford/network-link-manager/internal/telemetry"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Long: "Starts the HTTP API with session storage for reference datasets,\n" +
			"Prometheus metrics at /metrics and OpenAPI docs at /docs.",
		RunE: runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tp, shutdownTracing, err := telemetry.Setup(ctx, &cfg.Telemetry, Version, log)
	if err != nil {
		return err
	}

	sessions, err := session.NewStore(cfg.Sessions.Capacity, cfg.Sessions.IdleTTL, session.WithLogger(log))
	if err != nil {
		return fmt.Errorf("creating session store: %w", err)
	}
	sweeper, err := session.NewSweeper(sessions, cfg.Sessions.SweepInterval, log)
	if err != nil {
		return fmt.Errorf("creating session sweeper: %w", err)
	}

	eng := engine.NewEngine(
		ingest.NewReader(ingest.WithMaxRows(cfg.Limits.MaxRows)),
		newNotifier(cfg, log),
		engine.WithLogger(log),
		engine.WithTracerProvider(tp),
		engine.WithNotifyClean(cfg.Notifications.Discord.NotifyClean),
	)

	health := handlers.NewHealthHandler()
	e := newServer(cfg, log, health, sessions, eng)

	sweeper.Start()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Info("starting server", "addr", addr, "version", Version)

	errCh := make(chan error, 1)
	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	health.SetReady(true)

	select {
	case <-ctx.Done():
	case err := <-errCh:
		log.Error("server error", "error", err)
	}

	log.Info("shutting down server")
	health.SetReady(false)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	<-sweeper.Stop().Done()

	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Warn("flushing traces", "error", err)
	}

	log.Info("server stopped")
	return nil
}

func newServer(
	cfg *config.Config,
	log *slog.Logger,
	health *handlers.HealthHandler,
	sessions *session.Store,
	eng *engine.Engine,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	e.Use(
		mw.Recovery(log),
		mw.RequestLog(log),
		mw.Metrics(),
		mw.RateLimit(cfg.Limits.RateLimit.PerSecond, cfg.Limits.RateLimit.Burst),
	)

	e.GET("/healthz", health.Healthz)
	e.GET("/readyz", health.Readyz)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := humaecho.New(e, huma.DefaultConfig("Network Link Manager API", Version))
	handlers.RegisterSessionRoutes(api, handlers.NewSessionsHandler(sessions), cfg.Limits.MaxUploadBytes)
	handlers.RegisterAnalysisRoutes(api, handlers.NewAnalysisHandler(eng, sessions), cfg.Limits.MaxUploadBytes)

	return e
}

func newNotifier(cfg *config.Config, log *slog.Logger) notify.Notifier {
	d := cfg.Notifications.Discord
	if !d.Enabled {
		return notify.NewNoOpNotifier(log)
	}
	log.Info("discord notifications enabled", "notify_clean", d.NotifyClean)
	return notify.NewDiscordNotifier(d.WebhookURL)
}
