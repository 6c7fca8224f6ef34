// Command drillboard runs the local companion service for the
// volleyball drill catalog.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/volleykit/drillboard/internal/adapters/http/api"
	"github.com/volleykit/drillboard/internal/adapters/http/site"
	"github.com/volleykit/drillboard/internal/adapters/localstore"
	"github.com/volleykit/drillboard/internal/adapters/platform"
	app "github.com/volleykit/drillboard/internal/app"
	"github.com/volleykit/drillboard/internal/config"
	"github.com/volleykit/drillboard/internal/session"
	"github.com/volleykit/drillboard/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 15 * time.Second
)

func main() {
	// Disable default Go metrics collection; the custom registry
	// carries only our own metrics.
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// Optional .env for local development.
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	remote := platform.New(cfg.PlatformURL, cfg.PlatformKey,
		platform.WithLogger(log.Named("platform")),
		platform.WithTimeout(time.Duration(cfg.PlatformTimeoutMS)*time.Millisecond),
		platform.WithRowLimit(cfg.RowLimit),
	)

	var selectionOpts []localstore.Option
	if cfg.SelectionPath != "" {
		selectionOpts = append(selectionOpts, localstore.WithPath(cfg.SelectionPath))
	}

	svc := app.New(
		app.WithLogger(log.Named("app")),
		app.WithPlatform(remote),
		app.WithSessionContext(session.NewContext()),
		app.WithSelectionPort(localstore.New(selectionOpts...)),
	)
	if err := svc.Start(ctx); err != nil {
		os.Stderr.WriteString("failed to start service: " + err.Error() + "\n")
		return
	}
	defer svc.Stop()

	// HTTP mux and routes.
	mux := http.NewServeMux()
	site.Register(ctx, mux)
	api.NewServer(svc).Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}
	log.Info(ctx, "server stopped")
}
