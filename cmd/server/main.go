package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"certhub/internal/app"
	certHandler "certhub/internal/certification/handler"
	"certhub/internal/platform/config"
	"certhub/internal/platform/httpserver"
	"certhub/internal/platform/logger"
	"certhub/internal/platform/metrics"
	subHandler "certhub/internal/subscription/handler"
	httptransport "certhub/internal/transport/http"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run wires dependencies, serves HTTP and shuts down on SIGINT or SIGTERM.
func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log, logCloser, err := logger.New(cfg.Logging)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := metrics.NewRegistry()
	a, err := app.Build(ctx, cfg, log, reg)
	if err != nil {
		return fmt.Errorf("build application: %w", err)
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.Error("failed to release resources", "error", err)
		}
	}()
	if err := a.Migrate(ctx); err != nil {
		return err
	}

	checks := map[string]httptransport.HealthCheck{}
	if a.DB != nil {
		checks["database"] = a.DB.PingContext
	}
	if a.Redis != nil {
		checks["redis"] = a.Redis.Health
	}
	if cfg.Server.AdminToken == "" {
		log.Warn("server.admin_token not set, admin routes are disabled")
	}

	router := httptransport.NewRouter(log, httptransport.Options{
		CORSOrigins:  cfg.Server.CORSOrigins,
		HealthChecks: checks,
		Registry:     reg,
		HTTPMetrics:  metrics.NewHTTP(reg),
	},
		certHandler.New(a.Certifications, log),
		subHandler.New(a.Subscriptions, log, cfg.Server.AdminToken),
	)
	srv := httpserver.New(cfg.Server.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting certhub", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		log.Info("shutting down", "timeout", cfg.Server.ShutdownTimeout)
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
