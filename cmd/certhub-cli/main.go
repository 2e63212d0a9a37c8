// Command certhub-cli runs maintenance tasks against the configured stores.
//
//	certhub-cli subscriptions:renew [--at 2024-06-01T00:00:00Z] [--config certhub.yaml]
//	certhub-cli migrate [--config certhub.yaml]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"certhub/internal/app"
	"certhub/internal/platform/config"
	"certhub/internal/platform/logger"
)

const usage = `usage: certhub-cli <command> [flags]

commands:
  subscriptions:renew   renew or expire subscriptions due at --at (default now)
  migrate               apply the database schema
`

var errUsage = errors.New("invalid usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, time.Now); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer, now func() time.Time) error {
	if len(args) == 0 {
		return errUsage
	}
	command, rest := args[0], args[1:]

	fs := flag.NewFlagSet(command, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	configPath := fs.String("config", "", "path to a YAML config file")
	at := fs.String("at", "", "reference time in RFC 3339 (subscriptions:renew only)")
	if err := fs.Parse(rest); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	switch command {
	case "subscriptions:renew":
		refTime := now()
		if *at != "" {
			parsed, err := time.Parse(time.RFC3339, *at)
			if err != nil {
				return fmt.Errorf("parse --at: %w", err)
			}
			refTime = parsed
		}
		return withApp(ctx, *configPath, func(a *app.App) error {
			if err := a.Subscriptions.RenewSubscriptions(ctx, refTime); err != nil {
				return err
			}
			fmt.Fprintf(out, "Subscriptions renewed at %s\n", refTime.UTC().Format(time.RFC3339))
			return nil
		})
	case "migrate":
		return withApp(ctx, *configPath, func(a *app.App) error {
			if a.DB == nil {
				return errors.New("database.url is not configured")
			}
			if err := a.Migrate(ctx); err != nil {
				return err
			}
			fmt.Fprintln(out, "Schema applied")
			return nil
		})
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, command)
	}
}

func withApp(ctx context.Context, configPath string, fn func(*app.App) error) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log, logCloser, err := logger.New(cfg.Logging)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	a, err := app.Build(ctx, cfg, log, prometheus.NewRegistry())
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}
