// Package app assembles stores, observers and services from configuration.
// Both the HTTP server and the CLI start from Build.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	certMetrics "certhub/internal/certification/metrics"
	certService "certhub/internal/certification/service"
	certStore "certhub/internal/certification/store/certification"
	courseStore "certhub/internal/certification/store/course"
	"certhub/internal/notification"
	"certhub/internal/notification/observers"
	"certhub/internal/platform/config"
	"certhub/internal/platform/postgres"
	"certhub/internal/platform/redis"
	"certhub/internal/subscription/adapters"
	subMetrics "certhub/internal/subscription/metrics"
	subService "certhub/internal/subscription/service"
	subStore "certhub/internal/subscription/store"
)

// App holds the wired services and the resources they depend on.
type App struct {
	Certifications *certService.Service
	Subscriptions  *subService.Service
	Events         *notification.Subject

	// DB and Redis are nil when the corresponding backend is not configured.
	DB    *sql.DB
	Redis *redis.Client

	closers []io.Closer
}

// Build connects configured backends and wires the services. With no
// database URL the stores are in memory.
func Build(ctx context.Context, cfg config.Config, logger *slog.Logger, reg prometheus.Registerer) (_ *App, err error) {
	a := &App{}
	defer func() {
		if err != nil {
			_ = a.Close()
		}
	}()

	var (
		certifications certService.CertificationStore
		courses        certService.CourseStore
		subscriptions  subService.SubscriptionStore
	)
	if cfg.Database.URL != "" {
		db, err := postgres.Open(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		a.DB = db
		a.closers = append(a.closers, db)
		certifications = certStore.NewPostgres(db)
		courses = courseStore.NewPostgres(db)
		subscriptions = subStore.NewPostgres(db)
	} else {
		logger.WarnContext(ctx, "database.url not set, using in-memory stores")
		certifications = certStore.NewInMemory()
		courses = courseStore.NewInMemory()
		subscriptions = subStore.NewInMemory()
	}

	events, err := a.buildObservers(ctx, cfg.Notifications, logger)
	if err != nil {
		return nil, err
	}
	a.Events = events

	a.Certifications = certService.New(certifications, courses,
		certService.WithLogger(logger),
		certService.WithMetrics(certMetrics.New(reg)),
		certService.WithNotifier(events),
	)
	a.Subscriptions = subService.New(subscriptions,
		subService.WithLogger(logger),
		subService.WithMetrics(subMetrics.New(reg)),
		subService.WithNotifier(events),
		subService.WithCertificationChecker(adapters.NewCertificationChecker(a.Certifications)),
	)
	return a, nil
}

// buildObservers attaches observers in a fixed order: log, email, then the
// optional Redis stream and Kafka sinks.
func (a *App) buildObservers(ctx context.Context, cfg config.Notifications, logger *slog.Logger) (*notification.Subject, error) {
	subject := notification.NewSubject(
		observers.NewLog(logger),
		observers.NewEmail(cfg.EmailFrom, logger),
	)

	rdb, err := redis.New(ctx, cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	if rdb != nil {
		a.Redis = rdb
		a.closers = append(a.closers, rdb)
		subject.Attach(observers.NewRedisStream(rdb, cfg.RedisStream, observers.WithMaxLen(cfg.RedisStreamMaxLen)))
	}

	if len(cfg.KafkaBrokers) > 0 {
		client, err := observers.NewKafkaClient(cfg.KafkaBrokers)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, closerFunc(func() error {
			client.Close()
			return nil
		}))
		if err := observers.EnsureTopic(ctx, client, cfg.KafkaTopic); err != nil {
			return nil, err
		}
		subject.Attach(observers.NewKafka(client, cfg.KafkaTopic))
	}

	logger.InfoContext(ctx, "notification observers attached", "count", subject.Len())
	return subject, nil
}

// Migrate applies the schema when a database is configured.
func (a *App) Migrate(ctx context.Context) error {
	if a.DB == nil {
		return nil
	}
	return postgres.Migrate(ctx, a.DB)
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i].Close())
	}
	a.closers = nil
	return errors.Join(errs...)
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }
