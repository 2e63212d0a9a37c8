package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"certhub/internal/notification"
	"certhub/internal/subscription/metrics"
	"certhub/internal/subscription/models"
	dErrors "certhub/pkg/domain-errors"
	"certhub/pkg/platform/sentinel"
	"certhub/pkg/requestcontext"
)

var tracer = otel.Tracer("certhub/internal/subscription/service")

type SubscriptionStore interface {
	Save(ctx context.Context, sub *models.Subscription) error
	FindByID(ctx context.Context, id models.SubscriptionID) (*models.Subscription, error)
	FindExpiringActiveWithAutoRenew(ctx context.Context, at time.Time) ([]*models.Subscription, error)
	FindCancelable(ctx context.Context, at time.Time) ([]*models.Subscription, error)
}

type CertificationChecker interface {
	CertificationExists(ctx context.Context, id int64) (bool, error)
}

type Notifier interface {
	Notify(ctx context.Context, event notification.Event) error
}

// Service runs the subscription lifecycle and the periodic renewal sweep.
type Service struct {
	subscriptions  SubscriptionStore
	certifications CertificationChecker
	notifier       Notifier
	logger         *slog.Logger
	metrics        *metrics.Metrics
	clock          func() time.Time
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithNotifier(n Notifier) Option {
	return func(s *Service) {
		s.notifier = n
	}
}

// WithCertificationChecker makes CreateSubscription reject unknown
// certifications before touching the store.
func WithCertificationChecker(c CertificationChecker) Option {
	return func(s *Service) {
		s.certifications = c
	}
}

// WithClock sets the clock used for new subscriptions and event timestamps
// when the context carries no request time.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

func New(subscriptions SubscriptionStore, opts ...Option) *Service {
	s := &Service{
		subscriptions: subscriptions,
		notifier:      notification.NewSubject(),
		clock:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) now(ctx context.Context) time.Time {
	if _, ok := ctx.Value(requestcontext.ContextKeyRequestTime).(time.Time); ok {
		return requestcontext.Now(ctx)
	}
	return s.clock()
}

func (s *Service) load(ctx context.Context, id models.SubscriptionID) (*models.Subscription, error) {
	sub, err := s.subscriptions.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "subscription not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load subscription")
	}
	return sub, nil
}

func (s *Service) save(ctx context.Context, sub *models.Subscription) error {
	if err := s.subscriptions.Save(ctx, sub); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.Wrap(err, dErrors.CodeNotFound, "subscription or certification not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save subscription")
	}
	return nil
}

func (s *Service) notify(ctx context.Context, event notification.Event) error {
	if err := s.notifier.Notify(ctx, event); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to deliver "+string(event.Name)+" notification")
	}
	return nil
}

func (s *Service) logAudit(ctx context.Context, event string, attributes ...any) {
	if s.logger == nil {
		return
	}
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		attributes = append(attributes, "request_id", requestID)
	}
	args := append(attributes, "event", event, "log_type", "audit")
	s.logger.InfoContext(ctx, event, args...)
}

func (s *Service) incrementTransition(to models.State) {
	if s.metrics != nil {
		s.metrics.IncrementTransition(string(to))
	}
}

func startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(dErrors.CodeOf(err)))
	}
	span.End()
}
