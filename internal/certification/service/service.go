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

	"certhub/internal/certification/metrics"
	"certhub/internal/certification/models"
	"certhub/internal/notification"
	dErrors "certhub/pkg/domain-errors"
	"certhub/pkg/platform/sentinel"
	"certhub/pkg/requestcontext"
)

var tracer = otel.Tracer("certhub/internal/certification/service")

type CertificationStore interface {
	Save(ctx context.Context, cert *models.Certification) error
	FindByID(ctx context.Context, id models.CertificationID) (*models.Certification, error)
}

type CourseStore interface {
	Save(ctx context.Context, course *models.Course) error
	FindByID(ctx context.Context, id models.CourseID) (*models.Course, error)
	FindAll(ctx context.Context) ([]*models.Course, error)
}

// Notifier receives domain events once the change they describe is saved.
type Notifier interface {
	Notify(ctx context.Context, event notification.Event) error
}

// Service orchestrates the certification aggregate and the course catalog.
// Every mutating call loads the aggregate, applies one domain operation and
// saves the whole aggregate back.
type Service struct {
	certifications CertificationStore
	courses        CourseStore
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

// WithClock overrides the fallback clock used when the context carries no
// request time.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

func New(certifications CertificationStore, courses CourseStore, opts ...Option) *Service {
	s := &Service{
		certifications: certifications,
		courses:        courses,
		notifier:       notification.NewSubject(),
		clock:          time.Now,
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

func (s *Service) loadCertification(ctx context.Context, id models.CertificationID) (*models.Certification, error) {
	cert, err := s.certifications.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "certification not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load certification")
	}
	return cert, nil
}

func (s *Service) saveCertification(ctx context.Context, cert *models.Certification) error {
	start := time.Now()
	err := s.certifications.Save(ctx, cert)
	if s.metrics != nil {
		s.metrics.ObserveSave(start)
	}
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.Wrap(err, dErrors.CodeNotFound, "certification or linked course not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save certification")
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

func startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// endSpan records err on span, if any, and ends it.
func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(dErrors.CodeOf(err)))
	}
	span.End()
}
