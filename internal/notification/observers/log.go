package observers

import (
	"context"
	"log/slog"

	"certhub/internal/notification"
	"certhub/pkg/requestcontext"
)

// Log records every event as a structured log line.
type Log struct {
	logger *slog.Logger
}

func NewLog(logger *slog.Logger) *Log {
	return &Log{logger: logger}
}

func (o *Log) Handle(ctx context.Context, event notification.Event) error {
	o.logger.InfoContext(ctx, "domain event",
		"event", string(event.Name),
		"event_id", event.ID.String(),
		"aggregate_type", string(event.AggregateType),
		"aggregate_id", event.AggregateID,
		"request_id", requestcontext.RequestID(ctx),
		"log_type", "audit",
	)
	return nil
}
