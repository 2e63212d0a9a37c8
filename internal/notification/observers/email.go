package observers

import (
	"context"
	"log/slog"

	"certhub/internal/notification"
)

// Email stands in for a mail gateway. It only logs what it would have sent.
type Email struct {
	from   string
	logger *slog.Logger
}

func NewEmail(from string, logger *slog.Logger) *Email {
	return &Email{from: from, logger: logger}
}

func (o *Email) Handle(ctx context.Context, event notification.Event) error {
	o.logger.InfoContext(ctx, "email notification sent for event "+string(event.Name),
		"from", o.from,
		"event_id", event.ID.String(),
		"aggregate_id", event.AggregateID,
	)
	return nil
}
