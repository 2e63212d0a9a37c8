package observers

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"certhub/internal/notification"
)

// DefaultStream is the stream key used when none is configured.
const DefaultStream = "certhub:events"

// streamAdder is the subset of the go-redis client the observer needs.
type streamAdder interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
}

// RedisStream appends events to a Redis stream for out-of-process consumers.
type RedisStream struct {
	client streamAdder
	stream string
	maxLen int64
}

type RedisStreamOption func(*RedisStream)

// WithMaxLen caps the stream length approximately (XADD MAXLEN ~).
func WithMaxLen(n int64) RedisStreamOption {
	return func(o *RedisStream) {
		o.maxLen = n
	}
}

func NewRedisStream(client streamAdder, stream string, opts ...RedisStreamOption) *RedisStream {
	if stream == "" {
		stream = DefaultStream
	}
	o := &RedisStream{client: client, stream: stream}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *RedisStream) Handle(ctx context.Context, event notification.Event) error {
	args := &redis.XAddArgs{
		Stream: o.stream,
		Values: map[string]any{
			"id":             event.ID.String(),
			"name":           string(event.Name),
			"aggregate_type": string(event.AggregateType),
			"aggregate_id":   strconv.FormatInt(event.AggregateID, 10),
			"occurred_at":    event.OccurredAt.Format(time.RFC3339Nano),
		},
	}
	if o.maxLen > 0 {
		args.MaxLen = o.maxLen
		args.Approx = true
	}
	if err := o.client.XAdd(ctx, args).Err(); err != nil {
		return fmt.Errorf("append event to redis stream: %w", err)
	}
	return nil
}
