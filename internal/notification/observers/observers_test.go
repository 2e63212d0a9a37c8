package observers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"certhub/internal/notification"
	"certhub/pkg/requestcontext"
)

var occurredAt = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

type fakeStream struct {
	args []*redis.XAddArgs
	err  error
}

func (f *fakeStream) XAdd(_ context.Context, a *redis.XAddArgs) *redis.StringCmd {
	f.args = append(f.args, a)
	return redis.NewStringResult("1-0", f.err)
}

type fakeProducer struct {
	records []*kgo.Record
	err     error
}

func (f *fakeProducer) ProduceSync(_ context.Context, rs ...*kgo.Record) kgo.ProduceResults {
	f.records = append(f.records, rs...)
	results := make(kgo.ProduceResults, 0, len(rs))
	for _, r := range rs {
		results = append(results, kgo.ProduceResult{Record: r, Err: f.err})
	}
	return results
}

func TestLogObserver(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	ctx := requestcontext.WithRequestID(context.Background(), "req-1")

	err := NewLog(logger).Handle(ctx, notification.SubscriptionRenewed(7, occurredAt))
	require.NoError(t, err)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "subscription.renewed", line["event"])
	assert.Equal(t, float64(7), line["aggregate_id"])
	assert.Equal(t, "req-1", line["request_id"])
	assert.Equal(t, "audit", line["log_type"])
}

func TestEmailObserver(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	err := NewEmail("noreply@example.com", logger).Handle(context.Background(), notification.CertificationPublished(3, occurredAt))
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "email notification sent for event certification.published")
	assert.Contains(t, buf.String(), "from=noreply@example.com")
}

func TestRedisStreamObserver(t *testing.T) {
	t.Run("appends event fields to the configured stream", func(t *testing.T) {
		client := &fakeStream{}
		o := NewRedisStream(client, "events", WithMaxLen(1000))

		event := notification.SubscriptionExpired(42, occurredAt)
		require.NoError(t, o.Handle(context.Background(), event))

		require.Len(t, client.args, 1)
		args := client.args[0]
		assert.Equal(t, "events", args.Stream)
		assert.Equal(t, int64(1000), args.MaxLen)
		assert.True(t, args.Approx)
		values, ok := args.Values.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "subscription.expired", values["name"])
		assert.Equal(t, "42", values["aggregate_id"])
		assert.Equal(t, "subscription", values["aggregate_type"])
		assert.Equal(t, event.ID.String(), values["id"])
	})

	t.Run("defaults the stream key", func(t *testing.T) {
		client := &fakeStream{}
		require.NoError(t, NewRedisStream(client, "").Handle(context.Background(), notification.SubscriptionPaused(1, occurredAt)))
		assert.Equal(t, DefaultStream, client.args[0].Stream)
		assert.Zero(t, client.args[0].MaxLen)
	})

	t.Run("propagates client errors", func(t *testing.T) {
		boom := errors.New("connection refused")
		err := NewRedisStream(&fakeStream{err: boom}, "").Handle(context.Background(), notification.SubscriptionPaused(1, occurredAt))
		require.ErrorIs(t, err, boom)
	})
}

func TestKafkaObserver(t *testing.T) {
	t.Run("produces a JSON record keyed by aggregate", func(t *testing.T) {
		p := &fakeProducer{}
		event := notification.CertificationArchived(9, occurredAt)

		require.NoError(t, NewKafka(p, "").Handle(context.Background(), event))

		require.Len(t, p.records, 1)
		rec := p.records[0]
		assert.Equal(t, DefaultTopic, rec.Topic)
		assert.Equal(t, "certification:9", string(rec.Key))
		require.Len(t, rec.Headers, 1)
		assert.Equal(t, "certification.archived", string(rec.Headers[0].Value))

		var decoded notification.Event
		require.NoError(t, json.Unmarshal(rec.Value, &decoded))
		assert.Equal(t, event.ID, decoded.ID)
		assert.Equal(t, event.Name, decoded.Name)
		assert.True(t, event.OccurredAt.Equal(decoded.OccurredAt))
	})

	t.Run("propagates produce errors", func(t *testing.T) {
		boom := errors.New("broker down")
		err := NewKafka(&fakeProducer{err: boom}, "topic").Handle(context.Background(), notification.SubscriptionRenewed(1, occurredAt))
		require.ErrorIs(t, err, boom)
	})
}

func TestObserversFanOutThroughSubject(t *testing.T) {
	stream := &fakeStream{}
	producer := &fakeProducer{err: errors.New("broker down")}
	after := &fakeStream{}
	subject := notification.NewSubject(
		NewRedisStream(stream, ""),
		NewKafka(producer, ""),
		NewRedisStream(after, ""),
	)

	err := subject.Notify(context.Background(), notification.SubscriptionRenewed(5, occurredAt))

	require.Error(t, err)
	assert.Len(t, stream.args, 1)
	assert.Empty(t, after.args, "observers after a failing one are not invoked")
}
