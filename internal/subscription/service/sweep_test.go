package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"certhub/internal/notification"
	"certhub/internal/subscription/models"
	"certhub/internal/subscription/store"
	"certhub/pkg/testutil"
)

type recordingObserver struct {
	events []notification.Event
}

func (r *recordingObserver) Handle(_ context.Context, e notification.Event) error {
	r.events = append(r.events, e)
	return nil
}

func (r *recordingObserver) named(name notification.EventName) []notification.Event {
	var out []notification.Event
	for _, e := range r.events {
		if e.Name == name {
			out = append(out, e)
		}
	}
	return out
}

func seed(t *testing.T, s *store.InMemory, state models.State, end time.Time, autoRenew bool) models.SubscriptionID {
	t.Helper()
	sub, err := models.New(0, 7, 3, models.TypeMonthly, state, end.AddDate(0, -1, 0), end, autoRenew)
	require.NoError(t, err)
	require.NoError(t, s.Save(context.Background(), sub))
	return sub.ID()
}

func TestRenewalSweepAgainstInMemoryStore(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	subs := store.NewInMemory()
	observer := &recordingObserver{}
	svc := New(subs, WithNotifier(notification.NewSubject(observer)))

	a := seed(t, subs, models.StateActive, now.AddDate(0, 0, -1), true)
	b := seed(t, subs, models.StateActive, now.AddDate(0, 0, -1), false)
	c := seed(t, subs, models.StateCancelled, now.AddDate(0, 0, -1), true)
	future := seed(t, subs, models.StateActive, now.AddDate(0, 0, 5), false)
	paused := seed(t, subs, models.StatePaused, now.AddDate(0, 0, -1), true)

	testutil.When(t, "the sweep runs", func(t *testing.T) {
		require.NoError(t, svc.RenewSubscriptions(ctx, now))

		testutil.Then(t, "the auto-renewing subscription gets a new period", func(t *testing.T) {
			got, err := svc.GetSubscription(ctx, a)
			require.NoError(t, err)
			assert.Equal(t, models.StateActive, got.State())
			assert.True(t, got.EndDate().After(now))
			assert.Equal(t, now.AddDate(0, 0, -1), got.StartDate())
			renewed := observer.named(notification.EventSubscriptionRenewed)
			require.Len(t, renewed, 1)
			assert.Equal(t, int64(a), renewed[0].AggregateID)
		})

		testutil.Then(t, "the lapsed and cancelled subscriptions expire", func(t *testing.T) {
			for _, id := range []models.SubscriptionID{b, c} {
				got, err := svc.GetSubscription(ctx, id)
				require.NoError(t, err)
				assert.Equal(t, models.StateExpired, got.State())
			}
			expired := observer.named(notification.EventSubscriptionExpired)
			require.Len(t, expired, 2)
			assert.Equal(t, int64(b), expired[0].AggregateID)
			assert.Equal(t, int64(c), expired[1].AggregateID)
		})

		testutil.Then(t, "subscriptions outside both passes are untouched", func(t *testing.T) {
			got, err := svc.GetSubscription(ctx, future)
			require.NoError(t, err)
			assert.Equal(t, models.StateActive, got.State())
			got, err = svc.GetSubscription(ctx, paused)
			require.NoError(t, err)
			assert.Equal(t, models.StatePaused, got.State())
		})
	})

	testutil.When(t, "the sweep runs again at the same time", func(t *testing.T) {
		before := len(observer.events)
		require.NoError(t, svc.RenewSubscriptions(ctx, now))
		assert.Len(t, observer.events, before)
	})
}

func TestRenewalSweepWithNothingDue(t *testing.T) {
	observer := &recordingObserver{}
	svc := New(store.NewInMemory(), WithNotifier(notification.NewSubject(observer)))
	require.NoError(t, svc.RenewSubscriptions(context.Background(), time.Now()))
	assert.Empty(t, observer.events)
}
