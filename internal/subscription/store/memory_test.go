package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"certhub/internal/subscription/models"
	"certhub/pkg/platform/sentinel"
)

var now = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

type SubscriptionStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func TestSubscriptionStoreSuite(t *testing.T) {
	suite.Run(t, new(SubscriptionStoreSuite))
}

func (s *SubscriptionStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func (s *SubscriptionStoreSuite) put(state models.State, autoRenew bool, end time.Time) *models.Subscription {
	sub, err := models.New(0, 1, 1, models.TypeMonthly, state, end.AddDate(0, -1, 0), end, autoRenew)
	s.Require().NoError(err)
	s.Require().NoError(s.store.Save(s.ctx, sub))
	return sub
}

func (s *SubscriptionStoreSuite) ids(subs []*models.Subscription) []models.SubscriptionID {
	out := make([]models.SubscriptionID, 0, len(subs))
	for _, sub := range subs {
		out = append(out, sub.ID())
	}
	return out
}

func (s *SubscriptionStoreSuite) TestSaveAndFind() {
	sub := s.put(models.StateActive, true, now)
	s.Equal(models.SubscriptionID(1), sub.ID())

	s.Require().NoError(sub.Pause())
	s.Require().NoError(s.store.Save(s.ctx, sub))

	found, err := s.store.FindByID(s.ctx, sub.ID())
	s.Require().NoError(err)
	s.Equal(models.StatePaused, found.State())

	_, err = s.store.FindByID(s.ctx, 99)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *SubscriptionStoreSuite) TestSweepQueries() {
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	renewA := s.put(models.StateActive, true, past)
	renewB := s.put(models.StateActive, true, now)
	s.put(models.StateActive, true, future)
	manual := s.put(models.StateActive, false, past)
	cancelled := s.put(models.StateCancelled, true, past)
	s.put(models.StateCancelled, false, future)
	s.put(models.StatePaused, true, past)
	s.put(models.StateExpired, false, past)

	renewable, err := s.store.FindExpiringActiveWithAutoRenew(s.ctx, now)
	s.Require().NoError(err)
	s.Equal([]models.SubscriptionID{renewA.ID(), renewB.ID()}, s.ids(renewable))

	cancelable, err := s.store.FindCancelable(s.ctx, now)
	s.Require().NoError(err)
	s.Equal([]models.SubscriptionID{manual.ID(), cancelled.ID()}, s.ids(cancelable))
}
