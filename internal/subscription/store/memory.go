package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"certhub/internal/subscription/models"
	"certhub/pkg/platform/sentinel"
)

// InMemory is a mutex-guarded subscription store holding copies.
type InMemory struct {
	mu            sync.RWMutex
	subscriptions map[models.SubscriptionID]*models.Subscription
	nextID        models.SubscriptionID
}

func NewInMemory() *InMemory {
	return &InMemory{subscriptions: make(map[models.SubscriptionID]*models.Subscription)}
}

func (s *InMemory) Save(_ context.Context, sub *models.Subscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sub.ID().IsZero() {
		s.nextID++
		if err := sub.AssignID(s.nextID); err != nil {
			return err
		}
	} else if _, ok := s.subscriptions[sub.ID()]; !ok {
		return sentinel.ErrNotFound
	}
	s.subscriptions[sub.ID()] = sub.Clone()
	return nil
}

func (s *InMemory) FindByID(_ context.Context, id models.SubscriptionID) (*models.Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sub, ok := s.subscriptions[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return sub.Clone(), nil
}

// FindExpiringActiveWithAutoRenew returns active auto-renewing subscriptions
// whose end date is at or before at, ordered by id.
func (s *InMemory) FindExpiringActiveWithAutoRenew(_ context.Context, at time.Time) ([]*models.Subscription, error) {
	return s.filter(func(sub *models.Subscription) bool { return sub.DueForRenewal(at) }), nil
}

// FindCancelable returns subscriptions ending at or before at that are either
// cancelled or active without auto renewal, ordered by id.
func (s *InMemory) FindCancelable(_ context.Context, at time.Time) ([]*models.Subscription, error) {
	return s.filter(func(sub *models.Subscription) bool { return sub.DueForExpiry(at) }), nil
}

func (s *InMemory) filter(keep func(*models.Subscription) bool) []*models.Subscription {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.Subscription
	for _, sub := range s.subscriptions {
		if keep(sub) {
			out = append(out, sub.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}
