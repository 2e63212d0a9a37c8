package service

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"certhub/internal/notification"
	"certhub/internal/subscription/models"
	dErrors "certhub/pkg/domain-errors"
)

// CreateSubscription starts an active subscription for one period from now.
func (s *Service) CreateSubscription(ctx context.Context, userID, certificationID int64, subType models.Type, autoRenew bool) (_ *models.Subscription, err error) {
	ctx, span := startSpan(ctx, "subscription.Create",
		attribute.Int64("certification.id", certificationID))
	defer func() { endSpan(span, err) }()

	now := s.now(ctx)
	sub, err := models.Start(userID, certificationID, subType, autoRenew, now)
	if err != nil {
		return nil, err
	}
	if s.certifications != nil {
		exists, err := s.certifications.CertificationExists(ctx, certificationID)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check certification")
		}
		if !exists {
			return nil, dErrors.New(dErrors.CodeNotFound, "certification not found")
		}
	}
	if err := s.save(ctx, sub); err != nil {
		return nil, err
	}

	s.logAudit(ctx, "subscription_created",
		"subscription_id", int64(sub.ID()),
		"user_id", userID,
		"certification_id", certificationID,
		"type", string(subType),
		"auto_renew", autoRenew,
	)
	s.incrementTransition(models.StateActive)
	if err := s.notify(ctx, notification.SubscriptionActivated(int64(sub.ID()), now)); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *Service) GetSubscription(ctx context.Context, id models.SubscriptionID) (*models.Subscription, error) {
	return s.load(ctx, id)
}

// PauseSubscription suspends an active subscription.
func (s *Service) PauseSubscription(ctx context.Context, id models.SubscriptionID) (*models.Subscription, error) {
	return s.transition(ctx, id, "subscription.Pause", (*models.Subscription).Pause, notification.SubscriptionPaused)
}

// CancelSubscription stops a subscription; the sweep expires it at its end date.
func (s *Service) CancelSubscription(ctx context.Context, id models.SubscriptionID) (*models.Subscription, error) {
	return s.transition(ctx, id, "subscription.Cancel", (*models.Subscription).Cancel, notification.SubscriptionCancelled)
}

// ActivateSubscription resumes a paused subscription. Activating an active
// subscription is a no-op.
func (s *Service) ActivateSubscription(ctx context.Context, id models.SubscriptionID) (*models.Subscription, error) {
	return s.transition(ctx, id, "subscription.Activate", (*models.Subscription).Activate, notification.SubscriptionActivated)
}

func (s *Service) transition(
	ctx context.Context,
	id models.SubscriptionID,
	spanName string,
	apply func(*models.Subscription) error,
	event func(int64, time.Time) notification.Event,
) (_ *models.Subscription, err error) {
	ctx, span := startSpan(ctx, spanName, attribute.Int64("subscription.id", int64(id)))
	defer func() { endSpan(span, err) }()

	sub, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	from := sub.State()
	if err := apply(sub); err != nil {
		return nil, err
	}
	if sub.State() == from {
		return sub, nil
	}
	if err := s.save(ctx, sub); err != nil {
		return nil, err
	}

	s.logAudit(ctx, "subscription_state_changed",
		"subscription_id", int64(id),
		"from", string(from),
		"to", string(sub.State()),
	)
	s.incrementTransition(sub.State())
	if err := s.notify(ctx, event(int64(id), s.now(ctx))); err != nil {
		return nil, err
	}
	return sub, nil
}
