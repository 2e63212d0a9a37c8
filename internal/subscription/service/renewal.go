package service

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"certhub/internal/notification"
	dErrors "certhub/pkg/domain-errors"
)

// RenewSubscriptions runs the renewal sweep for reference time at.
//
// The renewal pass runs first: every active, auto-renewing subscription whose
// end date is at or before at is renewed for one more period. The expiry pass
// then expires subscriptions ending at or before at that are cancelled, or
// active without auto renewal. Each subscription is saved and announced
// before the next one is processed, and the first error aborts the sweep;
// work already saved stays saved, so rerunning the sweep is safe.
func (s *Service) RenewSubscriptions(ctx context.Context, at time.Time) (err error) {
	ctx, span := startSpan(ctx, "subscription.RenewSubscriptions",
		attribute.String("reference_time", at.UTC().Format(time.RFC3339)))
	start := time.Now()
	var renewed, expired int
	defer func() {
		if s.metrics != nil {
			s.metrics.ObserveSweep(start, renewed, expired, err)
		}
		endSpan(span, err)
	}()

	renewed, err = s.renewDue(ctx, at)
	if err != nil {
		return err
	}
	expired, err = s.expireDue(ctx, at)
	if err != nil {
		return err
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "subscription sweep finished",
			"reference_time", at,
			"renewed", renewed,
			"expired", expired,
		)
	}
	return nil
}

func (s *Service) renewDue(ctx context.Context, at time.Time) (int, error) {
	due, err := s.subscriptions.FindExpiringActiveWithAutoRenew(ctx, at)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to find renewable subscriptions")
	}

	count := 0
	for _, sub := range due {
		if err := sub.Renew(); err != nil {
			return count, err
		}
		if err := s.save(ctx, sub); err != nil {
			return count, err
		}
		count++
		s.logAudit(ctx, "subscription_renewed",
			"subscription_id", int64(sub.ID()),
			"end_date", sub.EndDate(),
		)
		if err := s.notify(ctx, notification.SubscriptionRenewed(int64(sub.ID()), s.now(ctx))); err != nil {
			return count, err
		}
	}
	return count, nil
}

func (s *Service) expireDue(ctx context.Context, at time.Time) (int, error) {
	due, err := s.subscriptions.FindCancelable(ctx, at)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to find expirable subscriptions")
	}

	count := 0
	for _, sub := range due {
		// The query result may be stale; only expire what still qualifies.
		if !sub.DueForExpiry(at) {
			if s.logger != nil {
				s.logger.DebugContext(ctx, "skipping subscription no longer due for expiry",
					"subscription_id", int64(sub.ID()),
					"state", string(sub.State()),
				)
			}
			continue
		}
		sub.Expire()
		if err := s.save(ctx, sub); err != nil {
			return count, err
		}
		count++
		s.logAudit(ctx, "subscription_expired", "subscription_id", int64(sub.ID()))
		if err := s.notify(ctx, notification.SubscriptionExpired(int64(sub.ID()), s.now(ctx))); err != nil {
			return count, err
		}
	}
	return count, nil
}
