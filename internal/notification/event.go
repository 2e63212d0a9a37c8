package notification

import (
	"time"

	"github.com/google/uuid"
)

// EventName identifies a domain event on the wire.
type EventName string

const (
	EventCertificationPublished EventName = "certification.published"
	EventCertificationArchived  EventName = "certification.archived"
	EventSubscriptionActivated  EventName = "subscription.activated"
	EventSubscriptionRenewed    EventName = "subscription.renewed"
	EventSubscriptionExpired    EventName = "subscription.expired"
	EventSubscriptionPaused     EventName = "subscription.paused"
	EventSubscriptionCancelled  EventName = "subscription.cancelled"
)

// AggregateType names the kind of aggregate an event refers to.
type AggregateType string

const (
	AggregateCertification AggregateType = "certification"
	AggregateSubscription  AggregateType = "subscription"
)

// Event is a domain event. It carries only the identity of the aggregate it
// refers to; consumers load anything else they need.
type Event struct {
	ID            uuid.UUID     `json:"id"`
	Name          EventName     `json:"name"`
	AggregateType AggregateType `json:"aggregate_type"`
	AggregateID   int64         `json:"aggregate_id"`
	OccurredAt    time.Time     `json:"occurred_at"`
}

func newEvent(name EventName, aggregateType AggregateType, aggregateID int64, at time.Time) Event {
	return Event{
		ID:            uuid.New(),
		Name:          name,
		AggregateType: aggregateType,
		AggregateID:   aggregateID,
		OccurredAt:    at.UTC(),
	}
}

func CertificationPublished(certificationID int64, at time.Time) Event {
	return newEvent(EventCertificationPublished, AggregateCertification, certificationID, at)
}

func CertificationArchived(certificationID int64, at time.Time) Event {
	return newEvent(EventCertificationArchived, AggregateCertification, certificationID, at)
}

func SubscriptionActivated(subscriptionID int64, at time.Time) Event {
	return newEvent(EventSubscriptionActivated, AggregateSubscription, subscriptionID, at)
}

func SubscriptionRenewed(subscriptionID int64, at time.Time) Event {
	return newEvent(EventSubscriptionRenewed, AggregateSubscription, subscriptionID, at)
}

func SubscriptionExpired(subscriptionID int64, at time.Time) Event {
	return newEvent(EventSubscriptionExpired, AggregateSubscription, subscriptionID, at)
}

func SubscriptionPaused(subscriptionID int64, at time.Time) Event {
	return newEvent(EventSubscriptionPaused, AggregateSubscription, subscriptionID, at)
}

func SubscriptionCancelled(subscriptionID int64, at time.Time) Event {
	return newEvent(EventSubscriptionCancelled, AggregateSubscription, subscriptionID, at)
}
