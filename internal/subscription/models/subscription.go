package models

import (
	"time"

	dErrors "certhub/pkg/domain-errors"
)

// SubscriptionID is the store-assigned identity. Zero means not yet persisted.
type SubscriptionID int64

func (id SubscriptionID) IsZero() bool { return id == 0 }

// Type selects the length of one subscription period.
type Type string

const (
	TypeMonthly Type = "monthly"
	TypeYearly  Type = "yearly"
)

func (t Type) IsValid() bool {
	return t == TypeMonthly || t == TypeYearly
}

func (t Type) String() string { return string(t) }

func ParseType(s string) (Type, error) {
	t := Type(s)
	if !t.IsValid() {
		return "", dErrors.Newf(dErrors.CodeValidation, "invalid subscription type %q", s)
	}
	return t, nil
}

// advance returns from moved forward by one period of this type.
func (t Type) advance(from time.Time) time.Time {
	if t == TypeYearly {
		return from.AddDate(1, 0, 0)
	}
	return from.AddDate(0, 1, 0)
}

// State is the lifecycle position of a subscription.
type State string

const (
	StateActive    State = "active"
	StatePaused    State = "paused"
	StateCancelled State = "cancelled"
	StateExpired   State = "expired"
)

func (s State) IsValid() bool {
	switch s {
	case StateActive, StatePaused, StateCancelled, StateExpired:
		return true
	}
	return false
}

func (s State) String() string { return string(s) }

func ParseState(s string) (State, error) {
	st := State(s)
	if !st.IsValid() {
		return "", dErrors.Newf(dErrors.CodeValidation, "invalid subscription state %q", s)
	}
	return st, nil
}

// Subscription is a user's time-boxed access to a certification.
//
// Invariants:
//   - EndDate is strictly after StartDate, at construction and after every renewal
//   - Expired is terminal
//   - Cancelled can only move on to Expired
//
// State transitions:
//
//	active  -> paused | cancelled | expired | active (renew)
//	paused  -> active | cancelled | expired | active (renew)
//	cancelled -> expired
type Subscription struct {
	id              SubscriptionID
	userID          int64
	certificationID int64
	subType         Type
	state           State
	startDate       time.Time
	endDate         time.Time
	autoRenew       bool
}

// Start opens a new active subscription covering one period from now.
func Start(userID, certificationID int64, subType Type, autoRenew bool, now time.Time) (*Subscription, error) {
	if userID <= 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "user id must be positive")
	}
	if certificationID <= 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "certification id must be positive")
	}
	if !subType.IsValid() {
		return nil, dErrors.Newf(dErrors.CodeValidation, "invalid subscription type %q", subType)
	}
	return New(0, userID, certificationID, subType, StateActive, now, subType.advance(now), autoRenew)
}

// New builds a subscription from explicit fields, as stores do when loading.
// The date-ordering invariant is still enforced.
func New(id SubscriptionID, userID, certificationID int64, subType Type, state State, start, end time.Time, autoRenew bool) (*Subscription, error) {
	if !subType.IsValid() {
		return nil, dErrors.Newf(dErrors.CodeValidation, "invalid subscription type %q", subType)
	}
	if !state.IsValid() {
		return nil, dErrors.Newf(dErrors.CodeValidation, "invalid subscription state %q", state)
	}
	if err := validatePeriod(start, end); err != nil {
		return nil, err
	}
	return &Subscription{
		id:              id,
		userID:          userID,
		certificationID: certificationID,
		subType:         subType,
		state:           state,
		startDate:       start,
		endDate:         end,
		autoRenew:       autoRenew,
	}, nil
}

func (s *Subscription) ID() SubscriptionID     { return s.id }
func (s *Subscription) UserID() int64          { return s.userID }
func (s *Subscription) CertificationID() int64 { return s.certificationID }
func (s *Subscription) Type() Type             { return s.subType }
func (s *Subscription) State() State           { return s.state }
func (s *Subscription) StartDate() time.Time   { return s.startDate }
func (s *Subscription) EndDate() time.Time     { return s.endDate }
func (s *Subscription) AutoRenew() bool        { return s.autoRenew }

// AssignID sets the identity on first save.
func (s *Subscription) AssignID(id SubscriptionID) error {
	if !s.id.IsZero() && s.id != id {
		return dErrors.New(dErrors.CodeInvalidState, "subscription id is already assigned")
	}
	s.id = id
	return nil
}

func (s *Subscription) Activate() error {
	if s.state == StateCancelled || s.state == StateExpired {
		return dErrors.New(dErrors.CodeInvalidState, "cannot activate a cancelled or expired subscription")
	}
	s.state = StateActive
	return nil
}

func (s *Subscription) Pause() error {
	if s.state != StateActive {
		return dErrors.New(dErrors.CodeInvalidState, "only active subscriptions can be paused")
	}
	s.state = StatePaused
	return nil
}

func (s *Subscription) Cancel() error {
	if s.state == StateExpired {
		return dErrors.New(dErrors.CodeInvalidState, "cannot cancel an expired subscription")
	}
	s.state = StateCancelled
	return nil
}

func (s *Subscription) Expire() {
	s.state = StateExpired
}

// Renew starts the next period at the current end date. The subscription is
// left untouched when renewal is rejected.
func (s *Subscription) Renew() error {
	if !s.autoRenew {
		return dErrors.New(dErrors.CodeInvalidState, "subscription is not set to auto renew")
	}
	if s.state != StateActive && s.state != StatePaused {
		return dErrors.New(dErrors.CodeInvalidState, "only active or paused subscriptions can be renewed")
	}

	start := s.endDate
	end := s.subType.advance(start)
	if err := validatePeriod(start, end); err != nil {
		return err
	}

	s.startDate = start
	s.endDate = end
	s.state = StateActive
	return nil
}

// DueForRenewal reports whether the renewal pass of a sweep at t applies.
func (s *Subscription) DueForRenewal(t time.Time) bool {
	return s.state == StateActive && s.autoRenew && !s.endDate.After(t)
}

// DueForExpiry reports whether the expiry pass of a sweep at t applies.
func (s *Subscription) DueForExpiry(t time.Time) bool {
	if s.endDate.After(t) {
		return false
	}
	return s.state == StateCancelled || (s.state == StateActive && !s.autoRenew)
}

func (s *Subscription) Clone() *Subscription {
	c := *s
	return &c
}

func validatePeriod(start, end time.Time) error {
	if !end.After(start) {
		return dErrors.New(dErrors.CodeValidation, "end date must be after start date")
	}
	return nil
}
