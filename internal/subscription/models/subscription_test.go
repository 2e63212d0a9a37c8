package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	dErrors "certhub/pkg/domain-errors"
)

var now = time.Date(2024, 1, 31, 12, 0, 0, 0, time.UTC)

type SubscriptionSuite struct {
	suite.Suite
}

func TestSubscriptionSuite(t *testing.T) {
	suite.Run(t, new(SubscriptionSuite))
}

func started(t *testing.T, subType Type, autoRenew bool) *Subscription {
	t.Helper()
	sub, err := Start(1, 2, subType, autoRenew, now)
	require.NoError(t, err)
	return sub
}

func withState(t *testing.T, state State, autoRenew bool, end time.Time) *Subscription {
	t.Helper()
	sub, err := New(9, 1, 2, TypeMonthly, state, end.AddDate(0, -1, 0), end, autoRenew)
	require.NoError(t, err)
	return sub
}

func (s *SubscriptionSuite) TestStart() {
	s.Run("monthly covers one month from now", func() {
		sub := started(s.T(), TypeMonthly, true)
		s.Equal(StateActive, sub.State())
		s.Equal(now, sub.StartDate())
		s.Equal(now.AddDate(0, 1, 0), sub.EndDate())
		s.True(sub.AutoRenew())
		s.True(sub.ID().IsZero())
	})

	s.Run("yearly covers one year from now", func() {
		sub := started(s.T(), TypeYearly, false)
		s.Equal(time.Date(2025, 1, 31, 12, 0, 0, 0, time.UTC), sub.EndDate())
	})

	s.Run("rejects invalid references and type", func() {
		_, err := Start(0, 2, TypeMonthly, true, now)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
		_, err = Start(1, 0, TypeMonthly, true, now)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
		_, err = Start(1, 2, Type("weekly"), true, now)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func (s *SubscriptionSuite) TestNewRequiresEndAfterStart() {
	_, err := New(1, 1, 2, TypeMonthly, StateActive, now, now, true)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))

	_, err = New(1, 1, 2, TypeMonthly, StateActive, now, now.Add(-time.Hour), true)
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))

	_, err = New(1, 1, 2, TypeMonthly, State("frozen"), now, now.Add(time.Hour), true)
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}

func (s *SubscriptionSuite) TestPause() {
	s.Run("active becomes paused", func() {
		sub := started(s.T(), TypeMonthly, true)
		s.Require().NoError(sub.Pause())
		s.Equal(StatePaused, sub.State())
	})

	s.Run("second pause is rejected", func() {
		sub := started(s.T(), TypeMonthly, true)
		s.Require().NoError(sub.Pause())
		err := sub.Pause()
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidState))
		s.Equal(StatePaused, sub.State())
	})

	for _, state := range []State{StateCancelled, StateExpired} {
		s.Run("rejected from "+state.String(), func() {
			sub := withState(s.T(), state, true, now)
			s.True(dErrors.HasCode(sub.Pause(), dErrors.CodeInvalidState))
			s.Equal(state, sub.State())
		})
	}
}

func (s *SubscriptionSuite) TestActivate() {
	s.Run("paused resumes", func() {
		sub := withState(s.T(), StatePaused, true, now)
		s.Require().NoError(sub.Activate())
		s.Equal(StateActive, sub.State())
	})

	s.Run("active stays active", func() {
		sub := withState(s.T(), StateActive, true, now)
		s.Require().NoError(sub.Activate())
		s.Equal(StateActive, sub.State())
	})

	for _, state := range []State{StateCancelled, StateExpired} {
		s.Run("rejected from "+state.String(), func() {
			sub := withState(s.T(), state, true, now)
			s.True(dErrors.HasCode(sub.Activate(), dErrors.CodeInvalidState))
			s.Equal(state, sub.State())
		})
	}
}

func (s *SubscriptionSuite) TestCancel() {
	for _, state := range []State{StateActive, StatePaused, StateCancelled} {
		s.Run("allowed from "+state.String(), func() {
			sub := withState(s.T(), state, true, now)
			s.Require().NoError(sub.Cancel())
			s.Equal(StateCancelled, sub.State())
		})
	}

	s.Run("rejected once expired", func() {
		sub := withState(s.T(), StateExpired, true, now)
		s.True(dErrors.HasCode(sub.Cancel(), dErrors.CodeInvalidState))
		s.Equal(StateExpired, sub.State())
	})
}

func (s *SubscriptionSuite) TestExpire() {
	for _, state := range []State{StateActive, StatePaused, StateCancelled, StateExpired} {
		sub := withState(s.T(), state, false, now)
		sub.Expire()
		s.Equal(StateExpired, sub.State())
	}
}

func (s *SubscriptionSuite) TestRenew() {
	s.Run("monthly advances from the old end date", func() {
		sub := started(s.T(), TypeMonthly, true)
		oldEnd := sub.EndDate()

		s.Require().NoError(sub.Renew())

		s.Equal(oldEnd, sub.StartDate())
		s.Equal(oldEnd.AddDate(0, 1, 0), sub.EndDate())
		s.True(sub.EndDate().After(sub.StartDate()))
	})

	s.Run("yearly advances by a year", func() {
		sub := started(s.T(), TypeYearly, true)
		oldEnd := sub.EndDate()
		s.Require().NoError(sub.Renew())
		s.Equal(oldEnd.AddDate(1, 0, 0), sub.EndDate())
	})

	s.Run("paused subscription is renewed back to active", func() {
		sub := withState(s.T(), StatePaused, true, now)
		s.Require().NoError(sub.Renew())
		s.Equal(StateActive, sub.State())
	})

	s.Run("without auto renew nothing changes", func() {
		sub := started(s.T(), TypeMonthly, false)
		before := *sub

		err := sub.Renew()

		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidState))
		s.Contains(err.Error(), "not set to auto renew")
		s.Equal(before, *sub)
	})

	for _, state := range []State{StateCancelled, StateExpired} {
		s.Run("rejected from "+state.String(), func() {
			sub := withState(s.T(), state, true, now)
			before := *sub
			s.True(dErrors.HasCode(sub.Renew(), dErrors.CodeInvalidState))
			s.Equal(before, *sub)
		})
	}
}

func TestEndStaysAfterStartAcrossRenewals(t *testing.T) {
	for _, subType := range []Type{TypeMonthly, TypeYearly} {
		sub := started(t, subType, true)
		for i := 0; i < 36; i++ {
			require.NoError(t, sub.Renew())
			assert.True(t, sub.EndDate().After(sub.StartDate()), "%s renewal %d", subType, i)
		}
	}
}

func TestSweepEligibility(t *testing.T) {
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	tests := []struct {
		name       string
		state      State
		autoRenew  bool
		end        time.Time
		wantRenew  bool
		wantExpire bool
	}{
		{"active auto renew overdue", StateActive, true, past, true, false},
		{"active auto renew ending exactly now", StateActive, true, now, true, false},
		{"active auto renew not due", StateActive, true, future, false, false},
		{"active manual overdue", StateActive, false, past, false, true},
		{"cancelled overdue", StateCancelled, true, past, false, true},
		{"cancelled not due", StateCancelled, false, future, false, false},
		{"paused overdue", StatePaused, true, past, false, false},
		{"expired overdue", StateExpired, false, past, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := withState(t, tt.state, tt.autoRenew, tt.end)
			assert.Equal(t, tt.wantRenew, sub.DueForRenewal(now))
			assert.Equal(t, tt.wantExpire, sub.DueForExpiry(now))
		})
	}
}

func TestAssignIDAndClone(t *testing.T) {
	sub := started(t, TypeMonthly, true)
	require.NoError(t, sub.AssignID(3))
	require.Error(t, sub.AssignID(4))

	c := sub.Clone()
	require.NoError(t, c.Pause())
	assert.Equal(t, StateActive, sub.State())
	assert.Equal(t, SubscriptionID(3), c.ID())
}

func TestParse(t *testing.T) {
	typ, err := ParseType("yearly")
	require.NoError(t, err)
	assert.Equal(t, TypeYearly, typ)
	_, err = ParseType("Yearly")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))

	st, err := ParseState("cancelled")
	require.NoError(t, err)
	assert.Equal(t, StateCancelled, st)
	_, err = ParseState("")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}
