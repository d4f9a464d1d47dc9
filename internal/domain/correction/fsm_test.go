package correction

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransition_HappyPath(t *testing.T) {
	s, err := Transition(StatusSubmitted, EventManagerApprove)
	require.NoError(t, err)
	assert.Equal(t, StatusInReview, s)

	s, err = Transition(s, EventHRApprove)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, s)
}

func TestTransition_HRApproveFromSubmittedConflicts(t *testing.T) {
	_, err := Transition(StatusSubmitted, EventHRApprove)
	require.Error(t, err)

	var conflict *StateConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, StatusSubmitted, conflict.Current)
	assert.Contains(t, conflict.Expected, StatusInReview)
	assert.Contains(t, conflict.Error(), "submitted")
	assert.Contains(t, conflict.Error(), "in_review")
}

func TestTransition_ManagerApproveRequiresSubmitted(t *testing.T) {
	for _, from := range []Status{StatusInReview, StatusApproved, StatusRejected, StatusEscalated} {
		_, err := Transition(from, EventManagerApprove)
		var conflict *StateConflictError
		require.True(t, errors.As(err, &conflict), "from %s", from)
	}
}

func TestTransition_RejectFromAnyNonApproved(t *testing.T) {
	for _, from := range []Status{StatusSubmitted, StatusInReview, StatusEscalated, StatusRejected} {
		s, err := Transition(from, EventReject)
		require.NoError(t, err, "from %s", from)
		assert.Equal(t, StatusRejected, s)
	}

	_, err := Transition(StatusApproved, EventReject)
	var conflict *StateConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, StatusApproved, conflict.Current)
}

func TestTransition_EscalateIsUnguarded(t *testing.T) {
	// Matches the source behavior: escalation carries no guard, even from
	// terminal states.
	for _, from := range []Status{StatusSubmitted, StatusInReview, StatusApproved, StatusRejected, StatusEscalated} {
		s, err := Transition(from, EventEscalate)
		require.NoError(t, err, "from %s", from)
		assert.Equal(t, StatusEscalated, s)
	}
}

func TestTransition_UnknownEvent(t *testing.T) {
	_, err := Transition(StatusSubmitted, Event("shred"))
	var conflict *StateConflictError
	require.True(t, errors.As(err, &conflict))
}

func TestStatusIsTerminal(t *testing.T) {
	assert.True(t, StatusApproved.IsTerminal())
	assert.True(t, StatusRejected.IsTerminal())
	assert.False(t, StatusSubmitted.IsTerminal())
	assert.False(t, StatusInReview.IsTerminal())
	assert.False(t, StatusEscalated.IsTerminal())
}

func TestFinalize(t *testing.T) {
	cases := []struct {
		status      Status
		canApply    bool
		needsReview bool
	}{
		{StatusSubmitted, false, true},
		{StatusInReview, false, false},
		{StatusApproved, true, false},
		{StatusRejected, false, false},
		{StatusEscalated, false, true},
	}

	for _, c := range cases {
		got := Finalize(CorrectionRequest{Status: c.status})
		assert.Equal(t, c.status, got.Status)
		assert.Equal(t, c.canApply, got.CanApplyCorrection, "status %s", c.status)
		assert.Equal(t, c.needsReview, got.RequiresManagerReview, "status %s", c.status)
		assert.NotEmpty(t, got.Message)
		assert.NotEmpty(t, got.SuggestedActions)
	}
}
