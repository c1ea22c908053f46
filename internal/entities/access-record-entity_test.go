package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessStatusTransitions(t *testing.T) {
	cases := []struct {
		from    AccessStatus
		to      AccessStatus
		allowed bool
	}{
		{AccessStatusActive, AccessStatusCompleted, true},
		{AccessStatusActive, AccessStatusExpired, true},
		{AccessStatusActive, AccessStatusBlocked, true},
		{AccessStatusExpired, AccessStatusCompleted, true},
		{AccessStatusExpired, AccessStatusActive, false},
		{AccessStatusExpired, AccessStatusBlocked, false},
		{AccessStatusCompleted, AccessStatusActive, false},
		{AccessStatusCompleted, AccessStatusExpired, false},
		{AccessStatusBlocked, AccessStatusCompleted, false},
		{AccessStatusBlocked, AccessStatusActive, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestAccessStatusTerminal(t *testing.T) {
	assert.False(t, AccessStatusActive.Terminal())
	assert.False(t, AccessStatusExpired.Terminal())
	assert.True(t, AccessStatusCompleted.Terminal())
	assert.True(t, AccessStatusBlocked.Terminal())
}

func TestAccessRecordTransition(t *testing.T) {
	record := &AccessRecord{Status: AccessStatusActive}

	require.NoError(t, record.Transition(AccessStatusExpired))
	assert.Equal(t, AccessStatusExpired, record.Status)

	err := record.Transition(AccessStatusBlocked)
	require.Error(t, err)
	assert.Equal(t, AccessStatusExpired, record.Status, "failed transitions must not change state")

	require.NoError(t, record.Transition(AccessStatusCompleted))
	assert.Equal(t, AccessStatusCompleted, record.Status)
}

func TestAccessRecordIsExpired(t *testing.T) {
	deadline := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	record := &AccessRecord{Status: AccessStatusActive, ExpectedExitTime: deadline}

	assert.False(t, record.IsExpired(deadline.Add(-time.Minute)))
	assert.False(t, record.IsExpired(deadline))
	assert.True(t, record.IsExpired(deadline.Add(time.Minute)))

	record.Status = AccessStatusCompleted
	assert.False(t, record.IsExpired(deadline.Add(time.Hour)), "only active records expire")
}

func TestAccessRecordAppendNote(t *testing.T) {
	record := &AccessRecord{}

	record.AppendNote("")
	assert.Nil(t, record.Notes)

	record.AppendNote("first")
	require.NotNil(t, record.Notes)
	assert.Equal(t, "first", *record.Notes)

	record.AppendNote("second")
	assert.Equal(t, "first\nsecond", *record.Notes)
}
