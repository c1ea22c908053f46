package entities

import (
	"fmt"
	"strings"
	"time"
)

// AccessType is the kind of action that produced a record. It is set
// once at creation and never changes.
type AccessType string

const (
	AccessTypeEntry AccessType = "entry"
	AccessTypeExit  AccessType = "exit"
)

// AccessStatus is the lifecycle state of an access record.
//
// active is the initial state. completed and blocked are terminal.
// expired is intermediate: an overdue record can still be closed by a
// forced exit.
type AccessStatus string

const (
	AccessStatusActive    AccessStatus = "active"
	AccessStatusCompleted AccessStatus = "completed"
	AccessStatusExpired   AccessStatus = "expired"
	AccessStatusBlocked   AccessStatus = "blocked"
)

func (s AccessStatus) Valid() bool {
	switch s {
	case AccessStatusActive, AccessStatusCompleted, AccessStatusExpired, AccessStatusBlocked:
		return true
	}
	return false
}

// Terminal reports whether no further transition is allowed from s.
func (s AccessStatus) Terminal() bool {
	return s == AccessStatusCompleted || s == AccessStatusBlocked
}

// CanTransitionTo encodes the state machine. There is no path back to
// active.
func (s AccessStatus) CanTransitionTo(next AccessStatus) bool {
	switch s {
	case AccessStatusActive:
		return next == AccessStatusCompleted || next == AccessStatusExpired || next == AccessStatusBlocked
	case AccessStatusExpired:
		return next == AccessStatusCompleted
	default:
		return false
	}
}

// AccessRecord is one equipment visit to the facility.
type AccessRecord struct {
	ID               uint64
	EquipmentID      uint64
	UserID           uint64
	AccessType       AccessType
	Status           AccessStatus
	EntryTime        time.Time
	ExitTime         *time.Time
	ExpectedExitTime time.Time
	Notes            *string
	CreatedAt        time.Time
}

// IsExpired reports whether an active record has passed its expected
// exit time.
func (r *AccessRecord) IsExpired(now time.Time) bool {
	return r.Status == AccessStatusActive && now.After(r.ExpectedExitTime)
}

// AppendNote adds a line to the record's notes, preserving what is
// already there.
func (r *AccessRecord) AppendNote(note string) {
	if note == "" {
		return
	}
	if r.Notes == nil || *r.Notes == "" {
		r.Notes = &note
		return
	}
	combined := strings.TrimSpace(*r.Notes + "\n" + note)
	r.Notes = &combined
}

// Transition moves the record to next, refusing anything the state
// machine does not allow.
func (r *AccessRecord) Transition(next AccessStatus) error {
	if !r.Status.CanTransitionTo(next) {
		return fmt.Errorf("invalid status transition %s -> %s", r.Status, next)
	}
	r.Status = next
	return nil
}
