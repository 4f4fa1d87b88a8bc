package session

import (
	"time"
)

// Session represents the period of time when an authentication is still valid
// and in use. A session is created inactive, started once, renewed any number
// of times while active, and finished at most once. Finishing is terminal.
//
// All decisions take an explicit timestamp so callers (and tests) control time.
type Session struct {
	id        ID
	duration  time.Duration
	startedAt *time.Time
	endedAt   *time.Time
	updatedAt *time.Time
}

// New creates a fresh, not-yet-started session.
func New(id ID, duration time.Duration) (*Session, error) {
	if duration <= 0 {
		return nil, ErrInvalidDuration
	}
	return &Session{id: id, duration: duration}, nil
}

// Restore rebuilds a session from persisted state. Used by repositories;
// lifecycle invariants are assumed to have held when the state was saved.
func Restore(id ID, duration time.Duration, startedAt, endedAt, updatedAt *time.Time) (*Session, error) {
	s, err := New(id, duration)
	if err != nil {
		return nil, err
	}
	s.startedAt = cloneTime(startedAt)
	s.endedAt = cloneTime(endedAt)
	s.updatedAt = cloneTime(updatedAt)
	return s, nil
}

// ID returns the session identifier.
func (s *Session) ID() ID { return s.id }

// Duration returns the fixed session duration.
func (s *Session) Duration() time.Duration { return s.duration }

// StartedAt returns when the session was started, or nil.
func (s *Session) StartedAt() *time.Time { return cloneTime(s.startedAt) }

// EndedAt returns when the session was finished, or nil.
func (s *Session) EndedAt() *time.Time { return cloneTime(s.endedAt) }

// UpdatedAt returns when the session was last renewed, or nil.
func (s *Session) UpdatedAt() *time.Time { return cloneTime(s.updatedAt) }

// IsActiveAt reports whether the session is active at the given time.
// A session is active when it has started, has not finished, and t falls
// inside [startedAt, anchor+duration], where the anchor is the last renewal
// time if any, else the start time. Both bounds are inclusive.
func (s *Session) IsActiveAt(t time.Time) bool {
	if s.endedAt != nil {
		return false
	}
	if s.startedAt == nil {
		return false
	}
	anchor := *s.startedAt
	if s.updatedAt != nil {
		anchor = *s.updatedAt
	}
	end := anchor.Add(s.duration)
	return !t.Before(*s.startedAt) && !t.After(end)
}

// Start begins the session at the given time. The session must be fresh:
// not finished and not already active.
func (s *Session) Start(t time.Time) error {
	if s.endedAt != nil {
		return ErrSessionWasFinishedAlready
	}
	if s.IsActiveAt(t) {
		return ErrSessionWasActiveAlready
	}
	s.startedAt = cloneTime(&t)
	return nil
}

// Renew extends the active window to t+duration. The session must be active at t.
func (s *Session) Renew(t time.Time) error {
	if !s.IsActiveAt(t) {
		return ErrSessionIsNotActive
	}
	s.updatedAt = cloneTime(&t)
	return nil
}

// Finish ends the session at the given time. The session must be active at t.
// No operation is valid afterwards.
func (s *Session) Finish(t time.Time) error {
	if !s.IsActiveAt(t) {
		return ErrSessionIsNotActive
	}
	s.endedAt = cloneTime(&t)
	return nil
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
