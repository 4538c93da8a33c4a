package services

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vytor/pharmaflash/internal/errors"
)

// DefaultSessionTTL is how long an untouched session is kept.
const DefaultSessionTTL = 6 * time.Hour

type sessionEntry[T any] struct {
	mu        sync.Mutex
	profileID int64
	value     T
	touched   time.Time
}

// SessionStore keeps in-memory study sessions keyed by uuid. Every session is
// owned by the profile that created it and calls on one session are serialized.
type SessionStore[T any] struct {
	mu      sync.Mutex
	kind    string
	ttl     time.Duration
	now     func() time.Time
	entries map[string]*sessionEntry[T]
}

func NewSessionStore[T any](kind string, ttl time.Duration) *SessionStore[T] {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionStore[T]{
		kind:    kind,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]*sessionEntry[T]),
	}
}

// Create stores value for profileID and returns its id. Expired sessions are
// swept on the way.
func (s *SessionStore[T]) Create(profileID int64, value T) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for id, e := range s.entries {
		if e.expired(now, s.ttl) {
			delete(s.entries, id)
		}
	}

	id := uuid.NewString()
	s.entries[id] = &sessionEntry[T]{profileID: profileID, value: value, touched: now}
	return id
}

// With runs fn on the session while holding its lock. A missing session or
// one owned by another profile is reported as not found.
func (s *SessionStore[T]) With(id string, profileID int64, fn func(T) error) error {
	s.mu.Lock()
	e, ok := s.entries[id]
	s.mu.Unlock()
	if !ok || e.profileID != profileID {
		return errors.NewNotFoundError(s.kind, id)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.touched = s.now()
	return fn(e.value)
}

// Delete drops a session owned by profileID.
func (s *SessionStore[T]) Delete(id string, profileID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok || e.profileID != profileID {
		return errors.NewNotFoundError(s.kind, id)
	}
	delete(s.entries, id)
	return nil
}

// Len returns the number of stored sessions.
func (s *SessionStore[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// expired reports whether the entry sat idle for longer than ttl. An entry
// in use is never expired.
func (e *sessionEntry[T]) expired(now time.Time, ttl time.Duration) bool {
	if !e.mu.TryLock() {
		return false
	}
	defer e.mu.Unlock()
	return now.Sub(e.touched) > ttl
}
