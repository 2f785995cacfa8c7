// Package memory keeps sessions inside the process. It is the default store:
// sessions die with the process, just like the state of a browser tab.
package memory

import (
	"alcyxob/fitcoach/internal/domain"
	"alcyxob/fitcoach/internal/repository"
	"context"
	"errors"
	"sync"
	"time"
)

// sessionRepository implements repository.SessionRepository with a map.
type sessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session
	now      func() time.Time
}

// NewSessionRepository creates an empty in-memory session store.
func NewSessionRepository() repository.SessionRepository {
	return newSessionRepository(time.Now)
}

func newSessionRepository(now func() time.Time) *sessionRepository {
	return &sessionRepository{
		sessions: make(map[string]*domain.Session),
		now:      now,
	}
}

// Create stores a new session and drops any expired ones.
func (r *sessionRepository) Create(_ context.Context, session *domain.Session) error {
	if session == nil || session.ID == "" {
		return errors.New("session id is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for id, s := range r.sessions {
		if s.Expired(now) {
			delete(r.sessions, id)
		}
	}
	if _, exists := r.sessions[session.ID]; exists {
		return repository.ErrConflict
	}
	r.sessions[session.ID] = session.Clone()
	return nil
}

// GetByID returns a copy of the session.
func (r *sessionRepository) GetByID(_ context.Context, id string) (*domain.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[id]
	if !ok || s.Expired(r.now()) {
		return nil, repository.ErrNotFound
	}
	return s.Clone(), nil
}

// Mutate applies fn to a copy of the session under the write lock and
// stores the copy when fn succeeds.
func (r *sessionRepository) Mutate(_ context.Context, id string, fn repository.MutateFunc) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.sessions[id]
	if !ok || existing.Expired(r.now()) {
		return nil, repository.ErrNotFound
	}
	next := existing.Clone()
	if err := fn(next); err != nil {
		return nil, err
	}
	next.ID = id
	next.Version = existing.Version + 1
	next.UpdatedAt = r.now().UTC()
	r.sessions[id] = next.Clone()
	return next, nil
}

// Delete removes a session. Deleting an unknown session is ErrNotFound.
func (r *sessionRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.sessions, id)
	return nil
}
