package memory

import (
	"context"
	"sync"

	"trivia-quiz/internal/app"
	"trivia-quiz/internal/domain"
)

// SessionStore is an in-memory implementation of app.SessionRepository.
// It keeps snapshots so callers never share a mutable session.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]app.SessionSnapshot
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]app.SessionSnapshot),
	}
}

func (s *SessionStore) Create(_ context.Context, session *app.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID()] = session.Snapshot()
	return nil
}

func (s *SessionStore) Get(_ context.Context, id string) (*app.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return app.RestoreSession(snap), nil
}

func (s *SessionStore) Save(_ context.Context, session *app.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[session.ID()]; !ok {
		return domain.ErrSessionNotFound
	}
	s.sessions[session.ID()] = session.Snapshot()
	return nil
}

func (s *SessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return domain.ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}

// Len reports how many sessions are held.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
