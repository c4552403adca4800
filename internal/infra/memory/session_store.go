package memory

import (
	"context"
	"sync"
	"time"

	"playstyle-quiz-service/internal/domain"
)

// SessionStore is an in-memory implementation of app.SessionRepository.
// Sessions expire ttl after their last save; ttl <= 0 keeps them forever.
type SessionStore struct {
	ttl   time.Duration
	clock func() time.Time

	mu       sync.RWMutex
	sessions map[string]storedSession
}

type storedSession struct {
	session   domain.QuizSession
	expiresAt time.Time
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		ttl:      ttl,
		clock:    time.Now,
		sessions: make(map[string]storedSession),
	}
}

func (s *SessionStore) Save(_ context.Context, session domain.QuizSession) error {
	entry := storedSession{session: cloneSession(session)}
	if s.ttl > 0 {
		entry.expiresAt = s.clock().Add(s.ttl)
	}
	s.mu.Lock()
	s.sessions[session.ID] = entry
	s.mu.Unlock()
	return nil
}

func (s *SessionStore) Get(_ context.Context, id string) (domain.QuizSession, error) {
	s.mu.RLock()
	entry, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return domain.QuizSession{}, domain.ErrSessionNotFound
	}
	if !entry.expiresAt.IsZero() && !entry.expiresAt.After(s.clock()) {
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
		return domain.QuizSession{}, domain.ErrSessionNotFound
	}
	return cloneSession(entry.session), nil
}

func (s *SessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	return nil
}

// cloneSession copies the mutable parts so callers never share state.
func cloneSession(in domain.QuizSession) domain.QuizSession {
	out := in
	out.Answers = append([]domain.Answer(nil), in.Answers...)
	if in.EndTime != nil {
		end := *in.EndTime
		out.EndTime = &end
	}
	if in.Result != nil {
		result := *in.Result
		out.Result = &result
	}
	if in.Profile != nil {
		profile := *in.Profile
		out.Profile = &profile
	}
	return out
}
