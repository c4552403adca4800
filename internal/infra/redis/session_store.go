package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"playstyle-quiz-service/internal/domain"
)

// SessionStore keeps quiz sessions in Redis as JSON so any instance can
// serve any session. Every save refreshes the TTL.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

func (s *SessionStore) Save(ctx context.Context, session domain.QuizSession) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.client.Set(ctx, s.key(session.ID), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w: %w", domain.ErrStoreUnavailable, err)
	}
	return nil
}

func (s *SessionStore) Get(ctx context.Context, id string) (domain.QuizSession, error) {
	raw, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.QuizSession{}, domain.ErrSessionNotFound
	}
	if err != nil {
		return domain.QuizSession{}, fmt.Errorf("load session: %w: %w", domain.ErrStoreUnavailable, err)
	}
	var session domain.QuizSession
	if err := json.Unmarshal(raw, &session); err != nil {
		return domain.QuizSession{}, fmt.Errorf("decode session: %w", err)
	}
	return session, nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("delete session: %w: %w", domain.ErrStoreUnavailable, err)
	}
	return nil
}

func (s *SessionStore) key(id string) string {
	return "quiz:session:" + id
}
