// Package redis stores login sessions in Redis.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	domainauth "github.com/target/serverboard/internal/domain/auth"
)

// ErrSessionNotFound is returned for a missing or lapsed session.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore keeps each session as JSON under prefix+id with a TTL that ends
// at the session's expiry.
type SessionStore struct {
	client redis.UniversalClient
	prefix string
	now    func() time.Time
}

// NewSessionStore returns a store. An empty prefix means "session:".
func NewSessionStore(client redis.UniversalClient, prefix string) *SessionStore {
	if prefix == "" {
		prefix = "session:"
	}
	return &SessionStore{client: client, prefix: prefix, now: time.Now}
}

func (s *SessionStore) Save(ctx context.Context, sess domainauth.Session) error {
	if sess.ID == "" {
		return errors.New("session id is empty")
	}
	ttl := sess.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return errors.New("session already expired")
	}
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return s.client.Set(ctx, s.prefix+sess.ID, data, ttl).Err()
}

func (s *SessionStore) Get(ctx context.Context, id string) (domainauth.Session, error) {
	if id == "" {
		return domainauth.Session{}, ErrSessionNotFound
	}
	data, err := s.client.Get(ctx, s.prefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return domainauth.Session{}, ErrSessionNotFound
	}
	if err != nil {
		return domainauth.Session{}, fmt.Errorf("redis get: %w", err)
	}
	var sess domainauth.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return domainauth.Session{}, fmt.Errorf("unmarshal session: %w", err)
	}
	return sess, nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	return s.client.Del(ctx, s.prefix+id).Err()
}
