package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionStore keeps the server side of issued session tokens so logins can
// be revoked before the token itself expires.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{
		client: client,
		ttl:    ttl,
	}
}

func sessionKey(sessionID string) string {
	return "session:" + sessionID
}

func (s *SessionStore) Create(ctx context.Context, sessionID string, userID int64) error {
	return s.client.Set(ctx, sessionKey(sessionID), strconv.FormatInt(userID, 10), s.ttl).Err()
}

// Exists reports whether the session is still live (not logged out, not
// expired).
func (s *SessionStore) Exists(ctx context.Context, sessionID string) (bool, error) {
	n, err := s.client.Exists(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check session: %w", err)
	}
	return n > 0, nil
}

func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, sessionKey(sessionID)).Err()
}

// DeleteAllForUser revokes every session belonging to a user, used when an
// admin removes the account.
func (s *SessionStore) DeleteAllForUser(ctx context.Context, userID int64) error {
	want := strconv.FormatInt(userID, 10)
	iter := s.client.Scan(ctx, 0, "session:*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		val, err := s.client.Get(ctx, key).Result()
		if err != nil {
			if err == redis.Nil {
				continue
			}
			return err
		}
		if val == want {
			if err := s.client.Del(ctx, key).Err(); err != nil {
				return err
			}
		}
	}
	return iter.Err()
}
