package quiz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/p-n-ai/knowledge-hub/internal/platform/idgen"
)

const (
	sessionKeyPrefix  = "quiz:session:"
	defaultSessionTTL = 2 * time.Hour
)

// RedisSessionStore keeps each session as a JSON value with a sliding TTL.
type RedisSessionStore struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewRedisSessionStore creates a Redis-backed store. A non-positive ttl uses
// the default of two hours.
func NewRedisSessionStore(client redis.Cmdable, ttl time.Duration) (*RedisSessionStore, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is nil")
	}
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &RedisSessionStore{client: client, ttl: ttl}, nil
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

func (s *RedisSessionStore) CreateSession(ctx context.Context, st State) (string, error) {
	data, err := json.Marshal(st)
	if err != nil {
		return "", fmt.Errorf("marshal session: %w", err)
	}

	id := idgen.New()
	ok, err := s.client.SetNX(ctx, sessionKey(id), data, s.ttl).Result()
	if err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	if !ok {
		return "", fmt.Errorf("create session: id collision %s", id)
	}
	return id, nil
}

func (s *RedisSessionStore) GetSession(ctx context.Context, id string) (State, error) {
	data, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return State{}, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
		}
		return State{}, fmt.Errorf("get session: %w", err)
	}

	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return State{}, fmt.Errorf("unmarshal session %s: %w", id, err)
	}
	if st.Answers == nil {
		st.Answers = map[int]int{}
	}
	return st, nil
}

func (s *RedisSessionStore) SaveSession(ctx context.Context, id string, st State) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	ok, err := s.client.SetXX(ctx, sessionKey(id), data, s.ttl).Result()
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return nil
}

func (s *RedisSessionStore) DeleteSession(ctx context.Context, id string) error {
	n, err := s.client.Del(ctx, sessionKey(id)).Result()
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return nil
}
