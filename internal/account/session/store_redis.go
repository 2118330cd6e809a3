package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"partnerdesk/pkg/platform/sentinel"
)

const (
	// Redis key under which the serialized session lives.
	sessionKey = "partnerdesk:session"

	// Sessions persist across client restarts but not forever.
	defaultSessionTTL = 24 * time.Hour
)

// RedisStore keeps the session in Redis so it survives client restarts
// and can be shared by multiple terminals on the same workstation.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// RedisStoreOption configures a RedisStore instance.
type RedisStoreOption func(*RedisStore)

// WithSessionTTL overrides the default session expiry.
func WithSessionTTL(ttl time.Duration) RedisStoreOption {
	return func(s *RedisStore) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// NewRedis constructs a Redis-backed session store.
func NewRedis(client *redis.Client, opts ...RedisStoreOption) *RedisStore {
	s := &RedisStore{
		client: client,
		ttl:    defaultSessionTTL,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *RedisStore) Save(ctx context.Context, rec Record) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionKey, raw, s.ttl).Err()
}

func (s *RedisStore) Load(ctx context.Context) (Record, error) {
	raw, err := s.client.Get(ctx, sessionKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return Record{}, sentinel.ErrNotFound
	}
	if err != nil {
		return Record{}, err
	}
	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	return s.client.Del(ctx, sessionKey).Err()
}
