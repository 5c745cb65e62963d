package store

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned by Get when the key is absent or expired.
var ErrNotFound = errors.New("key not found")

// KV is the subset of key-value store operations the gateway relies on.
// The store itself is an external collaborator; this interface exists so the
// rest of the code never touches a concrete client.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	SetWithTTL(ctx context.Context, key, value string, ttl time.Duration) error
	SAdd(ctx context.Context, key, member string) error
	SIsMember(ctx context.Context, key, member string) (bool, error)
	Close() error
}

type redisKV struct {
	rdb *redis.Client
}

// Dial connects to the store at the given redis:// URL. The connection is
// process-scoped: opened once at startup and shared by all requests.
func Dial(url string) (KV, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return &redisKV{rdb: redis.NewClient(opts)}, nil
}

func (s *redisKV) Get(ctx context.Context, key string) (string, error) {
	val, err := s.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	return val, err
}

func (s *redisKV) SetWithTTL(ctx context.Context, key, value string, ttl time.Duration) error {
	return s.rdb.Set(ctx, key, value, ttl).Err()
}

func (s *redisKV) SAdd(ctx context.Context, key, member string) error {
	return s.rdb.SAdd(ctx, key, member).Err()
}

func (s *redisKV) SIsMember(ctx context.Context, key, member string) (bool, error) {
	return s.rdb.SIsMember(ctx, key, member).Result()
}

func (s *redisKV) Close() error {
	return s.rdb.Close()
}
