package status

import (
	"context"
	"errors"
	"os"

	"github.com/redis/go-redis/v9"
)

// Queued is the value seeded for every accepted job. Workers later
// overwrite it with either a JSON array of per-test outcomes or an error
// string; transitions are last-write-wins.
const Queued = "Queued"

// Store records job progress in a flat key space keyed by job id. It does
// no retries of its own: an unavailable store is surfaced to the caller.
type Store struct {
	rdb *redis.Client
}

// NewStore creates a status store on the given redis client.
func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

// NewStoreFromEnv creates a status store connected to REDIS_ADDR.
func NewStoreFromEnv() *Store {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		panic("REDIS_ADDR not set in .env file")
	}
	return NewStore(redis.NewClient(&redis.Options{Addr: addr}))
}

// Get returns the status value for key. The second return is false when
// no status exists for the key.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, ErrStoreUnavailable().SetDebug(err)
	}
	return val, true, nil
}

func (s *Store) Set(ctx context.Context, key string, value string) error {
	if err := s.rdb.Set(ctx, key, value, 0).Err(); err != nil {
		return ErrStoreUnavailable().SetDebug(err)
	}
	return nil
}

func (s *Store) Del(ctx context.Context, key string) error {
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		return ErrStoreUnavailable().SetDebug(err)
	}
	return nil
}
