package redis

import (
	"context"
	"time"

	"storefront/internal/core/ports"

	"github.com/go-faster/errors"
	goredis "github.com/redis/go-redis/v9"
)

const (
	DefaultKeyPrefix = "storefront:idempotency:"
	DefaultKeyTTL    = 24 * time.Hour
)

var _ ports.IdempotencyStore = (*IdempotencyStore)(nil)

// IdempotencyStore claims Idempotency-Key values with SETNX so that concurrent
// instances agree on the first request that used a key.
type IdempotencyStore struct {
	client    goredis.UniversalClient
	keyPrefix string
	ttl       time.Duration
}

// NewIdempotencyStore wraps client. Empty prefix and non-positive ttl fall back to the defaults.
func NewIdempotencyStore(client goredis.UniversalClient, keyPrefix string, ttl time.Duration) *IdempotencyStore {
	if keyPrefix == "" {
		keyPrefix = DefaultKeyPrefix
	}
	if ttl <= 0 {
		ttl = DefaultKeyTTL
	}
	return &IdempotencyStore{client: client, keyPrefix: keyPrefix, ttl: ttl}
}

// Claim returns true if key was not claimed within the last ttl.
func (s *IdempotencyStore) Claim(ctx context.Context, key string) (bool, error) {
	claimed, err := s.client.SetNX(ctx, s.keyPrefix+key, time.Now().UTC().Format(time.RFC3339), s.ttl).Result()
	if err != nil {
		return false, errors.Wrap(err, "claim idempotency key")
	}
	return claimed, nil
}

// Release deletes the claim.
func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.keyPrefix+key).Err(); err != nil {
		return errors.Wrap(err, "release idempotency key")
	}
	return nil
}

// NewClient connects to addr and pings it.
func NewClient(ctx context.Context, addr, password string, db int) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrapf(err, "ping redis at %s", addr)
	}
	return client, nil
}
