// Package idempotency remembers the results of keyed requests in Redis so a
// retried request is answered without being applied twice.
package idempotency

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const pendingMarker = "pending"

// MaxKeyLength bounds client supplied keys.
const MaxKeyLength = 255

var ErrInFlight = errors.New("request with this idempotency key is still being processed")

// Store keeps a short-lived pending marker while a request runs and the
// result for ttl once it completes.
type Store struct {
	client     redis.Cmdable
	ttl        time.Duration
	pendingTTL time.Duration
	prefix     string
}

// NewStore builds a store. A pendingTTL outside (0, ttl] is clamped to ttl.
func NewStore(client redis.Cmdable, prefix string, ttl, pendingTTL time.Duration) *Store {
	if pendingTTL <= 0 || pendingTTL > ttl {
		pendingTTL = ttl
	}
	return &Store{client: client, ttl: ttl, pendingTTL: pendingTTL, prefix: prefix}
}

func (s *Store) key(k string) string {
	return "idempotency:" + s.prefix + ":" + k
}

// Claim reserves key for the caller.
//
// It returns (nil, nil) when the caller now owns the key, the stored result
// when an earlier request completed, or ErrInFlight while one is running.
// An abandoned claim expires after the pending TTL.
func (s *Store) Claim(ctx context.Context, key string) ([]byte, error) {
	k := s.key(key)

	ok, err := s.client.SetNX(ctx, k, pendingMarker, s.pendingTTL).Result()
	if err != nil {
		return nil, err
	}
	if ok {
		return nil, nil
	}

	val, err := s.client.Get(ctx, k).Bytes()
	if errors.Is(err, redis.Nil) {
		// expired between SETNX and GET
		return nil, ErrInFlight
	}
	if err != nil {
		return nil, err
	}
	if string(val) == pendingMarker {
		return nil, ErrInFlight
	}
	return val, nil
}

// Complete stores the result for replays and extends the key to the full TTL.
func (s *Store) Complete(ctx context.Context, key string, result []byte) error {
	return s.client.Set(ctx, s.key(key), result, s.ttl).Err()
}

// Release drops a claim so the request can be retried.
func (s *Store) Release(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.key(key)).Err()
}
