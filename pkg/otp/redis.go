package otp

import (
	"context"
	"fmt"
	"time"

	"github.com/neocodenexus/vendorx-backend/pkg/redis"
)

// RedisStore persists pending codes in redis with a server-side TTL, so
// expiry needs no sweeping and codes are shared across replicas.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps the shared redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Put replaces any pending code for the email.
func (s *RedisStore) Put(ctx context.Context, email, code string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.client.OTPKey(email), code, ttl); err != nil {
		return fmt.Errorf("storing otp: %w", err)
	}
	return nil
}

// Verify consumes the entry on a match. Redis drops expired keys itself, so
// a missing key covers both "never issued" and "expired".
func (s *RedisStore) Verify(ctx context.Context, email, code string) (bool, error) {
	key := s.client.OTPKey(email)

	stored, err := s.client.Get(ctx, key)
	if err != nil {
		if redis.IsNil(err) {
			return false, ErrNotFound
		}
		return false, fmt.Errorf("reading otp: %w", err)
	}
	if stored != code {
		return false, nil
	}

	// GetDel rather than Del so a concurrent verify of the same code
	// cannot succeed twice.
	consumed, err := s.client.GetDel(ctx, key)
	if err != nil {
		if redis.IsNil(err) {
			return false, ErrNotFound
		}
		return false, fmt.Errorf("consuming otp: %w", err)
	}
	if consumed != code {
		return false, ErrNotFound
	}
	return true, nil
}
