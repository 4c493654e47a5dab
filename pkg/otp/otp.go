// Package otp issues and verifies short-lived one-time passwords keyed by
// vendor email. Codes are single use: a successful verification consumes the
// entry, a wrong guess leaves it in place until it expires.
package otp

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"
)

// ErrNotFound signals no code exists for the email. ErrExpired covers a code
// that was issued but outlived its TTL; stores that cannot tell the two apart
// (redis drops expired keys outright) report ErrNotFound for both.
var (
	ErrNotFound = errors.New("no active code for email")
	ErrExpired  = errors.New("code has expired")
)

// Store abstracts where pending codes live. The in-memory store backs single
// instance deployments; the redis store is used when an endpoint is
// configured so codes survive restarts and are shared across replicas.
type Store interface {
	// Put replaces any pending code for the email with a fresh one.
	Put(ctx context.Context, email, code string, ttl time.Duration) error
	// Verify checks the submitted code. A match consumes the entry and
	// returns true. A mismatch returns false and keeps the entry. Missing
	// entries return ErrNotFound, expired ones ErrExpired where the store
	// can distinguish them.
	Verify(ctx context.Context, email, code string) (bool, error)
}

// GenerateCode returns a zero-padded numeric code of the given length.
func GenerateCode(length int) (string, error) {
	if length <= 0 || length > 12 {
		return "", fmt.Errorf("invalid code length %d", length)
	}

	bound := big.NewInt(1)
	for i := 0; i < length; i++ {
		bound.Mul(bound, big.NewInt(10))
	}

	n, err := rand.Int(rand.Reader, bound)
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	return fmt.Sprintf("%0*d", length, n), nil
}
