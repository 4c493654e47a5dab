package otp

import (
	"context"
	"strings"
	"sync"
	"time"
)

type memoryEntry struct {
	code      string
	expiresAt time.Time
}

// MemoryStore keeps pending codes in process memory. Expired entries are
// dropped lazily on access.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryStore builds an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// Put replaces any pending code for the email.
func (s *MemoryStore) Put(ctx context.Context, email, code string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[normalizeEmail(email)] = memoryEntry{
		code:      code,
		expiresAt: s.now().Add(ttl),
	}
	return nil
}

// Verify consumes the entry on a match, keeps it on a mismatch, and removes
// expired entries as it encounters them.
func (s *MemoryStore) Verify(ctx context.Context, email, code string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := normalizeEmail(email)
	entry, ok := s.entries[key]
	if !ok {
		return false, ErrNotFound
	}
	if s.now().After(entry.expiresAt) {
		delete(s.entries, key)
		return false, ErrExpired
	}
	if entry.code != code {
		return false, nil
	}

	delete(s.entries, key)
	return true, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
