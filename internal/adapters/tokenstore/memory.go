package tokenstore

import (
	"context"
	"sync"
	"time"

	"eventsapi/internal/domain"
)

type memoryStore struct {
	mu     sync.RWMutex
	tokens map[string]memoryEntry
	now    func() time.Time
}

type memoryEntry struct {
	accountID string
	expiresAt time.Time
}

// NewMemoryStore returns a process-local TokenStore. Tokens are lost on restart,
// so every client must log in again.
func NewMemoryStore() domain.TokenStore {
	return &memoryStore{tokens: make(map[string]memoryEntry), now: time.Now}
}

func (s *memoryStore) Save(_ context.Context, tokenID, accountID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()
	s.tokens[tokenID] = memoryEntry{accountID: accountID, expiresAt: s.now().Add(ttl)}
	return nil
}

func (s *memoryStore) Exists(_ context.Context, tokenID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.tokens[tokenID]
	if !ok {
		return false, nil
	}
	return s.now().Before(e.expiresAt), nil
}

func (s *memoryStore) Revoke(_ context.Context, tokenID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.tokens[tokenID]
	if !ok {
		return false, nil
	}
	delete(s.tokens, tokenID)
	return s.now().Before(e.expiresAt), nil
}

// sweepLocked drops expired entries. Caller holds s.mu.
func (s *memoryStore) sweepLocked() {
	now := s.now()
	for id, e := range s.tokens {
		if !now.Before(e.expiresAt) {
			delete(s.tokens, id)
		}
	}
}
