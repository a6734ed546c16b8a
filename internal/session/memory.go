package session

import (
	"context"
	"sync"
	"time"

	"github.com/zinal-app/apiserver/types"
)

// MemoryStore is an in-process Store used in tests and single-node dev
// setups without Redis. Expired entries are dropped lazily on Get.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]memoryEntry
	ttl      time.Duration
	now      func() time.Time
}

type memoryEntry struct {
	sess      types.Session
	expiresAt time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]memoryEntry),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (s *MemoryStore) Create(_ context.Context, userID int64, isAdmin bool) (types.Session, error) {
	sess := types.Session{
		ID:      newID(),
		UserID:  userID,
		IsAdmin: isAdmin,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = memoryEntry{sess: sess, expiresAt: s.now().Add(s.ttl)}
	return sess, nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (types.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[id]
	if !ok {
		return types.Session{}, ErrNotFound
	}
	if s.now().After(entry.expiresAt) {
		delete(s.sessions, id)
		return types.Session{}, ErrNotFound
	}
	return entry.sess, nil
}

func (s *MemoryStore) SetAnalysisStartedAt(_ context.Context, id string, startedAt int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[id]
	if !ok || s.now().After(entry.expiresAt) {
		delete(s.sessions, id)
		return ErrNotFound
	}
	entry.sess.AnalysisStartedAt = startedAt
	entry.expiresAt = s.now().Add(s.ttl)
	s.sessions[id] = entry
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}
