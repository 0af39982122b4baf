package session

import (
	"context"
	"sync"
	"time"

	"github.com/erp/backoffice/internal/domain/identity"
)

type memoryEntry struct {
	blob      []byte
	expiresAt time.Time
}

// MemoryStore keeps blobs in process. Sessions do not survive a restart and
// are not shared between instances.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time

	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// NewMemoryStore creates a store whose janitor sweeps expired blobs every
// interval. A non-positive interval disables the janitor.
func NewMemoryStore(interval time.Duration) *MemoryStore {
	s := &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	if interval > 0 {
		go s.janitor(interval)
	} else {
		close(s.done)
	}
	return s
}

// Save stores blob under id for ttl.
func (s *MemoryStore) Save(_ context.Context, id string, blob []byte, ttl time.Duration) error {
	cp := make([]byte, len(blob))
	copy(cp, blob)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[id] = memoryEntry{blob: cp, expiresAt: s.now().Add(ttl)}
	return nil
}

// Load returns the blob for id.
func (s *MemoryStore) Load(_ context.Context, id string) ([]byte, error) {
	s.mu.RLock()
	e, ok := s.entries[id]
	s.mu.RUnlock()
	if !ok || !s.now().Before(e.expiresAt) {
		return nil, identity.ErrSessionNotFound
	}
	return e.blob, nil
}

// Delete removes the blob for id.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
	return nil
}

// Len returns the number of stored blobs, expired ones included.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Sweep drops expired blobs.
func (s *MemoryStore) Sweep() {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, e := range s.entries {
		if !now.Before(e.expiresAt) {
			delete(s.entries, id)
		}
	}
}

func (s *MemoryStore) janitor(interval time.Duration) {
	defer close(s.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.Sweep()
		case <-s.stop:
			return
		}
	}
}

// Close stops the janitor and waits for it to exit.
func (s *MemoryStore) Close() error {
	s.once.Do(func() { close(s.stop) })
	<-s.done
	return nil
}

var _ identity.SessionStore = (*MemoryStore)(nil)

// Ping always succeeds.
func (s *MemoryStore) Ping(context.Context) error {
	return nil
}
