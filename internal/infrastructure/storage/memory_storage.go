package storage

import (
	"context"
	"net/url"
	"sync"
	"time"

	documentapp "github.com/erp/backoffice/internal/application/document"
)

var _ documentapp.ObjectStorage = (*MemoryObjectStorage)(nil)

// StoredObject is an object held by MemoryObjectStorage.
type StoredObject struct {
	Data        []byte
	ContentType string
}

// MemoryObjectStorage keeps objects in process. It backs local development
// and tests; its download URLs are not served by anything.
type MemoryObjectStorage struct {
	// BaseURL prefixes generated download URLs.
	BaseURL string

	mu      sync.RWMutex
	objects map[string]StoredObject
}

// NewMemoryObjectStorage creates an empty in-memory storage.
func NewMemoryObjectStorage() *MemoryObjectStorage {
	return &MemoryObjectStorage{
		BaseURL: "https://storage.example.com",
		objects: make(map[string]StoredObject),
	}
}

// Upload stores a copy of data under storageKey.
func (s *MemoryObjectStorage) Upload(_ context.Context, storageKey string, data []byte, contentType string) error {
	if storageKey == "" {
		return ErrStorageKeyRequired
	}
	cp := append([]byte(nil), data...)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[storageKey] = StoredObject{Data: cp, ContentType: contentType}
	return nil
}

// GenerateDownloadURL returns a fake link for storageKey.
func (s *MemoryObjectStorage) GenerateDownloadURL(_ context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, ErrStorageKeyRequired
	}
	expiresAt := time.Now().Add(expiresIn)
	q := url.Values{"expires": {expiresAt.UTC().Format(time.RFC3339)}}
	return s.BaseURL + "/download/" + storageKey + "?" + q.Encode(), expiresAt, nil
}

// Get returns the object stored under storageKey.
func (s *MemoryObjectStorage) Get(storageKey string) (StoredObject, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[storageKey]
	return obj, ok
}

// Ping always succeeds.
func (s *MemoryObjectStorage) Ping(context.Context) error {
	return nil
}
