package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/erp/backoffice/internal/domain/identity"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/erp/backoffice/internal/infrastructure/config"
)

// Store is a session store the server can health-check and close.
type Store interface {
	identity.SessionStore
	Ping(ctx context.Context) error
	Close() error
}

// NewStore builds the store selected by cfg.Session.Store.
func NewStore(cfg *config.Config, zl *zap.Logger) (Store, error) {
	switch cfg.Session.Store {
	case "memory", "":
		return NewMemoryStore(time.Minute), nil
	case "redis":
		return NewRedisStore(cfg.Redis, cfg.Session.KeyPrefix)
	case "database":
		db, err := OpenDatabase(cfg.Database, zl, cfg.Log.Level)
		if err != nil {
			return nil, err
		}
		return NewDatabaseStore(db)
	default:
		return nil, fmt.Errorf("unsupported session store %q", cfg.Session.Store)
	}
}

// Manager issues, loads and revokes encrypted sessions.
type Manager struct {
	codec *Codec
	store identity.SessionStore
	ttl   time.Duration
	now   func() time.Time
}

// NewManager creates a manager. Sessions live for ttl.
func NewManager(codec *Codec, store identity.SessionStore, ttl time.Duration) *Manager {
	return &Manager{codec: codec, store: store, ttl: ttl, now: time.Now}
}

// TTL returns the session lifetime.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Create starts a session for a successful sign-in.
func (m *Manager) Create(ctx context.Context, res *identity.SignInResult, creds identity.Credentials, language string) (*identity.Session, error) {
	now := m.now().UTC()
	s := &identity.Session{
		ID:          uuid.NewString(),
		User:        res.User,
		Employee:    res.Employee,
		Company:     res.Company,
		Credentials: creds,
		Defaults:    res.Defaults,
		Language:    language,
		IssuedAt:    now,
		ExpiresAt:   now.Add(m.ttl),
	}
	blob, err := m.codec.Seal(s)
	if err != nil {
		return nil, err
	}
	if err := m.store.Save(ctx, s.ID, blob, m.ttl); err != nil {
		return nil, err
	}
	return s, nil
}

// Load opens the session id. Missing, expired and tampered blobs all
// surface as shared.ErrSessionExpired.
func (m *Manager) Load(ctx context.Context, id string) (*identity.Session, error) {
	if id == "" {
		return nil, shared.ErrSessionExpired
	}
	blob, err := m.store.Load(ctx, id)
	if errors.Is(err, identity.ErrSessionNotFound) {
		return nil, shared.ErrSessionExpired.WithCause(err)
	}
	if err != nil {
		return nil, err
	}
	s, err := m.codec.Open(id, blob)
	if err != nil {
		return nil, shared.ErrSessionExpired.WithCause(err)
	}
	if s.IsExpired(m.now()) {
		_ = m.store.Delete(ctx, id)
		return nil, shared.ErrSessionExpired
	}
	return s, nil
}

// Revoke deletes the session id.
func (m *Manager) Revoke(ctx context.Context, id string) error {
	return m.store.Delete(ctx, id)
}
