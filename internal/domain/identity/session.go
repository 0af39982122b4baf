package identity

import (
	"context"
	"errors"
	"time"

	"github.com/erp/backoffice/internal/domain/shared"
)

// ErrSessionNotFound is returned by a SessionStore when no blob exists for an id.
var ErrSessionNotFound = errors.New("identity: session not found")

// Credentials are the accounting service credentials the session acts with.
type Credentials struct {
	UserName string `json:"user_name"`
	Password string `json:"password"`
}

// Defaults are the reference values pre-filled on new documents.
type Defaults struct {
	Company     shared.Ref `json:"company"`
	Currency    shared.Ref `json:"currency"`
	Department  shared.Ref `json:"department"`
	Warehouse   shared.Ref `json:"warehouse"`
	CashAccount shared.Ref `json:"cash_account"`
	BankAccount shared.Ref `json:"bank_account"`
	PriceKind   shared.Ref `json:"price_kind"`
	Employee    shared.Ref `json:"employee"`
}

// Session is the signed-in user's identity plus default references. It is
// stored encrypted and never leaves the server in clear form.
type Session struct {
	ID          string      `json:"id"`
	User        shared.Ref  `json:"user"`
	Employee    shared.Ref  `json:"employee"`
	Company     shared.Ref  `json:"company"`
	Credentials Credentials `json:"credentials"`
	Defaults    Defaults    `json:"defaults"`
	Language    string      `json:"language,omitempty"`
	IssuedAt    time.Time   `json:"issued_at"`
	ExpiresAt   time.Time   `json:"expires_at"`
}

// IsExpired reports whether the session is past its expiry at now.
func (s *Session) IsExpired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// SignInResult is what the accounting service returns on a successful sign-in.
type SignInResult struct {
	User     shared.Ref
	Employee shared.Ref
	Company  shared.Ref
	Defaults Defaults
}

// Authenticator verifies credentials against the accounting service.
type Authenticator interface {
	SignIn(ctx context.Context, creds Credentials) (*SignInResult, error)
}

// SessionStore keeps encrypted session blobs keyed by session id.
type SessionStore interface {
	Save(ctx context.Context, id string, blob []byte, ttl time.Duration) error
	Load(ctx context.Context, id string) ([]byte, error)
	Delete(ctx context.Context, id string) error
}

type sessionKey struct{}

// WithSession attaches the session to ctx.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFromContext returns the session attached to ctx, if any.
func SessionFromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(*Session)
	return s, ok && s != nil
}

// DefaultsFromContext returns the session defaults, or zero values without a session.
func DefaultsFromContext(ctx context.Context) Defaults {
	if s, ok := SessionFromContext(ctx); ok {
		return s.Defaults
	}
	return Defaults{}
}
