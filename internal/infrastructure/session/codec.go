package session

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"

	"github.com/erp/backoffice/internal/domain/identity"
)

// hkdfInfo binds derived keys to this blob format.
const hkdfInfo = "backoffice session blob v1"

// ErrMinSecretLength is returned when the session secret is too short to derive a key from.
var ErrMinSecretLength = errors.New("session: secret must be at least 16 characters")

// ErrTampered is returned when a blob fails authentication.
var ErrTampered = errors.New("session: blob failed authentication")

// Codec encrypts sessions with AES-256-GCM. The session id is bound as
// additional data, so a blob only opens under the id it was sealed for.
type Codec struct {
	aead cipher.AEAD
}

// NewCodec derives a 256-bit key from secret with HKDF-SHA256.
func NewCodec(secret string) (*Codec, error) {
	if len(secret) < 16 {
		return nil, ErrMinSecretLength
	}
	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(hkdfInfo)), key); err != nil {
		return nil, fmt.Errorf("session: derive key: %w", err)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("session: create cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("session: create gcm: %w", err)
	}
	return &Codec{aead: aead}, nil
}

// Seal serialises and encrypts s. The blob is nonce || ciphertext.
func (c *Codec) Seal(s *identity.Session) ([]byte, error) {
	plain, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("session: encode: %w", err)
	}
	nonce := make([]byte, c.aead.NonceSize(), c.aead.NonceSize()+len(plain)+c.aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("session: nonce: %w", err)
	}
	return c.aead.Seal(nonce, nonce, plain, []byte(s.ID)), nil
}

// Open decrypts a blob sealed for id.
func (c *Codec) Open(id string, blob []byte) (*identity.Session, error) {
	ns := c.aead.NonceSize()
	if len(blob) < ns+c.aead.Overhead() {
		return nil, ErrTampered
	}
	plain, err := c.aead.Open(nil, blob[:ns], blob[ns:], []byte(id))
	if err != nil {
		return nil, ErrTampered
	}
	var s identity.Session
	if err := json.Unmarshal(plain, &s); err != nil {
		return nil, fmt.Errorf("session: decode: %w", err)
	}
	if s.ID != id {
		return nil, ErrTampered
	}
	return &s, nil
}
