package csrf

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/JeanGrijp/go-csrf-session/internal/random"
)

var (
	// ErrMissingToken means no token was issued for the session, or it was already consumed.
	ErrMissingToken = errors.New("csrf: missing token")
	// ErrTokenMismatch means the submitted token is absent or differs from the stored one.
	ErrTokenMismatch = errors.New("csrf: token mismatch")
	// ErrNoSession means the request carries no session.
	ErrNoSession = errors.New("csrf: no session in request")
)

// Session is the slice of session behaviour the token manager needs.
// *session.Session implements it.
type Session interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Delete(key string)
}

// Manager issues and verifies single-use tokens kept in a session.
type Manager struct {
	key        string
	tokenBytes int
}

// NewManager returns a Manager storing tokens under sessionKey.
// Zero values select DefaultSessionKey and DefaultTokenBytes.
func NewManager(sessionKey string, tokenBytes int) *Manager {
	if sessionKey == "" {
		sessionKey = DefaultSessionKey
	}
	if tokenBytes <= 0 {
		tokenBytes = DefaultTokenBytes
	}
	return &Manager{key: sessionKey, tokenBytes: tokenBytes}
}

// Issue stores a fresh token in s, replacing any previous one, and returns it.
// It panics if the system random source fails.
func (m *Manager) Issue(s Session) string {
	tok, err := newToken(m.tokenBytes)
	if err != nil {
		panic(fmt.Sprintf("csrf: generating token: %v", err))
	}
	s.Set(m.key, tok)
	return tok
}

// Verify checks candidate against the token stored in s. The stored token is
// removed whatever the outcome, so every issued token verifies at most once.
func (m *Manager) Verify(s Session, candidate string) error {
	stored, ok := s.Get(m.key)
	if !ok {
		return ErrMissingToken
	}
	s.Delete(m.key)

	if candidate == "" || subtle.ConstantTimeCompare([]byte(candidate), []byte(stored)) != 1 {
		return ErrTokenMismatch
	}
	return nil
}

func newToken(n int) (string, error) {
	return random.Base64String(n)
}
