// Package session holds the bearer credential bragboard calls the API with.
//
// Sessions are issued elsewhere (the web login); this package only stores what
// it is given, hands it to the API client as an oauth2.TokenSource and reloads
// it when the file changes. It never refreshes or inspects the token.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/oauth2"
)

var ErrNoSession = errors.New("no session found")

const fileName = "session.json"

// Session is the credential plus the identity it belongs to.
type Session struct {
	AccessToken string    `json:"access_token"` // #nosec G117 - JSON field for a bearer token, not an exposed secret
	TokenType   string    `json:"token_type"`
	Expiry      time.Time `json:"expiry,omitempty"`
	UserID      string    `json:"user_id,omitempty"`
	UserName    string    `json:"user_name,omitempty"`
}

// Valid reports whether the session carries a usable token.
func (s *Session) Valid() bool {
	return s != nil && strings.TrimSpace(s.AccessToken) != ""
}

// Token converts the session to an oauth2 token.
func (s *Session) Token() *oauth2.Token {
	tokenType := s.TokenType
	if tokenType == "" {
		tokenType = "Bearer"
	}
	return &oauth2.Token{AccessToken: s.AccessToken, TokenType: tokenType, Expiry: s.Expiry}
}

// Storage persists the session as JSON in the config directory.
type Storage struct {
	dir string
}

func NewStorage(dir string) *Storage {
	return &Storage{dir: dir}
}

// Path is the session file location.
func (s *Storage) Path() string {
	return filepath.Join(s.dir, fileName)
}

func (s *Storage) Save(sess *Session) error {
	if !sess.Valid() {
		return fmt.Errorf("refusing to save session without access token")
	}
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	return os.WriteFile(s.Path(), data, 0600)
}

func (s *Storage) Load() (*Session, error) {
	data, err := os.ReadFile(s.Path()) // #nosec G304 -- path is built from the config dir
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	if !sess.Valid() {
		return nil, ErrNoSession
	}

	return &sess, nil
}

func (s *Storage) Delete() error {
	if err := os.Remove(s.Path()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session: %w", err)
	}
	return nil
}

// Holder is the explicit session object passed to the API client. It satisfies
// oauth2.TokenSource and can be swapped when the session file changes.
type Holder struct {
	current atomic.Pointer[Session]
}

func NewHolder(sess *Session) *Holder {
	h := &Holder{}
	h.Set(sess)
	return h
}

func (h *Holder) Set(sess *Session) {
	h.current.Store(sess)
}

func (h *Holder) Session() *Session {
	return h.current.Load()
}

// Token implements oauth2.TokenSource.
func (h *Holder) Token() (*oauth2.Token, error) {
	sess := h.current.Load()
	if !sess.Valid() {
		return nil, ErrNoSession
	}
	return sess.Token(), nil
}

var _ oauth2.TokenSource = (*Holder)(nil)
