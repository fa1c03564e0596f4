// Package client is the Go storefront client: a session holder, a
// local cart and a thin wrapper over the HTTP API.
package client

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// User is the signed-in identity as returned by the auth endpoint.
type User struct {
	ID    string `json:"id"`
	Phone string `json:"phone"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type sessionState struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// SessionPersistence stores the serialized session between runs.
// Load of missing state must return (nil, nil).
type SessionPersistence interface {
	Load() ([]byte, error)
	Save(data []byte) error
	Clear() error
}

// FileSessionPersistence keeps the session as a JSON file.
type FileSessionPersistence struct {
	Path string
}

func NewFileSessionPersistence(path string) *FileSessionPersistence {
	return &FileSessionPersistence{Path: path}
}

func (p *FileSessionPersistence) Load() ([]byte, error) {
	data, err := os.ReadFile(p.Path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	return data, err
}

func (p *FileSessionPersistence) Save(data []byte) error {
	if err := os.MkdirAll(filepath.Dir(p.Path), 0755); err != nil {
		return err
	}
	return os.WriteFile(p.Path, data, 0600)
}

func (p *FileSessionPersistence) Clear() error {
	err := os.Remove(p.Path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// MemorySessionPersistence holds the session in memory, for tests.
type MemorySessionPersistence struct {
	data []byte
}

func (p *MemorySessionPersistence) Load() ([]byte, error)   { return p.data, nil }
func (p *MemorySessionPersistence) Save(data []byte) error  { p.data = append([]byte(nil), data...); return nil }
func (p *MemorySessionPersistence) Clear() error            { p.data = nil; return nil }

// Session holds the current user and token. It restores itself from
// persistence on creation; unreadable or unparsable state simply starts
// signed out. Tokens are kept until sign-out or replacement, never
// dropped locally on expiry: the server rejects stale ones.
type Session struct {
	mu    sync.Mutex
	state sessionState
	port  SessionPersistence
}

func NewSession(p SessionPersistence) *Session {
	s := &Session{port: p}
	if p == nil {
		return s
	}
	data, err := p.Load()
	if err != nil || len(data) == 0 {
		return s
	}
	var state sessionState
	if err := json.Unmarshal(data, &state); err != nil {
		return s
	}
	s.state = state
	return s
}

// SignIn records the identity and persists it.
func (s *Session) SignIn(user User, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = sessionState{User: &user, Token: token}
	s.persist()
}

// SignOut forgets the identity in memory and in persistence.
func (s *Session) SignOut() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = sessionState{}
	if s.port != nil {
		_ = s.port.Clear()
	}
}

// User returns the signed-in user, or nil.
func (s *Session) User() *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.User == nil {
		return nil
	}
	u := *s.state.User
	return &u
}

// Token returns the bearer token, empty when signed out.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Token
}

// Authenticated reports whether a user is signed in.
func (s *Session) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.User != nil && s.state.Token != ""
}

func (s *Session) persist() {
	if s.port == nil {
		return
	}
	data, err := json.Marshal(s.state)
	if err != nil {
		return
	}
	_ = s.port.Save(data)
}
