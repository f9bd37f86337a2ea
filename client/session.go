package client

import (
	"encoding/json"
	"log"
	"os"
	"sync"
)

// Session owns the authentication token and serialized user profile. It is
// the single read-through accessor for credentials: the client re-reads the
// token on every request, and logout clears everything at once.
type Session interface {
	Token() string
	Profile() *UserProfile
	Set(token string, profile *UserProfile)
	Clear()
}

// MemorySession keeps the session in process memory.
type MemorySession struct {
	mu      sync.RWMutex
	token   string
	profile *UserProfile
}

func NewMemorySession() *MemorySession {
	return &MemorySession{}
}

func (s *MemorySession) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *MemorySession) Profile() *UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.profile == nil {
		return nil
	}
	p := *s.profile
	return &p
}

func (s *MemorySession) Set(token string, profile *UserProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.profile = profile
}

func (s *MemorySession) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.profile = nil
}

// fileSessionState is the persisted shape, fixed keys.
type fileSessionState struct {
	Token string       `json:"token"`
	User  *UserProfile `json:"user,omitempty"`
}

// FileSession persists the session as a JSON file, the analogue of the
// dashboard's persistent local storage. Reads go to disk every time, so a
// token written by another process is picked up on the next request.
type FileSession struct {
	mu   sync.Mutex
	path string
}

func NewFileSession(path string) *FileSession {
	return &FileSession{path: path}
}

func (s *FileSession) load() fileSessionState {
	var state fileSessionState
	data, err := os.ReadFile(s.path)
	if err != nil {
		return state
	}
	// A corrupt session file behaves like an empty one.
	json.Unmarshal(data, &state)
	return state
}

func (s *FileSession) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load().Token
}

func (s *FileSession) Profile() *UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load().User
}

func (s *FileSession) Set(token string, profile *UserProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := json.Marshal(fileSessionState{Token: token, User: profile})
	if err != nil {
		log.Printf("Failed to encode session: %v", err)
		return
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		log.Printf("Failed to persist session to %s: %v", s.path, err)
	}
}

func (s *FileSession) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	os.Remove(s.path)
}
