// ABOUTME: Durable file-backed session store
// ABOUTME: Persists tokens and cached state as JSON in the XDG config directory

package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

const sessionFileName = "session.json"

// FileStore persists the session as JSON in a config directory.
// One durable backend, deliberately: the original client flip-flopped
// between tab-scoped and durable browser storage for the same tokens.
type FileStore struct {
	configDir string

	mu        sync.Mutex
	loaded    bool
	data      sessionData
	listeners []func(Event)
}

type sessionData struct {
	AccessToken  string   `json:"access_token,omitempty"`
	RefreshToken string   `json:"refresh_token,omitempty"`
	OAuthState   string   `json:"oauth_state,omitempty"`
	Profile      *Profile `json:"profile,omitempty"`
	LastAddress  string   `json:"last_address,omitempty"`
}

// NewFileStore creates a store rooted at the given config directory.
func NewFileStore(configDir string) *FileStore {
	return &FileStore{configDir: configDir}
}

// DefaultConfigDir returns the default config directory following XDG spec
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "shopper")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "shopper")
}

func (s *FileStore) sessionFile() string {
	return filepath.Join(s.configDir, sessionFileName)
}

// load reads the session file once; a missing or corrupt file starts fresh.
// Caller must hold s.mu.
func (s *FileStore) load() {
	if s.loaded {
		return
	}
	s.loaded = true

	raw, err := os.ReadFile(s.sessionFile())
	if err != nil {
		return
	}
	var data sessionData
	if err := json.Unmarshal(raw, &data); err != nil {
		return
	}
	s.data = data
}

// save writes the session file with owner-only permissions.
// Caller must hold s.mu.
func (s *FileStore) save() error {
	if err := os.MkdirAll(s.configDir, 0700); err != nil {
		return err
	}
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.sessionFile(), raw, 0600)
}

func (s *FileStore) notify(ev Event) {
	s.mu.Lock()
	listeners := make([]func(Event), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(ev)
	}
}

func (s *FileStore) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()
	return s.data.AccessToken
}

func (s *FileStore) RefreshToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()
	return s.data.RefreshToken
}

func (s *FileStore) SetTokens(access, refresh string) error {
	s.mu.Lock()
	s.load()
	s.data.AccessToken = access
	s.data.RefreshToken = refresh
	err := s.save()
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.notify(EventTokens)
	return nil
}

func (s *FileStore) ClearTokens() error {
	return s.SetTokens("", "")
}

func (s *FileStore) State() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()
	return s.data.OAuthState
}

func (s *FileStore) SetState(state string) error {
	s.mu.Lock()
	s.load()
	s.data.OAuthState = state
	err := s.save()
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.notify(EventState)
	return nil
}

func (s *FileStore) ClearState() error {
	return s.SetState("")
}

func (s *FileStore) Profile() *Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()
	if s.data.Profile == nil {
		return nil
	}
	p := *s.data.Profile
	return &p
}

func (s *FileStore) SetProfile(p *Profile) error {
	s.mu.Lock()
	s.load()
	if p == nil {
		s.data.Profile = nil
	} else {
		copied := *p
		s.data.Profile = &copied
	}
	err := s.save()
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.notify(EventProfile)
	return nil
}

func (s *FileStore) LastAddress() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()
	return s.data.LastAddress
}

func (s *FileStore) SetLastAddress(addr string) error {
	s.mu.Lock()
	s.load()
	s.data.LastAddress = addr
	err := s.save()
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.notify(EventAddress)
	return nil
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	s.load()
	s.data = sessionData{}
	err := s.save()
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.notify(EventCleared)
	return nil
}

func (s *FileStore) Notify(fn func(Event)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}
