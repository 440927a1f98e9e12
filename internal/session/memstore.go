// ABOUTME: In-memory session store for tests
// ABOUTME: Same semantics as FileStore without touching the filesystem

package session

import "sync"

// MemStore keeps the session in memory. Used by tests to substitute the
// durable store behind the Store interface.
type MemStore struct {
	mu        sync.Mutex
	data      sessionData
	listeners []func(Event)
}

func NewMemStore() *MemStore {
	return &MemStore{}
}

func (s *MemStore) notify(ev Event) {
	s.mu.Lock()
	listeners := make([]func(Event), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(ev)
	}
}

func (s *MemStore) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.AccessToken
}

func (s *MemStore) RefreshToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.RefreshToken
}

func (s *MemStore) SetTokens(access, refresh string) error {
	s.mu.Lock()
	s.data.AccessToken = access
	s.data.RefreshToken = refresh
	s.mu.Unlock()
	s.notify(EventTokens)
	return nil
}

func (s *MemStore) ClearTokens() error {
	return s.SetTokens("", "")
}

func (s *MemStore) State() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.OAuthState
}

func (s *MemStore) SetState(state string) error {
	s.mu.Lock()
	s.data.OAuthState = state
	s.mu.Unlock()
	s.notify(EventState)
	return nil
}

func (s *MemStore) ClearState() error {
	return s.SetState("")
}

func (s *MemStore) Profile() *Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data.Profile == nil {
		return nil
	}
	p := *s.data.Profile
	return &p
}

func (s *MemStore) SetProfile(p *Profile) error {
	s.mu.Lock()
	if p == nil {
		s.data.Profile = nil
	} else {
		copied := *p
		s.data.Profile = &copied
	}
	s.mu.Unlock()
	s.notify(EventProfile)
	return nil
}

func (s *MemStore) LastAddress() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.LastAddress
}

func (s *MemStore) SetLastAddress(addr string) error {
	s.mu.Lock()
	s.data.LastAddress = addr
	s.mu.Unlock()
	s.notify(EventAddress)
	return nil
}

func (s *MemStore) Clear() error {
	s.mu.Lock()
	s.data = sessionData{}
	s.mu.Unlock()
	s.notify(EventCleared)
	return nil
}

func (s *MemStore) Notify(fn func(Event)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}
