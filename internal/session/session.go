// ABOUTME: Session store interface and shared types for the shopper CLI
// ABOUTME: Single source of truth for tokens, CSRF state, and cached profile

package session

// Profile is the locally cached copy of the backend user profile.
// The backend owns this data; the cache only primes display and edit forms.
type Profile struct {
	ID         string `json:"id"`
	Nickname   string `json:"nickname"`
	PostalCode string `json:"postal_code"`
	CreatedAt  string `json:"created_at,omitempty"`
	UpdatedAt  string `json:"updated_at,omitempty"`
}

// Event identifies what part of the session changed.
type Event int

const (
	EventTokens Event = iota
	EventState
	EventProfile
	EventAddress
	EventCleared
)

// Store holds everything the client persists between invocations.
// Implementations must be safe for concurrent use; the last writer wins.
type Store interface {
	// Bearer tokens. An empty access token means "not logged in".
	AccessToken() string
	RefreshToken() string
	SetTokens(access, refresh string) error
	ClearTokens() error

	// CSRF state minted by the login initiator, cleared after a
	// successful exchange.
	State() string
	SetState(state string) error
	ClearState() error

	// Cached user profile, never authoritative.
	Profile() *Profile
	SetProfile(p *Profile) error

	// Last free-text address used on the store search screen.
	LastAddress() string
	SetLastAddress(addr string) error

	// Clear wipes the whole session (logout).
	Clear() error

	// Notify registers a callback invoked after every change.
	Notify(fn func(Event))
}
