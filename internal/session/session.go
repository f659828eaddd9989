package session

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Subscription tiers
const (
	SubscriptionFree    = "free"
	SubscriptionPro     = "pro"
	SubscriptionPremium = "premium"
)

// Content statuses
const (
	StatusDraft     = "draft"
	StatusScheduled = "scheduled"
	StatusPublished = "published"
)

// User is the authenticated account
type User struct {
	ID                 string `json:"id"`
	Email              string `json:"email"`
	Name               string `json:"name"`
	Subscription       string `json:"subscription"`
	SubscriptionExpiry string `json:"subscription_expiry,omitempty"`
}

// BrandProfile describes the business content is generated for
type BrandProfile struct {
	BusinessName   string   `json:"business_name"`
	Description    string   `json:"description"`
	Industry       string   `json:"industry"`
	Tone           string   `json:"tone"`
	TargetAudience string   `json:"target_audience"`
	BrandColors    []string `json:"brand_colors"`
}

// Content mirrors a piece of content held by the backend
type Content struct {
	ID            string     `json:"id"`
	Platform      string     `json:"platform"`
	ContentType   string     `json:"content_type"`
	Body          string     `json:"body"`
	ImageURL      string     `json:"image_url,omitempty"`
	ScheduledDate *time.Time `json:"scheduled_date,omitempty"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
}

// State is a point-in-time copy of the session
type State struct {
	User            *User
	Brand           *BrandProfile
	Contents        []Content
	IsAuthenticated bool
}

// Listener is called with a snapshot after every mutation
type Listener func(State)

// Store holds the session of one running client. It is created per
// application instance and passed to whatever needs it.
type Store struct {
	id        string
	startTime time.Time

	mu    sync.RWMutex
	state State

	listenersMu sync.Mutex
	listeners   map[int]Listener
	nextID      int
}

// New creates an empty session store
func New() *Store {
	return &Store{
		id:        uuid.NewString(),
		startTime: time.Now(),
		state:     State{Contents: []Content{}},
		listeners: make(map[int]Listener),
	}
}

// ID identifies this session instance in logs
func (s *Store) ID() string {
	return s.id
}

// StartTime is when the store was created
func (s *Store) StartTime() time.Time {
	return s.startTime
}

// Snapshot returns a copy of the current state
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copyLocked()
}

// User returns the current user or nil
func (s *Store) User() *User {
	return s.Snapshot().User
}

// IsAuthenticated reports whether a user is set
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.IsAuthenticated
}

// SetUser replaces the user; authentication follows whether u is nil
func (s *Store) SetUser(u *User) {
	s.update(func(st *State) {
		if u != nil {
			cp := *u
			st.User = &cp
		} else {
			st.User = nil
		}
		st.IsAuthenticated = u != nil
	})
}

// SetBrand replaces the brand profile
func (s *Store) SetBrand(b *BrandProfile) {
	s.update(func(st *State) {
		if b != nil {
			cp := *b
			cp.BrandColors = slices.Clone(b.BrandColors)
			st.Brand = &cp
		} else {
			st.Brand = nil
		}
	})
}

// SetContents replaces the content list
func (s *Store) SetContents(contents []Content) {
	s.update(func(st *State) {
		if contents == nil {
			st.Contents = []Content{}
			return
		}
		st.Contents = slices.Clone(contents)
	})
}

// SetIsAuthenticated overrides the authentication flag
func (s *Store) SetIsAuthenticated(authenticated bool) {
	s.update(func(st *State) {
		st.IsAuthenticated = authenticated
	})
}

// Logout resets every field to its empty default. The stored token is
// left alone; callers remove it from their credential store.
func (s *Store) Logout() {
	s.update(func(st *State) {
		*st = State{Contents: []Content{}}
	})
}

// Subscribe registers fn for change notifications and returns a func that removes it
func (s *Store) Subscribe(fn Listener) func() {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = fn

	return func() {
		s.listenersMu.Lock()
		defer s.listenersMu.Unlock()
		delete(s.listeners, id)
	}
}

func (s *Store) update(mutate func(*State)) {
	s.mu.Lock()
	mutate(&s.state)
	snap := s.copyLocked()
	s.mu.Unlock()

	s.listenersMu.Lock()
	listeners := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.listenersMu.Unlock()

	for _, fn := range listeners {
		fn(snap)
	}
}

func (s *Store) copyLocked() State {
	st := State{IsAuthenticated: s.state.IsAuthenticated}
	if s.state.User != nil {
		u := *s.state.User
		st.User = &u
	}
	if s.state.Brand != nil {
		b := *s.state.Brand
		b.BrandColors = slices.Clone(s.state.Brand.BrandColors)
		st.Brand = &b
	}
	st.Contents = slices.Clone(s.state.Contents)
	if st.Contents == nil {
		st.Contents = []Content{}
	}
	return st
}
