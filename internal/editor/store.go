package editor

import (
	"sync"
	"time"

	"github.com/OrganizeVA/turf-backend/internal/dataset"
	"github.com/google/uuid"
)

// DatasetProvider hands out the dataset snapshot new sessions copy from.
// *dataset.Store satisfies it.
type DatasetProvider interface {
	Current() *dataset.Dataset
}

// Store is the in-memory session registry. Every browser gets its own
// session and therefore its own working copy; nothing here is ever shared
// across sessions. Expired sessions are swept lazily on access.
type Store struct {
	mu       sync.Mutex
	data     DatasetProvider
	ttl      time.Duration
	sessions map[string]*Session
	now      func() time.Time
}

func NewStore(data DatasetProvider, ttl time.Duration) *Store {
	return &Store{
		data:     data,
		ttl:      ttl,
		sessions: map[string]*Session{},
		now:      time.Now,
	}
}

// Fetch resolves a session id, refreshing its idle timer. Expired or unknown
// ids report false; the caller then creates a replacement.
func (st *Store) Fetch(id string) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	now := st.now()
	st.sweepLocked(now)

	s, ok := st.sessions[id]
	if !ok {
		return nil, false
	}
	s.touch(now)
	return s, true
}

// Create registers a new session over the current dataset snapshot.
func (st *Store) Create() *Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	now := st.now()
	st.sweepLocked(now)

	s := NewSession(uuid.NewString(), st.data.Current())
	s.touch(now)
	st.sessions[s.ID] = s
	return s
}

func (st *Store) sweepLocked(now time.Time) {
	for id, s := range st.sessions {
		if s.expired(now, st.ttl) {
			delete(st.sessions, id)
		}
	}
}
