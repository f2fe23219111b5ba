package editor

import (
	"sort"
	"sync"
	"time"

	"github.com/OrganizeVA/turf-backend/internal/dataset"
)

// State is the lifecycle of one precinct within an editing session.
type State int

const (
	Unmodified State = iota
	Pending
	Applied
)

// StagedChange holds candidate region/turf values for one precinct. An empty
// field means "leave as is".
type StagedChange struct {
	Region string `json:"region,omitempty"`
	Turf   string `json:"turf,omitempty"`
}

func (c StagedChange) empty() bool { return c.Region == "" && c.Turf == "" }

// Session owns one working copy of the precinct table plus the staged and
// applied change tracking for a single editing session. There is exactly one
// writer per session; the mutex only guards against overlapping HTTP
// requests from the same client.
type Session struct {
	ID string

	mu       sync.Mutex
	base     *dataset.Dataset
	working  []dataset.Precinct
	byID     map[string]int
	staged   map[string]StagedChange
	changed  map[string]struct{}
	lastSeen time.Time
}

// NewSession builds a session around a deep copy of the dataset's rows.
func NewSession(id string, base *dataset.Dataset) *Session {
	s := &Session{
		ID:       id,
		base:     base,
		staged:   map[string]StagedChange{},
		changed:  map[string]struct{}{},
		lastSeen: time.Now(),
	}
	s.resetWorkingLocked()
	return s
}

func (s *Session) resetWorkingLocked() {
	s.working = s.base.CopyPrecincts()
	s.byID = make(map[string]int, len(s.working))
	for i := range s.working {
		s.byID[s.working[i].ID] = i
	}
}

// Dataset returns the pristine dataset this session was created from, for
// the column-availability flags and the geometry collection.
func (s *Session) Dataset() *dataset.Dataset { return s.base }

// WorkingCopy returns a snapshot of the session's current rows. Callers may
// filter and sort it freely without affecting the session.
func (s *Session) WorkingCopy() []dataset.Precinct {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]dataset.Precinct, len(s.working))
	copy(out, s.working)
	return out
}

// Stage records candidate region/turf values for a precinct. It never
// touches the working copy; Apply does that. Staging an unknown id is a
// no-op and reports false.
func (s *Session) Stage(id string, change StagedChange) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	norm := dataset.NormalizeID(id)
	if _, ok := s.byID[norm]; !ok {
		return false
	}
	s.staged[norm] = change
	return true
}

// Apply overwrites the working copy with every staged entry that carries at
// least one non-empty field, marks those precincts changed, and clears the
// staging area. Returns the number of precincts updated and whether any
// change was actually made, so callers can distinguish "changes applied"
// from "no changes to apply".
func (s *Session) Apply() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	applied := 0
	for id, change := range s.staged {
		if change.empty() {
			continue
		}
		i, ok := s.byID[id]
		if !ok {
			continue
		}
		if change.Region != "" {
			s.working[i].Region = change.Region
		}
		if change.Turf != "" {
			s.working[i].Turf = change.Turf
		}
		s.changed[id] = struct{}{}
		applied++
	}
	s.staged = map[string]StagedChange{}
	return applied, applied > 0
}

// Reset discards the working copy, restores the pristine rows and empties
// both the staging area and the changed-set. Reports false when there was
// nothing to reset.
func (s *Session) Reset() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	had := len(s.changed) > 0 || len(s.staged) > 0
	s.resetWorkingLocked()
	s.staged = map[string]StagedChange{}
	s.changed = map[string]struct{}{}
	return had
}

// ChangedIDs returns the sorted ids of every precinct applied this session.
func (s *Session) ChangedIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.changed))
	for id := range s.changed {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Changed reports whether the given precinct was modified this session.
func (s *Session) Changed(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.changed[dataset.NormalizeID(id)]
	return ok
}

// StateOf reports where a precinct sits in the Unmodified → Pending →
// Applied lifecycle. A precinct both applied and re-staged reads as Pending.
func (s *Session) StateOf(id string) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	norm := dataset.NormalizeID(id)
	if _, ok := s.staged[norm]; ok {
		return Pending
	}
	if _, ok := s.changed[norm]; ok {
		return Applied
	}
	return Unmodified
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) expired(now time.Time, ttl time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen) > ttl
}
