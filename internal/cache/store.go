// Package cache holds the client-side mirror of all non-archived cases.
// It is the single owner of the in-memory collection: the realtime
// reconciler and command handlers write through it, the board reads from
// it. Reads return copies; callers never see the backing slice.
package cache

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fabworks/caseboard/internal/domain"
)

// Store is an ordered, id-keyed mirror of the server-held case rows.
// Upsert and Remove are idempotent; replacing a row keeps its position
// so the board's display order is stable across updates.
type Store struct {
	mu    sync.RWMutex
	cases []domain.Case
	index map[uuid.UUID]int
}

// New creates an empty store.
func New() *Store {
	return &Store{index: make(map[uuid.UUID]int)}
}

// Load replaces the entire mirror with the given snapshot, preserving
// its order. Used for the initial fetch and for forced reloads.
func (s *Store) Load(cases []domain.Case) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cases = slices.Clone(cases)
	s.index = make(map[uuid.UUID]int, len(cases))
	for i, c := range s.cases {
		s.index[c.ID] = i
	}
}

// Upsert inserts the case at the end, or replaces it in place when a row
// with the same id already exists.
func (s *Store) Upsert(c domain.Case) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i, ok := s.index[c.ID]; ok {
		s.cases[i] = c
		return
	}
	s.index[c.ID] = len(s.cases)
	s.cases = append(s.cases, c)
}

// Remove deletes the row with the given id. Removing an absent id is a
// no-op. Returns true when a row was removed.
func (s *Store) Remove(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return false
	}
	s.cases = append(s.cases[:i], s.cases[i+1:]...)
	delete(s.index, id)
	for j := i; j < len(s.cases); j++ {
		s.index[s.cases[j].ID] = j
	}
	return true
}

// Get returns a copy of the case with the given id.
func (s *Store) Get(id uuid.UUID) (domain.Case, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[id]
	if !ok {
		return domain.Case{}, false
	}
	return s.cases[i], true
}

// All returns a copy of the mirror in display order.
func (s *Store) All() []domain.Case {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.cases)
}

// ByDue returns the cases due on the given UTC calendar date, in display
// order.
func (s *Store) ByDue(date time.Time) []domain.Case {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Case
	for _, c := range s.cases {
		if domain.SameDay(c.Due, date) {
			out = append(out, c)
		}
	}
	return out
}

// Len returns the number of mirrored cases.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cases)
}
