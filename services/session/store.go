// Package session holds the search state that survives navigation between
// views for the lifetime of the process.
package session

import (
	"sync"

	"tubewise/models"
)

// State is a copy of the store's contents.
type State struct {
	Query   string
	Result  *models.Recommendation
	Loading bool
}

// HasResult reports whether a search has completed at least once.
func (s State) HasResult() bool {
	return s.Result != nil
}

// Store is a single-slot holder for the last search. It is created once at the
// composition root and handed to the views that need it.
type Store struct {
	mu      sync.RWMutex
	query   string
	result  *models.Recommendation
	loading bool
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Snapshot returns the current state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return State{Query: s.query, Result: s.result, Loading: s.loading}
}

// SetQuery records the query text without starting a search.
func (s *Store) SetQuery(query string) {
	s.mu.Lock()
	s.query = query
	s.mu.Unlock()
}

// Begin marks a search for query as in flight. The previous result stays
// visible until Finish replaces it.
func (s *Store) Begin(query string) {
	s.mu.Lock()
	s.query = query
	s.loading = true
	s.mu.Unlock()
}

// Finish stores the result of the search and clears the loading flag.
func (s *Store) Finish(result *models.Recommendation) {
	s.mu.Lock()
	s.result = result
	s.loading = false
	s.mu.Unlock()
}

// Fail clears the loading flag and keeps whatever result was there.
func (s *Store) Fail() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
}
