package index

import "sync"

// Stats is a consistent snapshot of the index size.
type Stats struct {
	Documents int
	Terms     int
}

// Shared serialises every operation on one Store. Each method holds the
// lock for exactly one logical operation and releases it on every return
// path. Callers must not call back into Shared from inside Update.
type Shared struct {
	mu    sync.Mutex
	store Store
}

// NewShared wraps store. The caller keeps ownership of store's lifetime.
func NewShared(store Store) *Shared {
	return &Shared{store: store}
}

// Search runs one query under the lock.
func (s *Shared) Search(query string) ([]Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Search(query)
}

// Stats reads both counters within a single acquisition.
func (s *Shared) Stats() (Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs, err := s.store.DocumentCount()
	if err != nil {
		return Stats{}, err
	}
	terms, err := s.store.TermCount()
	if err != nil {
		return Stats{}, err
	}
	return Stats{Documents: docs, Terms: terms}, nil
}

// Update runs fn with exclusive access to the store. fn must not block on
// I/O unrelated to the store.
func (s *Shared) Update(fn func(Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.store)
}
