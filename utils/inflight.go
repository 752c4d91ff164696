package utils

import "sync"

// InFlightSet tracks entity operations that are currently running so the same
// row cannot be mutated twice concurrently. Acquisition is a compare-and-set:
// a second caller for the same key fails instead of queueing, which makes
// double-submits structurally impossible rather than merely UI-discouraged.
type InFlightSet struct {
	mu  sync.Mutex
	ops map[string]struct{}
}

func NewInFlightSet() *InFlightSet {
	return &InFlightSet{ops: make(map[string]struct{})}
}

// TryAcquire claims key, returning false if an operation on it is already in
// flight.
func (s *InFlightSet) TryAcquire(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.ops[key]; busy {
		return false
	}
	s.ops[key] = struct{}{}
	return true
}

// Release frees key for subsequent operations.
func (s *InFlightSet) Release(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.ops, key)
}
