package registry

import "sync"

// MemoryStore is an in-memory Store used by handler tests and as an
// ephemeral backend. It supports error injection so callers can exercise
// storage failure paths without a broken file on disk.
type MemoryStore struct {
	mu     sync.RWMutex
	people []Person

	// Error injection
	ListError   error
	UpsertError error
	RemoveError error
}

// NewMemoryStore creates an empty in-memory registry.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// List returns a copy of all records in stored order.
func (s *MemoryStore) List() ([]Person, error) {
	if s.ListError != nil {
		return nil, s.ListError
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Person, len(s.people))
	copy(out, s.people)
	return out, nil
}

// Upsert replaces or appends a record.
func (s *MemoryStore) Upsert(name string, descriptor []float64) (int, error) {
	if s.UpsertError != nil {
		return 0, s.UpsertError
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	updated, err := upsertRecord(s.people, name, descriptor)
	if err != nil {
		return 0, err
	}
	s.people = updated
	return len(s.people), nil
}

// Remove deletes every record matching name.
func (s *MemoryStore) Remove(name string) (int, error) {
	if s.RemoveError != nil {
		return 0, s.RemoveError
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.people = removeRecords(s.people, name)
	return len(s.people), nil
}
