package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/google/renameio"
)

// FileStore keeps the registry as an ordered JSON array in a single file.
// Every operation is a whole-file read-modify-write: a mutex serializes
// writers within this process and renameio makes each write an atomic
// replace, so a crashed write never leaves a half-written file behind.
// Two separate processes writing the same file can still lose an update
// (last rename wins); that is a documented limitation of the flat-file
// design, not something this type tries to fix.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore opens the registry at path, creating it with an empty array
// if it does not exist yet.
func NewFileStore(path string) (*FileStore, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := renameio.WriteFile(path, []byte("[]\n"), 0o600); err != nil {
			return nil, fmt.Errorf("creating registry file: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("checking registry file: %w", err)
	}
	return &FileStore{path: path}, nil
}

func (s *FileStore) load() ([]Person, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("reading registry file %s: %w", s.path, err)
	}
	var people []Person
	if err := json.Unmarshal(data, &people); err != nil {
		return nil, fmt.Errorf("parsing registry file %s: %w", s.path, err)
	}
	return people, nil
}

func (s *FileStore) save(people []Person) error {
	if people == nil {
		people = []Person{}
	}
	data, err := json.MarshalIndent(people, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling registry: %w", err)
	}
	if err := renameio.WriteFile(s.path, append(data, '\n'), 0o600); err != nil {
		return fmt.Errorf("writing registry file %s: %w", s.path, err)
	}
	return nil
}

// List returns all records in stored order.
func (s *FileStore) List() ([]Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Upsert replaces or appends a record and writes the full registry back.
func (s *FileStore) Upsert(name string, descriptor []float64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	people, err := s.load()
	if err != nil {
		return 0, err
	}
	updated, err := upsertRecord(people, name, descriptor)
	if err != nil {
		return 0, err
	}
	if err := s.save(updated); err != nil {
		return 0, err
	}
	return len(updated), nil
}

// Remove deletes every record matching name and writes the registry back.
func (s *FileStore) Remove(name string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	people, err := s.load()
	if err != nil {
		return 0, err
	}
	kept := removeRecords(people, name)
	if err := s.save(kept); err != nil {
		return 0, err
	}
	return len(kept), nil
}
