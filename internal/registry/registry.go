// Package registry persists the name→descriptor records behind the
// /api/people endpoints. Records are keyed by case-insensitive normalized
// name; the descriptor itself is opaque to this layer.
package registry

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
)

// ErrInvalidInput marks validation failures on registry operations.
// Callers translate it to a 400 response; everything else is a storage error.
var ErrInvalidInput = errors.New("invalid input")

// Person is one registered identity: a display name plus the feature vector
// the vision service produced for it.
type Person struct {
	UID        string    `json:"uid"`
	Name       string    `json:"name"`
	Descriptor []float64 `json:"descriptor"`
}

// Store persists Person records. Implementations keep at most one record per
// case-insensitive normalized name and preserve insertion order.
type Store interface {
	// List returns all records in stored order.
	List() ([]Person, error)
	// Upsert replaces the descriptor of an existing record with a matching
	// name (original casing and UID preserved) or appends a new record.
	// Returns the new total count.
	Upsert(name string, descriptor []float64) (int, error)
	// Remove deletes every record matching the name and returns the new
	// total count. Removing an absent name is not an error.
	Remove(name string) (int, error)
}

// NormalizeName trims a name, collapses internal whitespace runs to a single
// space and applies NFC normalization. Names may be CJK, so Unicode
// normalization has to happen before any comparison.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(norm.NFC.String(name)), " ")
}

// sameName reports whether two already-normalized names refer to the same
// person. Matching is case-insensitive.
func sameName(a, b string) bool {
	return strings.EqualFold(a, b)
}

// upsertRecord applies the upsert semantics to a record slice and returns the
// updated slice. Shared by the file and memory backends so both enforce the
// same invariants.
func upsertRecord(people []Person, name string, descriptor []float64) ([]Person, error) {
	name = NormalizeName(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name must not be empty", ErrInvalidInput)
	}
	if len(descriptor) == 0 {
		return nil, fmt.Errorf("%w: descriptor must not be empty", ErrInvalidInput)
	}

	for i := range people {
		if sameName(NormalizeName(people[i].Name), name) {
			// Index overwrite: position, casing and UID survive re-registration.
			people[i].Descriptor = descriptor
			return people, nil
		}
	}

	return append(people, Person{
		UID:        uuid.NewString(),
		Name:       name,
		Descriptor: descriptor,
	}), nil
}

// removeRecords drops every record matching the name. It removes all matches,
// not just the first, so a registry corrupted into holding duplicates heals on
// the next delete.
func removeRecords(people []Person, name string) []Person {
	name = NormalizeName(name)
	kept := make([]Person, 0, len(people))
	for _, p := range people {
		if !sameName(NormalizeName(p.Name), name) {
			kept = append(kept, p)
		}
	}
	return kept
}
