package core

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/JonMunkholm/laptops/internal/grid"
)

// LoadTicket stamps a load with the generation it will install.
// Only the most recently issued ticket can be committed.
type LoadTicket struct {
	Generation string
}

// Store owns the in-memory record collection.
//
// Load and Commit replace the whole collection; UpdateField mutates one field
// of one row after validation. Readers get copies through Snapshot and never
// see a partially installed collection.
type Store struct {
	validator Validator

	mu         sync.RWMutex
	records    []Record
	generation string // generation of the installed collection
	latest     string // newest ticket issued by BeginLoad
}

// NewStore creates an empty store that validates edits with v.
func NewStore(v Validator) *Store {
	return &Store{validator: v}
}

// Validator returns the validator used for edits.
func (s *Store) Validator() Validator {
	return s.validator
}

// Load replaces the collection unconditionally.
func (s *Store) Load(records []Record) Change {
	s.mu.Lock()
	defer s.mu.Unlock()

	gen := uuid.NewString()
	s.latest = gen
	return s.install(gen, records)
}

// BeginLoad issues a ticket for a load that will complete later. Issuing a
// ticket makes every earlier outstanding ticket stale.
func (s *Store) BeginLoad() LoadTicket {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.latest = uuid.NewString()
	return LoadTicket{Generation: s.latest}
}

// Commit installs records for ticket t. If a newer ticket has been issued
// since, the records are discarded and ErrStaleLoad is returned.
func (s *Store) Commit(t LoadTicket, records []Record) (Change, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.Generation == "" || t.Generation != s.latest {
		return Change{Generation: s.generation, Mode: grid.PreservePage, Rows: len(s.records)},
			fmt.Errorf("commit %s: %w", t.Generation, ErrStaleLoad)
	}
	return s.install(t.Generation, records), nil
}

func (s *Store) install(gen string, records []Record) Change {
	s.records = append(make([]Record, 0, len(records)), records...)
	s.generation = gen
	return Change{Generation: gen, Mode: grid.ResetPage, Rows: len(s.records)}
}

// UpdateField validates value and, if it passes, replaces field f of row.
// On rejection the record is left untouched and the returned error wraps
// ErrValidationRejected. The returned old value is the value before the edit.
func (s *Store) UpdateField(row int, f Field, value string) (Change, string, error) {
	if err := s.validator.Validate(f, value); err != nil {
		s.mu.RLock()
		defer s.mu.RUnlock()
		return s.unchanged(), "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if row < 0 || row >= len(s.records) {
		return s.unchanged(), "", fmt.Errorf("row %d of %d: %w", row, len(s.records), ErrRowOutOfRange)
	}

	rec := s.records[row]
	old := rec.Value(f)
	if err := rec.SetValue(f, value); err != nil {
		return s.unchanged(), "", &ValidationError{Field: f.String(), Value: value, Message: err.Error()}
	}
	s.records[row] = rec

	return Change{Generation: s.generation, Mode: grid.PreservePage, Rows: len(s.records)}, old, nil
}

// unchanged must be called with s.mu held.
func (s *Store) unchanged() Change {
	return Change{Generation: s.generation, Mode: grid.PreservePage, Rows: len(s.records)}
}

// Snapshot returns a copy of the collection in order.
func (s *Store) Snapshot() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Record(nil), s.records...)
}

// Slice returns a copy of rows [start, end), clamped to the collection.
func (s *Store) Slice(start, end int) []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if start < 0 {
		start = 0
	}
	if end > len(s.records) {
		end = len(s.records)
	}
	if start >= end {
		return nil
	}
	return append([]Record(nil), s.records[start:end]...)
}

// Len returns the number of records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Empty reports whether nothing has been loaded (or an empty file was loaded).
func (s *Store) Empty() bool {
	return s.Len() == 0
}

// Generation returns the generation of the installed collection, "" before
// the first load.
func (s *Store) Generation() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}
