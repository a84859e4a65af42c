// Package records keeps the finished lap times per track in a JSON file.
package records

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"sync"

	"racer/internal/track"
)

// FileName is the default records file.
const FileName = "race_records.json"

// Table maps track keys ("1".."6") to lap times in seconds, in the order
// they were driven.
type Table map[string][]float64

// NewTable returns a table with an empty list for every track.
func NewTable() Table {
	t := make(Table, track.Count)
	for _, k := range track.Keys() {
		t[k] = []float64{}
	}
	return t
}

// Entry is one lap time with its 1-based position in driving order.
type Entry struct {
	Index   int
	Seconds float64
}

// Store reads and appends to a records file.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore returns a store backed by path. The file is not touched until
// Load or Append.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file.
func (s *Store) Path() string { return s.path }

// Load reads the file. A missing file is an empty table; a corrupt one is
// reported alongside an empty table so the caller may carry on.
func (s *Store) Load() (Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) load() (Table, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewTable(), nil
	}
	if err != nil {
		return NewTable(), fmt.Errorf("read records: %w", err)
	}

	var raw Table
	if err := json.Unmarshal(data, &raw); err != nil {
		return NewTable(), fmt.Errorf("parse records %s: %w", s.path, err)
	}
	t := NewTable()
	for k, v := range raw {
		if v != nil {
			t[k] = v
		}
	}
	return t, nil
}

// Append adds seconds to the list for trackKey and rewrites the file. An
// unreadable existing file is replaced.
func (s *Store) Append(trackKey string, seconds float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, _ := s.load()
	t[trackKey] = append(t[trackKey], seconds)

	data, err := json.MarshalIndent(t, "", "    ")
	if err != nil {
		return fmt.Errorf("encode records: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write records: %w", err)
	}
	return nil
}

// Entries lists the times for trackKey, optionally sorted fastest first.
// Indexes keep the driving order either way.
func (t Table) Entries(trackKey string, sorted bool) []Entry {
	times := t[trackKey]
	out := make([]Entry, len(times))
	for i, sec := range times {
		out[i] = Entry{Index: i + 1, Seconds: sec}
	}
	if sorted {
		slices.SortStableFunc(out, func(a, b Entry) int {
			switch {
			case a.Seconds < b.Seconds:
				return -1
			case a.Seconds > b.Seconds:
				return 1
			}
			return 0
		})
	}
	return out
}

// Best returns the fastest time on trackKey.
func (t Table) Best(trackKey string) (float64, bool) {
	times := t[trackKey]
	if len(times) == 0 {
		return 0, false
	}
	return slices.Min(times), true
}
