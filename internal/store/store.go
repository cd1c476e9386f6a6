// Package store implements the durable photo metadata store: a single JSON
// mapping from record id to PhotoRecord, loaded wholesale at startup and
// rewritten wholesale after each indexing batch.
//
// The store is not internally synchronized. Callers that mutate it from
// concurrent requests must serialize Put/Save/Clear themselves.
package store

import (
	"encoding/json"
	"fmt"
	"iter"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
)

// Store holds the in-memory record mapping and its on-disk location.
type Store struct {
	path    string
	records map[string]PhotoRecord
	nextID  int64
}

// New creates a store bound to the given metadata file path.
// Call Load before use.
func New(path string) *Store {
	return &Store{
		path:    path,
		records: make(map[string]PhotoRecord),
	}
}

// Load restores the mapping from disk. A missing file initializes an empty
// store. A corrupt file is logged and replaced with an empty store rather
// than failing startup; durability here is best-effort, not transactional.
func (s *Store) Load() error {
	s.records = make(map[string]PhotoRecord)
	s.nextID = 0

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading metadata file: %w", err)
	}

	var records map[string]PhotoRecord
	if err := json.Unmarshal(data, &records); err != nil {
		log.Printf("metadata file %s is corrupt, starting empty: %v", s.path, err)
		return nil
	}

	for id, rec := range records {
		rec.ID = id
		records[id] = rec
		// Record ids are ordinals; the next id continues past the highest
		// one ever assigned so ids are never reused after a reload.
		if n, err := strconv.ParseInt(id, 10, 64); err == nil && n >= s.nextID {
			s.nextID = n + 1
		}
	}
	s.records = records
	return nil
}

// Save persists the entire mapping. The file is written to a temporary
// sibling and renamed into place so a failed save never corrupts the
// previously durable state.
func (s *Store) Save() error {
	data, err := json.MarshalIndent(s.records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling metadata: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp metadata file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing metadata: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing temp metadata file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing metadata file: %w", err)
	}
	return nil
}

// Put inserts a record under a freshly allocated id and returns the id.
// Existing records are never overwritten.
func (s *Store) Put(rec PhotoRecord) string {
	id := strconv.FormatInt(s.nextID, 10)
	s.nextID++
	rec.ID = id
	s.records[id] = rec
	return id
}

// All returns a restartable iterator over a snapshot of the current records,
// ordered by ascending numeric id.
func (s *Store) All() iter.Seq[PhotoRecord] {
	snapshot := s.sorted()
	return func(yield func(PhotoRecord) bool) {
		for _, rec := range snapshot {
			if !yield(rec) {
				return
			}
		}
	}
}

// ByEvent returns a restartable iterator over records for one event,
// ordered by ascending numeric id.
func (s *Store) ByEvent(eventID string) iter.Seq[PhotoRecord] {
	snapshot := s.sorted()
	return func(yield func(PhotoRecord) bool) {
		for _, rec := range snapshot {
			if rec.EventID != eventID {
				continue
			}
			if !yield(rec) {
				return
			}
		}
	}
}

// Clear empties the mapping and removes the durable state.
func (s *Store) Clear() error {
	s.records = make(map[string]PhotoRecord)
	s.nextID = 0
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing metadata file: %w", err)
	}
	return nil
}

// Len returns the number of records.
func (s *Store) Len() int {
	return len(s.records)
}

// CountUniqueURLs returns the number of distinct photo URLs across all
// records. A URL indexed for two events counts once.
func (s *Store) CountUniqueURLs() int {
	urls := make(map[string]struct{}, len(s.records))
	for _, rec := range s.records {
		urls[rec.PhotoURL] = struct{}{}
	}
	return len(urls)
}

// sorted returns the records ordered by ascending numeric id. Non-numeric
// ids (hand-edited files) sort after numeric ones, by string.
func (s *Store) sorted() []PhotoRecord {
	records := make([]PhotoRecord, 0, len(s.records))
	for _, rec := range s.records {
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool {
		a, errA := strconv.ParseInt(records[i].ID, 10, 64)
		b, errB := strconv.ParseInt(records[j].ID, 10, 64)
		switch {
		case errA == nil && errB == nil:
			return a < b
		case errA == nil:
			return true
		case errB == nil:
			return false
		default:
			return records[i].ID < records[j].ID
		}
	})
	return records
}
