package catalog

import (
	"fmt"
	"strings"

	"scholarmatch/internal/models"
)

// Store is an immutable in-memory catalog. Record order is fixed at
// construction and is the order similarity-index rows refer to; the store
// is never mutated after New, so concurrent readers need no locking.
type Store struct {
	kind    models.Kind
	records []models.Record
	byName  map[string]int
}

// New builds a store from records of a single kind. Record order is
// preserved.
func New(kind models.Kind, records []models.Record) (*Store, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("catalog is empty")
	}
	byName := make(map[string]int, len(records))
	for i, r := range records {
		if r.Kind() != kind {
			return nil, fmt.Errorf("record %q has kind %s, store holds %s",
				r.Attributes().Name, r.Kind(), kind)
		}
		key := strings.ToLower(r.Attributes().Name)
		if _, dup := byName[key]; !dup {
			byName[key] = i
		}
	}
	return &Store{kind: kind, records: records, byName: byName}, nil
}

func (s *Store) Kind() models.Kind { return s.kind }

func (s *Store) Len() int { return len(s.records) }

// At returns the record at catalog position i. Callers must pass an index
// previously obtained from the store or the similarity index.
func (s *Store) At(i int) models.Record { return s.records[i] }

// Records returns the backing slice. Callers must treat it as read-only.
func (s *Store) Records() []models.Record { return s.records }

// Names returns record names in catalog order.
func (s *Store) Names() []string {
	names := make([]string, len(s.records))
	for i, r := range s.records {
		names[i] = r.Attributes().Name
	}
	return names
}

// Lookup resolves a name to a catalog position. Exact case-insensitive
// match wins; otherwise the first record (in catalog order) whose name
// contains the query as a substring is returned, mirroring the loose
// matching of the source datasets ("MIT" finds "Massachusetts Institute
// of Technology (MIT)").
func (s *Store) Lookup(name string) (int, models.Record, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return 0, nil, fmt.Errorf("empty name: %w", models.ErrNotFound)
	}
	if i, ok := s.byName[key]; ok {
		return i, s.records[i], nil
	}
	for i, r := range s.records {
		if strings.Contains(strings.ToLower(r.Attributes().Name), key) {
			return i, r, nil
		}
	}
	return 0, nil, fmt.Errorf("%q: %w", name, models.ErrNotFound)
}
