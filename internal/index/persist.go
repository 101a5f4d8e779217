package index

import (
	"encoding/gob"
	"fmt"
	"os"

	"scholarmatch/internal/encoder"
	"scholarmatch/internal/models"
)

// snapshotVersion guards against loading blobs written by an incompatible
// layout. Bump on any change to the persisted structures.
const snapshotVersion = 1

// Snapshot bundles the fitted encoder and index into one opaque blob,
// together with enough catalog identity to reject a stale file.
type Snapshot struct {
	Version int
	Kind    models.Kind
	Names   []string // record names in catalog order
	Encoder *encoder.Encoder
	Index   *Index
}

// SaveSnapshot writes the snapshot atomically (temp file + rename).
func SaveSnapshot(path string, s *Snapshot) error {
	s.Version = snapshotVersion
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create snapshot file: %w", err)
	}
	if err := gob.NewEncoder(f).Encode(s); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close snapshot file: %w", err)
	}
	return os.Rename(tmp, path)
}

// LoadSnapshot reads and validates a snapshot. A missing file returns
// os.ErrNotExist (callers fall back to a fresh build); anything corrupt
// or incompatible returns *models.LoadError.
func LoadSnapshot(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, err
		}
		return nil, &models.LoadError{Path: path, Err: err}
	}
	defer f.Close()

	var s Snapshot
	if err := gob.NewDecoder(f).Decode(&s); err != nil {
		return nil, &models.LoadError{Path: path, Err: fmt.Errorf("decode: %w", err)}
	}
	if s.Version != snapshotVersion {
		return nil, &models.LoadError{Path: path,
			Err: fmt.Errorf("snapshot version %d, expected %d", s.Version, snapshotVersion)}
	}
	if s.Encoder == nil || s.Index == nil {
		return nil, &models.LoadError{Path: path, Err: fmt.Errorf("incomplete snapshot")}
	}
	if s.Index.Len() != len(s.Names) {
		return nil, &models.LoadError{Path: path,
			Err: fmt.Errorf("index rows (%d) do not match record names (%d)", s.Index.Len(), len(s.Names))}
	}
	return &s, nil
}

// MatchesCatalog reports whether the snapshot was built from exactly this
// catalog (same kind, same records, same order).
func (s *Snapshot) MatchesCatalog(kind models.Kind, names []string) bool {
	if s.Kind != kind || len(s.Names) != len(names) {
		return false
	}
	for i, n := range names {
		if s.Names[i] != n {
			return false
		}
	}
	return true
}
