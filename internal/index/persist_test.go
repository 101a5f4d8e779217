package index

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"scholarmatch/internal/encoder"
	"scholarmatch/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshotFixture(t *testing.T) (*Snapshot, []models.Record) {
	t.Helper()

	records := []models.Record{
		&models.Scholarship{Name: "Alpha Award", Provider: "P", Country: "United States",
			Type: "Merit-based", Field: "Engineering", Level: "Graduate", Amount: 10000},
		&models.Scholarship{Name: "Beta Grant", Provider: "P", Country: "Germany",
			Type: "Research", Field: "Medicine", Level: "PhD", Amount: 30000, Renewable: true},
	}
	enc, err := encoder.Fit(records)
	require.NoError(t, err)

	vectors := make([][]float64, len(records))
	for i, r := range records {
		vectors[i], err = enc.Encode(r)
		require.NoError(t, err)
	}
	ix, err := Build(vectors, 0)
	require.NoError(t, err)

	return &Snapshot{
		Kind:    models.KindScholarship,
		Names:   []string{"Alpha Award", "Beta Grant"},
		Encoder: enc,
		Index:   ix,
	}, records
}

func TestSnapshotRoundTrip(t *testing.T) {
	snap, records := snapshotFixture(t)
	path := filepath.Join(t.TempDir(), "model.bin")

	require.NoError(t, SaveSnapshot(path, snap))

	loaded, err := LoadSnapshot(path)
	require.NoError(t, err)
	assert.True(t, loaded.MatchesCatalog(models.KindScholarship, snap.Names))
	assert.Equal(t, snap.Index.Len(), loaded.Index.Len())

	// The restored encoder must reproduce the exact vectors it was fitted
	// with, including the lookup state rebuilt after decoding.
	for i, r := range records {
		want, err := snap.Encoder.Encode(r)
		require.NoError(t, err)
		got, err := loaded.Encoder.Encode(r)
		require.NoError(t, err)
		assert.Equal(t, want, got, "vector %d", i)
	}
}

func TestSnapshotMatchesCatalog(t *testing.T) {
	snap, _ := snapshotFixture(t)

	assert.True(t, snap.MatchesCatalog(models.KindScholarship, []string{"Alpha Award", "Beta Grant"}))
	assert.False(t, snap.MatchesCatalog(models.KindUniversity, []string{"Alpha Award", "Beta Grant"}))
	assert.False(t, snap.MatchesCatalog(models.KindScholarship, []string{"Beta Grant", "Alpha Award"}))
	assert.False(t, snap.MatchesCatalog(models.KindScholarship, []string{"Alpha Award"}))
}

func TestLoadSnapshotMissingFile(t *testing.T) {
	_, err := LoadSnapshot(filepath.Join(t.TempDir(), "absent.bin"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoadSnapshotCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.bin")
	require.NoError(t, os.WriteFile(path, []byte("not a snapshot"), 0o644))

	_, err := LoadSnapshot(path)
	require.Error(t, err)

	var loadErr *models.LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, path, loadErr.Path)
}
