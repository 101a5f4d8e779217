package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"scholarmatch/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestEnginePersistsAndReloadsSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.bin")
	source := &memorySource{kind: models.KindScholarship, records: testScholarships()}

	first := NewEngine(source, 0, path, zap.NewNop())
	require.NoError(t, first.Start(context.Background()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	// A second engine over the same catalog restores the fitted models
	// from the snapshot and serves identical results.
	second := NewEngine(source, 0, path, zap.NewNop())
	require.NoError(t, second.Start(context.Background()))

	fromBuild, err := NewRecommendService(first, zap.NewNop()).FindSimilar("Alpha Award", 3)
	require.NoError(t, err)
	fromSnapshot, err := NewRecommendService(second, zap.NewNop()).FindSimilar("Alpha Award", 3)
	require.NoError(t, err)
	assert.Equal(t, fromBuild, fromSnapshot)
}

func TestEngineRejectsStaleSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.bin")

	first := NewEngine(&memorySource{kind: models.KindScholarship, records: testScholarships()}, 0, path, zap.NewNop())
	require.NoError(t, first.Start(context.Background()))

	// Same file, different catalog: the snapshot no longer describes the
	// data and must be refused rather than silently misused.
	changed := append(testScholarships(), &models.Scholarship{
		Name: "Epsilon Prize", Provider: "Arts Board",
		Country: "Germany", Type: "Merit-based", Field: "Engineering",
		Level: "Masters", Amount: 5000,
		Description: "Masters level engineering prize in Germany",
	})
	second := NewEngine(&memorySource{kind: models.KindScholarship, records: changed}, 0, path, zap.NewNop())

	err := second.Start(context.Background())
	require.Error(t, err)

	var loadErr *models.LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, path, loadErr.Path)
}

func TestEngineRejectsCorruptSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.bin")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o644))

	engine := NewEngine(&memorySource{kind: models.KindScholarship, records: testScholarships()}, 0, path, zap.NewNop())
	err := engine.Start(context.Background())
	require.Error(t, err)

	var loadErr *models.LoadError
	assert.True(t, errors.As(err, &loadErr))
}

func TestEngineStartWithoutPersistence(t *testing.T) {
	engine := NewEngine(&memorySource{kind: models.KindScholarship, records: testScholarships()}, 0, "", zap.NewNop())
	require.NoError(t, engine.Start(context.Background()))

	st, err := engine.state()
	require.NoError(t, err)
	assert.Equal(t, 4, st.store.Len())
}

func TestEngineLoadFailure(t *testing.T) {
	engine := NewEngine(&memorySource{
		kind:    models.KindScholarship,
		loadErr: errors.New("connection refused"),
	}, 0, "", zap.NewNop())

	assert.Error(t, engine.Start(context.Background()))
}
