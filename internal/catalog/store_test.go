package catalog

import (
	"errors"
	"testing"

	"scholarmatch/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	records := []models.Record{
		&models.Scholarship{Name: "Fulbright Program", Country: "United States",
			Type: "Merit-based", Field: "All Fields", Level: "Graduate", Amount: 30000},
		&models.Scholarship{Name: "Rhodes Scholarship", Country: "United Kingdom",
			Type: "Leadership", Field: "All Fields", Level: "Graduate", Amount: 40000},
		&models.Scholarship{Name: "DAAD Study Scholarship", Country: "Germany",
			Type: "Merit-based", Field: "All Fields", Level: "Masters", Amount: 15000},
	}
	store, err := New(models.KindScholarship, records)
	require.NoError(t, err)
	return store
}

func TestNewRejectsEmptyCatalog(t *testing.T) {
	_, err := New(models.KindScholarship, nil)
	assert.Error(t, err)
}

func TestNewRejectsMixedKinds(t *testing.T) {
	records := []models.Record{
		&models.Scholarship{Name: "Alpha Award"},
		&models.University{Name: "Beta University"},
	}
	_, err := New(models.KindScholarship, records)
	assert.Error(t, err)
}

func TestLookupExactMatch(t *testing.T) {
	store := testStore(t)

	pos, rec, err := store.Lookup("Fulbright Program")
	require.NoError(t, err)
	assert.Equal(t, 0, pos)
	assert.Equal(t, "Fulbright Program", rec.Attributes().Name)

	// Case-insensitive.
	pos, _, err = store.Lookup("rhodes scholarship")
	require.NoError(t, err)
	assert.Equal(t, 1, pos)
}

func TestLookupSubstringMatch(t *testing.T) {
	store := testStore(t)

	pos, rec, err := store.Lookup("daad")
	require.NoError(t, err)
	assert.Equal(t, 2, pos)
	assert.Equal(t, "DAAD Study Scholarship", rec.Attributes().Name)

	// First catalog match wins for an ambiguous query.
	pos, _, err = store.Lookup("scholarship")
	require.NoError(t, err)
	assert.Equal(t, 1, pos)
}

func TestLookupNotFound(t *testing.T) {
	store := testStore(t)

	_, _, err := store.Lookup("chevening")
	assert.True(t, errors.Is(err, models.ErrNotFound))

	_, _, err = store.Lookup("   ")
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestNamesPreserveCatalogOrder(t *testing.T) {
	store := testStore(t)
	assert.Equal(t, []string{"Fulbright Program", "Rhodes Scholarship", "DAAD Study Scholarship"}, store.Names())
	assert.Equal(t, 3, store.Len())
}
