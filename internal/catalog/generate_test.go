package catalog

import (
	"testing"

	"scholarmatch/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScholarshipsDeterministic(t *testing.T) {
	first := NewGenerator(42).Scholarships(50)
	second := NewGenerator(42).Scholarships(50)
	require.Len(t, first, 50)

	for i := range first {
		a := first[i].(*models.Scholarship)
		b := second[i].(*models.Scholarship)
		assert.Equal(t, a.Name, b.Name)
		assert.Equal(t, a.ID, b.ID)
		assert.Equal(t, a.Amount, b.Amount)
		assert.Equal(t, a.Country, b.Country)
	}
}

func TestScholarshipsFlagshipsFirst(t *testing.T) {
	records := NewGenerator(1).Scholarships(10)
	require.GreaterOrEqual(t, len(records), 5)

	assert.Equal(t, "Fulbright Program", records[0].(*models.Scholarship).Name)
	assert.Equal(t, "Rhodes Scholarship", records[3].(*models.Scholarship).Name)
}

func TestScholarshipsTruncatedBelowFlagshipCount(t *testing.T) {
	records := NewGenerator(1).Scholarships(2)
	assert.Len(t, records, 2)
}

func TestUniversitiesRankingsAreUnique(t *testing.T) {
	records := NewGenerator(7).Universities(20)
	require.Len(t, records, 20)

	for i, r := range records {
		u := r.(*models.University)
		assert.Equal(t, i+1, u.Ranking)
		assert.Equal(t, models.KindUniversity, u.Kind())
	}
}

func TestGeneratedCatalogEncodesCleanly(t *testing.T) {
	// Every generated record must carry the full attribute set, otherwise
	// the engine build would reject the catalog.
	for _, r := range NewGenerator(3).Scholarships(30) {
		attrs := r.Attributes()
		assert.NotEmpty(t, attrs.Name)
		assert.NotEmpty(t, attrs.Categorical[models.AttrCountry])
		assert.NotEmpty(t, attrs.Categorical[models.AttrField])
		assert.Contains(t, attrs.Numeric, models.AttrAmount)
		assert.Contains(t, attrs.Flags, models.AttrRenewable)
	}
}
