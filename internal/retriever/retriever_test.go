package retriever

import (
	"testing"

	"scholarmatch/internal/catalog"
	"scholarmatch/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureStore(t *testing.T) *catalog.Store {
	t.Helper()
	records := []models.Record{
		&models.Scholarship{
			Name: "Alpha Engineering Award", Provider: "Tech Foundation",
			Country: "United States", Type: "Merit-based", Field: "Engineering",
			Level: "Graduate", Amount: 20000,
			Description: "Supports engineering students building technical skills",
		},
		&models.Scholarship{
			Name: "Beta Health Grant", Provider: "Medical Trust",
			Country: "Germany", Type: "Research", Field: "Medicine",
			Level: "PhD", Amount: 30000, Renewable: true,
			Description: "Funding for health and healthcare research projects",
		},
		&models.Scholarship{
			Name: "Gamma Business Fund", Provider: "Commerce Guild",
			Country: "United Kingdom", Type: "Need-based", Field: "Business",
			Level: "Masters", Amount: 10000,
			Description: "Award for management and entrepreneurship studies",
		},
	}
	store, err := catalog.New(models.KindScholarship, records)
	require.NoError(t, err)
	return store
}

func TestRetrieveRanksByRelevance(t *testing.T) {
	r, err := Build(fixtureStore(t))
	require.NoError(t, err)

	matches := r.Retrieve("engineering", 5)
	require.NotEmpty(t, matches)
	assert.Equal(t, 0, matches[0].Pos)

	for i := 1; i < len(matches); i++ {
		assert.GreaterOrEqual(t, matches[i-1].Score, matches[i].Score)
	}
}

func TestRetrieveExcludesZeroOverlap(t *testing.T) {
	r, err := Build(fixtureStore(t))
	require.NoError(t, err)

	assert.Empty(t, r.Retrieve("underwater volcano surfing", 5))
	assert.Empty(t, r.Retrieve("the and of", 5))
}

func TestRetrieveTruncatesToK(t *testing.T) {
	r, err := Build(fixtureStore(t))
	require.NoError(t, err)

	matches := r.Retrieve("scholarship award grant fund", 1)
	assert.LessOrEqual(t, len(matches), 1)
}

func TestQueryExpansionBridgesVocabulary(t *testing.T) {
	r, err := Build(fixtureStore(t))
	require.NoError(t, err)

	// "medical" appears nowhere in the corpus as a token, but expands to
	// health terms that do.
	matches := r.Retrieve("medical funding", 5)
	require.NotEmpty(t, matches)
	assert.Equal(t, 1, matches[0].Pos)
}

func TestDetectFilters(t *testing.T) {
	r, err := Build(fixtureStore(t))
	require.NoError(t, err)

	boolPtr := func(v bool) *bool { return &v }

	tests := []struct {
		name  string
		query string
		want  models.Preferences
	}{
		{
			name:  "country and field",
			query: "scholarships in the United States for engineering",
			want:  models.Preferences{Country: "United States", Field: "Engineering"},
		},
		{
			name:  "country alias",
			query: "show me scholarships in the us",
			want:  models.Preferences{Country: "United States"},
		},
		{
			name:  "renewable with country",
			query: "renewable awards in germany",
			want:  models.Preferences{Country: "Germany", Renewable: boolPtr(true)},
		},
		{
			name:  "one-time",
			query: "one-time grants please",
			want:  models.Preferences{Renewable: boolPtr(false)},
		},
		{
			name:  "degree level",
			query: "phd funding options",
			want:  models.Preferences{Level: "PhD"},
		},
		{
			name:  "nothing detected",
			query: "something completely unrelated",
			want:  models.Preferences{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.DetectFilters(tt.query)
			assert.Equal(t, tt.want, got)
		})
	}
}
