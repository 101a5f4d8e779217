package service

import (
	"context"
	"errors"
	"testing"

	"scholarmatch/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memorySource feeds the engine from a slice instead of Postgres.
type memorySource struct {
	kind    models.Kind
	records []models.Record
	loadErr error
}

func (m *memorySource) Kind() models.Kind { return m.kind }

func (m *memorySource) Load(ctx context.Context) ([]models.Record, error) {
	return m.records, m.loadErr
}

func testScholarships() []models.Record {
	return []models.Record{
		&models.Scholarship{
			Name: "Alpha Award", Provider: "Tech Foundation",
			Country: "United States", Type: "Merit-based", Field: "Engineering",
			Level: "Graduate", Amount: 20000,
			Description: "Merit award for engineering students in the United States",
		},
		&models.Scholarship{
			Name: "Beta Grant", Provider: "Science Trust",
			Country: "United States", Type: "Merit-based", Field: "Engineering",
			Level: "Graduate", Amount: 50000, Renewable: true,
			Description: "Renewable grant for outstanding engineering students",
		},
		&models.Scholarship{
			Name: "Gamma Fellowship", Provider: "Medical Institute",
			Country: "Germany", Type: "Research", Field: "Medicine",
			Level: "PhD", Amount: 10000,
			Description: "Research fellowship for doctoral medicine candidates in Germany",
		},
		&models.Scholarship{
			Name: "Delta Scholarship", Provider: "Health Council",
			Country: "United States", Type: "Need-based", Field: "Medicine",
			Level: "Undergraduate", Amount: 30000,
			Description: "Need-based support for undergraduate medicine students",
		},
	}
}

func startedEngine(t *testing.T, records []models.Record) *Engine {
	t.Helper()
	source := &memorySource{kind: models.KindScholarship, records: records}
	engine := NewEngine(source, 0, "", zap.NewNop())
	require.NoError(t, engine.Start(context.Background()))
	return engine
}

func newTestRecommendService(t *testing.T) *RecommendService {
	t.Helper()
	return NewRecommendService(startedEngine(t, testScholarships()), zap.NewNop())
}

func TestRecommendFiltersBeforeRanking(t *testing.T) {
	svc := newTestRecommendService(t)

	results, err := svc.Recommend(models.Preferences{Country: "United States"}, 10, "", false)
	require.NoError(t, err)
	require.Len(t, results, 3)

	// Scholarships rank by descending amount when no anchor is given.
	assert.Equal(t, "Beta Grant", results[0].Name)
	assert.Equal(t, "Delta Scholarship", results[1].Name)
	assert.Equal(t, "Alpha Award", results[2].Name)
	for _, r := range results {
		assert.NotEqual(t, "Gamma Fellowship", r.Name)
		assert.Nil(t, r.Distance)
	}
}

func TestRecommendPartialResultIsNotAnError(t *testing.T) {
	svc := newTestRecommendService(t)

	renewable := true
	results, err := svc.Recommend(models.Preferences{Renewable: &renewable}, 10, "", false)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Beta Grant", results[0].Name)
}

func TestRecommendNoMatches(t *testing.T) {
	svc := newTestRecommendService(t)

	results, err := svc.Recommend(models.Preferences{Country: "France"}, 10, "", false)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRecommendTruncatesToK(t *testing.T) {
	svc := newTestRecommendService(t)

	results, err := svc.Recommend(models.Preferences{}, 2, "", false)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestRecommendWithAnchor(t *testing.T) {
	svc := newTestRecommendService(t)

	results, err := svc.Recommend(models.Preferences{}, 10, "Alpha Award", false)
	require.NoError(t, err)
	require.Len(t, results, 3)

	// Beta shares every categorical attribute with Alpha, so it must rank
	// closest; the anchor itself never appears.
	assert.Equal(t, "Beta Grant", results[0].Name)
	for _, r := range results {
		assert.NotEqual(t, "Alpha Award", r.Name)
		require.NotNil(t, r.Distance)
	}
	for i := 1; i < len(results); i++ {
		assert.LessOrEqual(t, *results[i-1].Distance, *results[i].Distance)
	}
}

func TestRecommendWithUnknownAnchor(t *testing.T) {
	svc := newTestRecommendService(t)

	_, err := svc.Recommend(models.Preferences{}, 10, "Chevening", false)
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestRecommendMatchProfile(t *testing.T) {
	svc := newTestRecommendService(t)

	renewable := true
	prefs := models.Preferences{Country: "United States", Renewable: &renewable}
	results, err := svc.Recommend(prefs, 10, "", true)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Beta Grant", results[0].Name)
	assert.NotNil(t, results[0].Distance)
}

func TestFindSimilar(t *testing.T) {
	svc := newTestRecommendService(t)

	results, err := svc.FindSimilar("Alpha Award", 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Beta Grant", results[0].Name)
	for _, r := range results {
		assert.NotEqual(t, "Alpha Award", r.Name)
		require.NotNil(t, r.Distance)
	}
}

func TestFindSimilarUnknownRecord(t *testing.T) {
	svc := newTestRecommendService(t)

	_, err := svc.FindSimilar("Chevening", 3)
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestGetRecordSubstring(t *testing.T) {
	svc := newTestRecommendService(t)

	rec, err := svc.GetRecord("gamma")
	require.NoError(t, err)
	assert.Equal(t, "Gamma Fellowship", rec.Name)

	_, err = svc.GetRecord("omega")
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestListRecordsPaging(t *testing.T) {
	svc := newTestRecommendService(t)

	page, err := svc.ListRecords(2, 0)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "Alpha Award", page[0].Name)

	tail, err := svc.ListRecords(10, 3)
	require.NoError(t, err)
	require.Len(t, tail, 1)
	assert.Equal(t, "Delta Scholarship", tail[0].Name)

	empty, err := svc.ListRecords(10, 40)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestStats(t *testing.T) {
	svc := newTestRecommendService(t)

	stats, err := svc.Stats()
	require.NoError(t, err)

	assert.Equal(t, string(models.KindScholarship), stats.Kind)
	assert.Equal(t, 4, stats.TotalRecords)
	assert.Equal(t, 3, stats.ByCountry["United States"])
	assert.Equal(t, 1, stats.ByCountry["Germany"])
	assert.Equal(t, 1, stats.Renewable)
	assert.Equal(t, 50000.0, stats.MaxAmount)
	assert.Equal(t, 27500.0, stats.AverageAmount)
	assert.Greater(t, stats.FeatureDim, 0)
}

func TestQueriesBeforeStartFail(t *testing.T) {
	source := &memorySource{kind: models.KindScholarship, records: testScholarships()}
	engine := NewEngine(source, 0, "", zap.NewNop())
	svc := NewRecommendService(engine, zap.NewNop())

	_, err := svc.FindSimilar("Alpha Award", 3)
	assert.Error(t, err)
}

func TestRebuildSwapsState(t *testing.T) {
	source := &memorySource{kind: models.KindScholarship, records: testScholarships()}
	engine := NewEngine(source, 0, "", zap.NewNop())
	require.NoError(t, engine.Start(context.Background()))
	svc := NewRecommendService(engine, zap.NewNop())

	source.records = append(testScholarships(), &models.Scholarship{
		Name: "Epsilon Prize", Provider: "Arts Board",
		Country: "Germany", Type: "Merit-based", Field: "Engineering",
		Level: "Masters", Amount: 5000,
		Description: "Masters level engineering prize in Germany",
	})
	require.NoError(t, svc.Rebuild(context.Background()))

	stats, err := svc.Stats()
	require.NoError(t, err)
	assert.Equal(t, 5, stats.TotalRecords)

	rec, err := svc.GetRecord("epsilon")
	require.NoError(t, err)
	assert.Equal(t, "Epsilon Prize", rec.Name)
}
