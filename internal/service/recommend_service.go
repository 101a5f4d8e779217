package service

import (
	"context"
	"sort"

	"scholarmatch/internal/dto"
	"scholarmatch/internal/models"

	"go.uber.org/zap"
)

const defaultResultCount = 10

// RecommendService serves similarity and preference queries against the
// engine's current state. Filtering always happens before ranking; the
// ranking key is the record kind's numeric sort key unless a similarity
// anchor (record name or synthesized preference vector) is given, in
// which case candidates rank by cosine distance to the anchor.
type RecommendService struct {
	engine *Engine
	logger *zap.Logger
}

func NewRecommendService(engine *Engine, logger *zap.Logger) *RecommendService {
	return &RecommendService{
		engine: engine,
		logger: logger,
	}
}

// FindSimilar returns up to k records nearest to the named record,
// excluding the record itself, ordered by ascending cosine distance.
func (s *RecommendService) FindSimilar(name string, k int) ([]dto.RecordResponse, error) {
	st, err := s.engine.state()
	if err != nil {
		return nil, err
	}
	if k <= 0 {
		k = defaultResultCount
	}

	pos, _, err := st.store.Lookup(name)
	if err != nil {
		return nil, err
	}
	neighbors, err := st.index.Similar(pos, k)
	if err != nil {
		return nil, err
	}

	results := make([]dto.RecordResponse, 0, len(neighbors))
	for _, n := range neighbors {
		resp := dto.FromRecord(st.store.At(n.Pos))
		d := n.Distance
		resp.Distance = &d
		results = append(results, resp)
	}

	s.logger.Debug("Similarity query completed",
		zap.String("anchor", name),
		zap.Int("results", len(results)),
	)
	return results, nil
}

// Recommend filters the catalog by the preferences and returns up to k
// candidates. Fewer than k matches is a valid partial result, never an
// error. Ranking:
//   - anchor name given: cosine distance to the anchor's feature vector
//   - matchProfile: cosine distance to a vector synthesized from the
//     preferences
//   - otherwise: the kind's explicit numeric sort key, ascending
func (s *RecommendService) Recommend(prefs models.Preferences, k int, anchor string, matchProfile bool) ([]dto.RecordResponse, error) {
	st, err := s.engine.state()
	if err != nil {
		return nil, err
	}
	if k <= 0 {
		k = defaultResultCount
	}

	candidates := make([]int, 0, st.store.Len())
	for pos, rec := range st.store.Records() {
		if prefs.Matches(rec) {
			candidates = append(candidates, pos)
		}
	}
	if len(candidates) == 0 {
		return []dto.RecordResponse{}, nil
	}

	var target []float64
	switch {
	case anchor != "":
		anchorPos, _, err := st.store.Lookup(anchor)
		if err != nil {
			return nil, err
		}
		vec, err := st.encoder.Encode(st.store.At(anchorPos))
		if err != nil {
			return nil, err
		}
		target = vec
		// The anchor never recommends itself.
		candidates = remove(candidates, anchorPos)
	case matchProfile:
		target = st.encoder.EncodePreferences(prefs)
	}

	if target != nil {
		neighbors, err := st.index.NearestAmong(target, candidates, k)
		if err != nil {
			return nil, err
		}
		results := make([]dto.RecordResponse, 0, len(neighbors))
		for _, n := range neighbors {
			resp := dto.FromRecord(st.store.At(n.Pos))
			d := n.Distance
			resp.Distance = &d
			results = append(results, resp)
		}
		return results, nil
	}

	// No anchor: explicit numeric sort, stable in catalog order.
	sort.SliceStable(candidates, func(i, j int) bool {
		return st.store.At(candidates[i]).SortKey() < st.store.At(candidates[j]).SortKey()
	})
	if len(candidates) > k {
		candidates = candidates[:k]
	}
	results := make([]dto.RecordResponse, 0, len(candidates))
	for _, pos := range candidates {
		results = append(results, dto.FromRecord(st.store.At(pos)))
	}
	return results, nil
}

// ListRecords pages through the catalog in insertion order.
func (s *RecommendService) ListRecords(limit, offset int) ([]dto.RecordResponse, error) {
	st, err := s.engine.state()
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultResultCount
	}
	if offset < 0 {
		offset = 0
	}
	if offset >= st.store.Len() {
		return []dto.RecordResponse{}, nil
	}
	end := offset + limit
	if end > st.store.Len() {
		end = st.store.Len()
	}
	results := make([]dto.RecordResponse, 0, end-offset)
	for pos := offset; pos < end; pos++ {
		results = append(results, dto.FromRecord(st.store.At(pos)))
	}
	return results, nil
}

// GetRecord resolves one record by name.
func (s *RecommendService) GetRecord(name string) (*dto.RecordResponse, error) {
	st, err := s.engine.state()
	if err != nil {
		return nil, err
	}
	_, rec, err := st.store.Lookup(name)
	if err != nil {
		return nil, err
	}
	resp := dto.FromRecord(rec)
	return &resp, nil
}

// Stats summarizes the catalog served by the current state.
func (s *RecommendService) Stats() (*dto.StatsResponse, error) {
	st, err := s.engine.state()
	if err != nil {
		return nil, err
	}

	stats := &dto.StatsResponse{
		Kind:         string(st.store.Kind()),
		TotalRecords: st.store.Len(),
		FeatureDim:   st.encoder.Dimension(),
		IndexDim:     len(st.index.Vectors[0]),
		ByCountry:    map[string]int{},
		ByType:       map[string]int{},
		ByField:      map[string]int{},
		ByLevel:      map[string]int{},
		BuiltAt:      st.builtAt.Format("2006-01-02T15:04:05Z07:00"),
	}

	var amountSum float64
	var amountCount int
	for _, rec := range st.store.Records() {
		attrs := rec.Attributes()
		stats.ByCountry[attrs.Categorical[models.AttrCountry]]++
		stats.ByType[attrs.Categorical[models.AttrType]]++
		if f := attrs.Categorical[models.AttrField]; f != "" {
			stats.ByField[f]++
		}
		if l := attrs.Categorical[models.AttrLevel]; l != "" {
			stats.ByLevel[l]++
		}
		if amount, ok := attrs.Numeric[models.AttrAmount]; ok {
			amountSum += amount
			amountCount++
			if amount > stats.MaxAmount {
				stats.MaxAmount = amount
			}
		}
		if attrs.Flags[models.AttrRenewable] {
			stats.Renewable++
		}
	}
	if amountCount > 0 {
		stats.AverageAmount = amountSum / float64(amountCount)
	}
	return stats, nil
}

// Rebuild triggers an atomic engine rebuild. Exposed through the admin
// API.
func (s *RecommendService) Rebuild(ctx context.Context) error {
	return s.engine.Rebuild(ctx)
}

func remove(positions []int, drop int) []int {
	out := positions[:0]
	for _, p := range positions {
		if p != drop {
			out = append(out, p)
		}
	}
	return out
}
