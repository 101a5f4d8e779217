// Package encoder maps catalog records into a shared fixed-length feature
// space. Categorical attributes are one-hot encoded over vocabularies
// observed at fit time; numeric attributes are min-max scaled to [0,1]
// using statistics computed once from the full catalog; boolean flags
// encode as 0/1. The fitted statistics never change afterwards, so
// encoding the same record twice yields bit-identical vectors.
package encoder

import (
	"fmt"
	"sort"
	"strings"

	"scholarmatch/internal/models"
)

// Encoder holds fitted vocabularies and scaling statistics. Fields are
// exported for gob persistence; treat them as read-only after Fit.
type Encoder struct {
	CatKeys  []string
	Vocab    map[string][]string
	NumKeys  []string
	Min      map[string]float64
	Max      map[string]float64
	FlagKeys []string
	Dim      int

	valueIdx map[string]map[string]int
	offsets  map[string]int
}

// Fit derives vocabularies and scaling statistics from the full catalog
// in one batch pass. Every record must carry every attribute observed on
// any record of the catalog; a gap fails with *models.EncodingError.
func Fit(records []models.Record) (*Encoder, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("cannot fit encoder on empty catalog")
	}

	catSet := map[string]map[string]struct{}{}
	numMin := map[string]float64{}
	numMax := map[string]float64{}
	flagSet := map[string]struct{}{}

	for _, r := range records {
		attrs := r.Attributes()
		for key, val := range attrs.Categorical {
			if catSet[key] == nil {
				catSet[key] = map[string]struct{}{}
			}
			catSet[key][canon(val)] = struct{}{}
		}
		for key, val := range attrs.Numeric {
			if cur, ok := numMin[key]; !ok || val < cur {
				numMin[key] = val
			}
			if cur, ok := numMax[key]; !ok || val > cur {
				numMax[key] = val
			}
		}
		for key := range attrs.Flags {
			flagSet[key] = struct{}{}
		}
	}

	e := &Encoder{
		Vocab: make(map[string][]string, len(catSet)),
		Min:   numMin,
		Max:   numMax,
	}
	for key, values := range catSet {
		e.CatKeys = append(e.CatKeys, key)
		vocab := make([]string, 0, len(values))
		for v := range values {
			vocab = append(vocab, v)
		}
		sort.Strings(vocab)
		e.Vocab[key] = vocab
	}
	sort.Strings(e.CatKeys)
	for key := range numMin {
		e.NumKeys = append(e.NumKeys, key)
	}
	sort.Strings(e.NumKeys)
	for key := range flagSet {
		e.FlagKeys = append(e.FlagKeys, key)
	}
	sort.Strings(e.FlagKeys)

	e.buildLayout()

	// Strictness check: every record encodes cleanly against the fitted
	// layout, so later per-record failures can only mean drifted input.
	for _, r := range records {
		if _, err := e.Encode(r); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// buildLayout computes vector offsets and lookup maps from the exported
// state. Called after Fit and after gob decoding.
func (e *Encoder) buildLayout() {
	e.valueIdx = make(map[string]map[string]int, len(e.CatKeys))
	e.offsets = make(map[string]int, len(e.CatKeys)+len(e.NumKeys)+len(e.FlagKeys))

	dim := 0
	for _, key := range e.CatKeys {
		e.offsets[key] = dim
		idx := make(map[string]int, len(e.Vocab[key]))
		for i, v := range e.Vocab[key] {
			idx[v] = i
		}
		e.valueIdx[key] = idx
		dim += len(e.Vocab[key])
	}
	for _, key := range e.NumKeys {
		e.offsets[key] = dim
		dim++
	}
	for _, key := range e.FlagKeys {
		e.offsets[key] = dim
		dim++
	}
	e.Dim = dim
}

// Dimension returns the fixed output vector length.
func (e *Encoder) Dimension() int { return e.Dim }

// Encode transforms one record into the fitted feature space. A missing
// attribute fails with *models.EncodingError; a categorical value never
// observed at fit time fails with models.ErrNotFound.
func (e *Encoder) Encode(r models.Record) ([]float64, error) {
	if e.valueIdx == nil {
		e.buildLayout()
	}
	attrs := r.Attributes()
	vec := make([]float64, e.Dim)

	for _, key := range e.CatKeys {
		val, ok := attrs.Categorical[key]
		if !ok || val == "" {
			return nil, &models.EncodingError{Record: attrs.Name, Attribute: key}
		}
		i, known := e.valueIdx[key][canon(val)]
		if !known {
			return nil, fmt.Errorf("unseen %s value %q on record %q: %w",
				key, val, attrs.Name, models.ErrNotFound)
		}
		vec[e.offsets[key]+i] = 1
	}
	for _, key := range e.NumKeys {
		val, ok := attrs.Numeric[key]
		if !ok {
			return nil, &models.EncodingError{Record: attrs.Name, Attribute: key}
		}
		vec[e.offsets[key]] = e.scale(key, val)
	}
	for _, key := range e.FlagKeys {
		val, ok := attrs.Flags[key]
		if !ok {
			return nil, &models.EncodingError{Record: attrs.Name, Attribute: key}
		}
		if val {
			vec[e.offsets[key]] = 1
		}
	}
	return vec, nil
}

// EncodePreferences synthesizes a target vector from partial constraints
// for profile-based ranking. Absent constraints contribute zero; range
// constraints contribute their midpoint clamped to the observed range.
// Best-effort: an equality value outside the fitted vocabulary is simply
// skipped, since a preference is a wish, not a record.
func (e *Encoder) EncodePreferences(p models.Preferences) []float64 {
	if e.valueIdx == nil {
		e.buildLayout()
	}
	vec := make([]float64, e.Dim)

	setCat := func(key, val string) {
		if val == "" {
			return
		}
		if i, ok := e.valueIdx[key][canon(val)]; ok {
			vec[e.offsets[key]+i] = 1
		}
	}
	setCat(models.AttrCountry, p.Country)
	setCat(models.AttrType, p.Type)
	setCat(models.AttrField, p.Field)
	setCat(models.AttrLevel, p.Level)

	setNum := func(key string, min, max *float64) {
		if min == nil && max == nil {
			return
		}
		if _, ok := e.offsets[key]; !ok {
			return
		}
		lo, hi := e.Min[key], e.Max[key]
		target := lo
		switch {
		case min != nil && max != nil:
			target = (*min + *max) / 2
		case min != nil:
			target = *min
		default:
			target = *max
		}
		if target < lo {
			target = lo
		}
		if target > hi {
			target = hi
		}
		vec[e.offsets[key]] = e.scale(key, target)
	}
	setNum(models.AttrAmount, p.MinAmount, p.MaxAmount)
	setNum(models.AttrRanking, intPtrToFloat(p.MinRanking), intPtrToFloat(p.MaxRanking))
	setNum(models.AttrStudents, intPtrToFloat(p.MinStudents), intPtrToFloat(p.MaxStudents))

	if p.Renewable != nil && *p.Renewable {
		if off, ok := e.offsets[models.AttrRenewable]; ok {
			vec[off] = 1
		}
	}
	return vec
}

// scale min-max normalizes into [0,1]. A constant attribute maps to 0.5
// so it neither dominates nor vanishes under cosine distance.
func (e *Encoder) scale(key string, val float64) float64 {
	lo, hi := e.Min[key], e.Max[key]
	if hi == lo {
		return 0.5
	}
	s := (val - lo) / (hi - lo)
	if s < 0 {
		s = 0
	}
	if s > 1 {
		s = 1
	}
	return s
}

func canon(v string) string { return strings.ToLower(strings.TrimSpace(v)) }

func intPtrToFloat(p *int) *float64 {
	if p == nil {
		return nil
	}
	f := float64(*p)
	return &f
}
