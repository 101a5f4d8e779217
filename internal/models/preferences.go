package models

import "strings"

// Preferences is a transient set of hard constraints combined with
// logical AND. Zero-value string fields and nil pointers impose no
// restriction.
type Preferences struct {
	Country string
	Type    string
	Field   string
	Level   string

	MinAmount   *float64
	MaxAmount   *float64
	MinRanking  *int
	MaxRanking  *int
	MinStudents *int
	MaxStudents *int

	Renewable *bool
}

// IsZero reports whether no constraint is set.
func (p Preferences) IsZero() bool {
	return p.Country == "" && p.Type == "" && p.Field == "" && p.Level == "" &&
		p.MinAmount == nil && p.MaxAmount == nil &&
		p.MinRanking == nil && p.MaxRanking == nil &&
		p.MinStudents == nil && p.MaxStudents == nil &&
		p.Renewable == nil
}

// Matches reports whether every provided constraint holds for the record.
// String constraints match case-insensitively; field matching also accepts
// catalog records declared for "All Fields", as the source data uses that
// value as a wildcard.
func (p Preferences) Matches(r Record) bool {
	attrs := r.Attributes()

	if !matchString(p.Country, attrs.Categorical[AttrCountry]) {
		return false
	}
	if !matchString(p.Type, attrs.Categorical[AttrType]) {
		return false
	}
	if p.Field != "" {
		field := attrs.Categorical[AttrField]
		if !strings.EqualFold(field, "All Fields") && !matchString(p.Field, field) {
			return false
		}
	}
	if !matchString(p.Level, attrs.Categorical[AttrLevel]) {
		return false
	}

	if !inRangeF(attrs.Numeric[AttrAmount], p.MinAmount, p.MaxAmount, attrs.Numeric, AttrAmount) {
		return false
	}
	if !inRangeI(attrs.Numeric, AttrRanking, p.MinRanking, p.MaxRanking) {
		return false
	}
	if !inRangeI(attrs.Numeric, AttrStudents, p.MinStudents, p.MaxStudents) {
		return false
	}

	if p.Renewable != nil && attrs.Flags[AttrRenewable] != *p.Renewable {
		return false
	}
	return true
}

func matchString(want, got string) bool {
	if want == "" {
		return true
	}
	return strings.Contains(strings.ToLower(got), strings.ToLower(want))
}

func inRangeF(v float64, min, max *float64, numeric map[string]float64, key string) bool {
	if min == nil && max == nil {
		return true
	}
	if _, ok := numeric[key]; !ok {
		// Constraint over an attribute the record kind does not carry.
		return false
	}
	if min != nil && v < *min {
		return false
	}
	if max != nil && v > *max {
		return false
	}
	return true
}

func inRangeI(numeric map[string]float64, key string, min, max *int) bool {
	if min == nil && max == nil {
		return true
	}
	v, ok := numeric[key]
	if !ok {
		return false
	}
	if min != nil && v < float64(*min) {
		return false
	}
	if max != nil && v > float64(*max) {
		return false
	}
	return true
}
