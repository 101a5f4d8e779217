package dto

import (
	"time"

	"scholarmatch/internal/models"
)

type SimilarRequest struct {
	Name string `json:"name" validate:"required"`
	K    int    `json:"k" validate:"omitempty,min=1,max=100"`
}

type RecommendRequest struct {
	Country string `json:"country,omitempty"`
	Type    string `json:"type,omitempty"`
	Field   string `json:"field,omitempty"`
	Level   string `json:"level,omitempty"`

	MinAmount   *float64 `json:"min_amount,omitempty" validate:"omitempty,min=0"`
	MaxAmount   *float64 `json:"max_amount,omitempty" validate:"omitempty,min=0"`
	MinRanking  *int     `json:"min_ranking,omitempty" validate:"omitempty,min=1"`
	MaxRanking  *int     `json:"max_ranking,omitempty" validate:"omitempty,min=1"`
	MinStudents *int     `json:"min_students,omitempty" validate:"omitempty,min=0"`
	MaxStudents *int     `json:"max_students,omitempty" validate:"omitempty,min=0"`
	Renewable   *bool    `json:"renewable,omitempty"`

	// SimilarTo anchors ranking on an existing record; MatchProfile ranks
	// by distance to a vector synthesized from the constraints above.
	// With neither, results sort by the catalog kind's numeric key.
	SimilarTo    string `json:"similar_to,omitempty"`
	MatchProfile bool   `json:"match_profile,omitempty"`

	K int `json:"k" validate:"omitempty,min=1,max=100"`
}

// Preferences converts the request's constraint fields.
func (r *RecommendRequest) Preferences() models.Preferences {
	return models.Preferences{
		Country:     r.Country,
		Type:        r.Type,
		Field:       r.Field,
		Level:       r.Level,
		MinAmount:   r.MinAmount,
		MaxAmount:   r.MaxAmount,
		MinRanking:  r.MinRanking,
		MaxRanking:  r.MaxRanking,
		MinStudents: r.MinStudents,
		MaxStudents: r.MaxStudents,
		Renewable:   r.Renewable,
	}
}

// RecordResponse is the API view of a catalog record. Kind-specific
// fields are omitted when empty.
type RecordResponse struct {
	ID          string   `json:"id"`
	Kind        string   `json:"kind"`
	Name        string   `json:"name"`
	Country     string   `json:"country"`
	Type        string   `json:"type"`
	Field       string   `json:"field,omitempty"`
	Level       string   `json:"level,omitempty"`
	Provider    string   `json:"provider,omitempty"`
	Amount      *float64 `json:"amount,omitempty"`
	Renewable   *bool    `json:"renewable,omitempty"`
	Deadline    string   `json:"deadline,omitempty"`
	City        string   `json:"city,omitempty"`
	Ranking     *int     `json:"ranking,omitempty"`
	Students    *int     `json:"students,omitempty"`
	Founded     *int     `json:"founded,omitempty"`
	Description string   `json:"description,omitempty"`
	CreatedAt   string   `json:"created_at,omitempty"`

	// Distance is present on similarity-ranked results (cosine distance,
	// ascending; 0 means identical feature proportions).
	Distance *float64 `json:"distance,omitempty"`
}

// FromRecord converts a catalog record variant to its API view.
func FromRecord(rec models.Record) RecordResponse {
	switch r := rec.(type) {
	case *models.Scholarship:
		amount := r.Amount
		renewable := r.Renewable
		return RecordResponse{
			ID:          r.ID.String(),
			Kind:        string(models.KindScholarship),
			Name:        r.Name,
			Country:     r.Country,
			Type:        r.Type,
			Field:       r.Field,
			Level:       r.Level,
			Provider:    r.Provider,
			Amount:      &amount,
			Renewable:   &renewable,
			Deadline:    r.Deadline,
			Description: r.Description,
			CreatedAt:   r.CreatedAt.Format(time.RFC3339),
		}
	case *models.University:
		ranking := r.Ranking
		students := r.Students
		founded := r.Founded
		return RecordResponse{
			ID:          r.ID.String(),
			Kind:        string(models.KindUniversity),
			Name:        r.Name,
			Country:     r.Country,
			Type:        r.Type,
			City:        r.City,
			Ranking:     &ranking,
			Students:    &students,
			Founded:     &founded,
			Description: r.Description,
			CreatedAt:   r.CreatedAt.Format(time.RFC3339),
		}
	default:
		attrs := rec.Attributes()
		return RecordResponse{
			Kind: string(rec.Kind()),
			Name: attrs.Name,
		}
	}
}

type RecommendResponse struct {
	Records []RecordResponse `json:"records"`
	Count   int              `json:"count"`
}

type StatsResponse struct {
	Kind          string         `json:"kind"`
	TotalRecords  int            `json:"total_records"`
	FeatureDim    int            `json:"feature_dim"`
	IndexDim      int            `json:"index_dim"`
	ByCountry     map[string]int `json:"by_country"`
	ByType        map[string]int `json:"by_type"`
	ByField       map[string]int `json:"by_field,omitempty"`
	ByLevel       map[string]int `json:"by_level,omitempty"`
	AverageAmount float64        `json:"average_amount,omitempty"`
	MaxAmount     float64        `json:"max_amount,omitempty"`
	Renewable     int            `json:"renewable,omitempty"`
	BuiltAt       string         `json:"built_at"`
}
