package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Scholarship struct {
	ID          uuid.UUID `db:"id"`
	Name        string    `db:"name"`
	Provider    string    `db:"provider"`
	Country     string    `db:"country"`
	Type        string    `db:"type"`
	Field       string    `db:"field"`
	Level       string    `db:"level"`
	Amount      float64   `db:"amount"`
	Fee         float64   `db:"application_fee"`
	Renewable   bool      `db:"renewable"`
	Deadline    string    `db:"deadline"`
	Description string    `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
}

func (s *Scholarship) Kind() Kind { return KindScholarship }

func (s *Scholarship) Attributes() Attributes {
	return Attributes{
		Name: s.Name,
		Categorical: map[string]string{
			AttrCountry: s.Country,
			AttrType:    s.Type,
			AttrField:   s.Field,
			AttrLevel:   s.Level,
		},
		Numeric: map[string]float64{
			AttrAmount: s.Amount,
			AttrFee:    s.Fee,
		},
		Flags: map[string]bool{
			AttrRenewable: s.Renewable,
		},
		Description: s.Description,
	}
}

// SortKey negates the amount so that ascending order yields the largest
// awards first.
func (s *Scholarship) SortKey() float64 { return -s.Amount }

func (s *Scholarship) SearchText() string {
	renewable := "non-renewable"
	if s.Renewable {
		renewable = "renewable"
	}
	parts := []string{
		s.Name, s.Provider, s.Country, s.Type, s.Field, s.Level,
		s.Description, fmt.Sprintf("amount %.0f", s.Amount), renewable,
	}
	return strings.Join(parts, " ")
}
