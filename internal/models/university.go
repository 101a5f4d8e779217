package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// referenceYear anchors the derived "age" feature so encodings stay
// deterministic across process runs.
const referenceYear = 2024

type University struct {
	ID          uuid.UUID `db:"id"`
	Name        string    `db:"name"`
	Country     string    `db:"country"`
	City        string    `db:"city"`
	Type        string    `db:"type"` // Public or Private
	Ranking     int       `db:"ranking"`
	Students    int       `db:"students"`
	Founded     int       `db:"founded"`
	Description string    `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
}

func (u *University) Kind() Kind { return KindUniversity }

func (u *University) Attributes() Attributes {
	return Attributes{
		Name: u.Name,
		Categorical: map[string]string{
			AttrCountry: u.Country,
			AttrType:    u.Type,
		},
		Numeric: map[string]float64{
			AttrRanking:  float64(u.Ranking),
			AttrStudents: float64(u.Students),
			AttrFounded:  float64(u.Founded),
			AttrAge:      float64(referenceYear - u.Founded),
		},
		Flags:       map[string]bool{},
		Description: u.Description,
	}
}

// SortKey orders universities by world ranking, best first.
func (u *University) SortKey() float64 { return float64(u.Ranking) }

func (u *University) SearchText() string {
	parts := []string{
		u.Name, u.Country, u.City, u.Type, u.Description,
		fmt.Sprintf("ranking %d", u.Ranking),
		fmt.Sprintf("students %d", u.Students),
	}
	return strings.Join(parts, " ")
}
