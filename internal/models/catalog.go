package models

// Kind identifies which catalog a record belongs to. A server instance
// serves exactly one kind; mixing kinds in one catalog is not supported
// because the feature space differs per kind.
type Kind string

const (
	KindScholarship Kind = "scholarship"
	KindUniversity  Kind = "university"
)

// Attributes is the encoder/filter-facing view of a record. Categorical,
// Numeric and Flags use stable attribute names; the encoder derives its
// vocabulary and scaling statistics from them, and Preferences.Matches
// evaluates constraints against them.
type Attributes struct {
	Name        string
	Categorical map[string]string
	Numeric     map[string]float64
	Flags       map[string]bool
	Description string
}

// Record is the common interface shared by catalog record variants.
// Records are immutable after catalog load.
type Record interface {
	Kind() Kind
	Attributes() Attributes

	// SortKey is the explicit ranking key used when no similarity anchor
	// is given: results are ordered by SortKey ascending. Universities
	// sort by world ranking, scholarships by descending amount.
	SortKey() float64

	// SearchText is the free-text representation indexed by the retriever.
	SearchText() string
}

// Attribute names shared across record kinds.
const (
	AttrCountry   = "country"
	AttrType      = "type"
	AttrField     = "field"
	AttrLevel     = "level"
	AttrAmount    = "amount"
	AttrRanking   = "ranking"
	AttrStudents  = "students"
	AttrFounded   = "founded"
	AttrAge       = "age"
	AttrFee       = "application_fee"
	AttrRenewable = "renewable"
)
