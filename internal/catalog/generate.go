package catalog

import (
	"fmt"
	"math/rand"
	"time"

	"scholarmatch/internal/models"

	"github.com/google/uuid"
)

// Generator produces synthetic catalog datasets. Generation is
// deterministic for a given seed, so repeated seeding runs and tests see
// identical catalogs.
type Generator struct {
	rng *rand.Rand
}

func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

var countries = []string{
	"United States", "United Kingdom", "Canada", "Australia", "Germany",
	"France", "Netherlands", "Sweden", "Switzerland", "Japan",
	"South Korea", "Singapore", "China", "India", "Brazil",
	"Mexico", "Spain", "Italy", "New Zealand", "Ireland",
}

var fieldsOfStudy = []string{
	"Engineering", "Computer Science", "Medicine", "Business",
	"Law", "Economics", "Mathematics", "Physics", "Chemistry",
	"Biology", "Environmental Science", "Psychology", "Education",
	"Arts and Humanities", "Social Sciences", "Architecture",
	"Nursing", "Pharmacy", "Agriculture", "Data Science",
}

var degreeLevels = []string{
	"Undergraduate", "Graduate", "PhD", "Postdoctoral", "Masters",
}

var scholarshipTypes = []string{
	"Merit-based", "Need-based", "Athletic", "Research",
	"Leadership", "Community Service", "Women in STEM",
	"International Students", "First Generation", "Regional",
}

var providers = []string{
	"Government", "University", "Private Foundation",
	"Corporate", "NGO", "Research Institute", "Embassy",
}

var universityTypes = []string{"Public", "Private"}

// flagshipScholarships are well-known real programs placed at the front of
// the generated catalog, mirroring the curated entries of the source data.
var flagshipScholarships = []models.Scholarship{
	{
		Name: "Fulbright Program", Provider: "US Department of State",
		Country: "United States", Amount: 30000, Type: "Merit-based",
		Field: "All Fields", Level: "Graduate",
		Description: "Premier international educational exchange program for graduate study and research",
	},
	{
		Name: "NSF Graduate Research Fellowship", Provider: "National Science Foundation",
		Country: "United States", Amount: 37000, Type: "Research",
		Field: "Engineering", Level: "Graduate", Renewable: true,
		Description: "Support for graduate students pursuing research in engineering and science fields",
	},
	{
		Name: "Gates Millennium Scholars", Provider: "Gates Foundation",
		Country: "United States", Amount: 50000, Type: "Merit-based",
		Field: "All Fields", Level: "Undergraduate", Renewable: true,
		Description: "Full scholarship for outstanding students with significant financial need",
	},
	{
		Name: "Rhodes Scholarship", Provider: "Rhodes Trust",
		Country: "United Kingdom", Amount: 40000, Type: "Leadership",
		Field: "All Fields", Level: "Graduate", Renewable: true,
		Description: "Postgraduate award supporting study at the University of Oxford",
	},
	{
		Name: "DAAD Study Scholarship", Provider: "German Academic Exchange Service",
		Country: "Germany", Amount: 15000, Type: "Merit-based",
		Field: "All Fields", Level: "Masters",
		Description: "German government scholarship for international graduate students",
	},
}

// Scholarships generates n synthetic scholarship records. Flagship
// entries come first; the remainder is randomized but reproducible.
func (g *Generator) Scholarships(n int) []models.Record {
	records := make([]models.Record, 0, n)
	now := time.Now().UTC()

	for i := range flagshipScholarships {
		s := flagshipScholarships[i]
		s.ID = deterministicID("scholarship", s.Name)
		s.Deadline = "Rolling"
		s.CreatedAt = now
		records = append(records, &s)
		if len(records) == n {
			return records
		}
	}

	for i := len(records); i < n; i++ {
		country := pick(g.rng, countries)
		field := pick(g.rng, fieldsOfStudy)
		level := pick(g.rng, degreeLevels)
		sType := pick(g.rng, scholarshipTypes)
		provider := pick(g.rng, providers)
		amount := float64(1000 * (1 + g.rng.Intn(50)))
		renewable := g.rng.Intn(3) == 0

		name := fmt.Sprintf("%s %s Scholarship %d", country, field, i+1)
		s := &models.Scholarship{
			ID:        deterministicID("scholarship", name),
			Name:      name,
			Provider:  fmt.Sprintf("%s of %s", provider, country),
			Country:   country,
			Type:      sType,
			Field:     field,
			Level:     level,
			Amount:    amount,
			Fee:       float64(g.rng.Intn(5) * 25),
			Renewable: renewable,
			Deadline:  g.deadline(),
			Description: fmt.Sprintf(
				"%s scholarship supporting %s students in %s at the %s level",
				sType, field, country, level),
			CreatedAt: now,
		}
		records = append(records, s)
	}
	return records
}

// Universities generates n synthetic university records with unique
// rankings starting at 1.
func (g *Generator) Universities(n int) []models.Record {
	records := make([]models.Record, 0, n)
	now := time.Now().UTC()

	for i := 0; i < n; i++ {
		country := pick(g.rng, countries)
		uType := pick(g.rng, universityTypes)
		founded := 1500 + g.rng.Intn(520)
		students := 2000 + g.rng.Intn(60000)

		name := fmt.Sprintf("%s %s University %d", country, uType, i+1)
		u := &models.University{
			ID:       deterministicID("university", name),
			Name:     name,
			Country:  country,
			City:     fmt.Sprintf("%s City", country),
			Type:     uType,
			Ranking:  i + 1,
			Students: students,
			Founded:  founded,
			Description: fmt.Sprintf(
				"%s research university in %s, founded %d, ranked %d worldwide",
				uType, country, founded, i+1),
			CreatedAt: now,
		}
		records = append(records, u)
	}
	return records
}

func (g *Generator) deadline() string {
	if g.rng.Intn(4) == 0 {
		return "Rolling"
	}
	month := time.Month(1 + g.rng.Intn(12))
	return fmt.Sprintf("%s %d", month, 1+g.rng.Intn(28))
}

func pick(rng *rand.Rand, values []string) string {
	return values[rng.Intn(len(values))]
}

// deterministicID derives a stable UUID from the record name so repeated
// generation runs upsert the same rows.
func deterministicID(kind, name string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(kind+"/"+name))
}
