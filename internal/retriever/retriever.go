// Package retriever ranks catalog records against free-text queries with
// a TF-IDF bag-of-words index built once over the record descriptions.
// Tokenization is case-insensitive with english stopword removal, applied
// identically at build and query time.
package retriever

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"scholarmatch/internal/catalog"
	"scholarmatch/internal/models"
)

// Match is one retrieval result. Pos is the catalog position.
type Match struct {
	Pos   int
	Score float64 // cosine similarity in TF-IDF space, descending
}

// Retriever holds the fitted term index plus attribute vocabularies used
// for best-effort implicit filter detection.
type Retriever struct {
	vocabulary   map[string]int
	idf          []float64
	docs         [][]float64 // L2-normalized TF-IDF rows, catalog order
	tokenPattern *regexp.Regexp
	stopwords    map[string]struct{}

	countries map[string]string // lowercased phrase -> canonical value
	types     map[string]string
	fields    map[string]string
	levels    map[string]string
}

// Build fits the index over every record's searchable text.
func Build(store *catalog.Store) (*Retriever, error) {
	r := &Retriever{
		vocabulary:   make(map[string]int),
		tokenPattern: regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*`),
		stopwords:    defaultStopwords(),
		countries:    map[string]string{},
		types:        map[string]string{},
		fields:       map[string]string{},
		levels:       map[string]string{},
	}

	corpus := make([]string, store.Len())
	for i, rec := range store.Records() {
		corpus[i] = rec.SearchText()
		attrs := rec.Attributes()
		addVocab(r.countries, attrs.Categorical[models.AttrCountry])
		addVocab(r.types, attrs.Categorical[models.AttrType])
		addVocab(r.fields, attrs.Categorical[models.AttrField])
		addVocab(r.levels, attrs.Categorical[models.AttrLevel])
	}

	// Document frequencies over unique tokens per document.
	df := map[string]int{}
	docTokens := make([][]string, len(corpus))
	for i, text := range corpus {
		tokens := r.tokenize(text)
		docTokens[i] = tokens
		seen := map[string]struct{}{}
		for _, tok := range tokens {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}

	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	if len(terms) == 0 {
		return nil, fmt.Errorf("no indexable tokens in catalog descriptions")
	}

	r.idf = make([]float64, len(terms))
	n := float64(len(corpus))
	for i, term := range terms {
		r.vocabulary[term] = i
		r.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1.0 // smoothed
	}

	r.docs = make([][]float64, len(corpus))
	for i, tokens := range docTokens {
		r.docs[i] = r.vectorizeTokens(tokens)
	}
	return r, nil
}

// Retrieve scores every record against the query and returns the top k by
// descending score. Records with zero term overlap are excluded, never
// padded in. Ties resolve in catalog order.
func (r *Retriever) Retrieve(query string, k int) []Match {
	qvec := r.vectorizeTokens(r.tokenize(expandQuery(query)))
	matches := make([]Match, 0, k)
	for pos, doc := range r.docs {
		score := dot(qvec, doc)
		if score <= 0 {
			continue
		}
		matches = append(matches, Match{Pos: pos, Score: score})
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Pos < matches[j].Pos
	})
	if k >= 0 && len(matches) > k {
		matches = matches[:k]
	}
	return matches
}

// DetectFilters scans the query for known attribute phrases (countries,
// fields, types, levels observed in the catalog) and the renewable
// keyword, and returns them as implicit hard constraints. Best-effort
// keyword matching only; an empty result means no constraint.
func (r *Retriever) DetectFilters(query string) models.Preferences {
	q := " " + strings.ToLower(query) + " "
	var p models.Preferences
	p.Country = matchPhrase(q, r.countries, countryAliases)
	p.Field = matchPhrase(q, r.fields, nil)
	p.Type = matchPhrase(q, r.types, nil)
	p.Level = matchPhrase(q, r.levels, nil)
	if strings.Contains(q, "non-renewable") || strings.Contains(q, "one-time") {
		f := false
		p.Renewable = &f
	} else if strings.Contains(q, "renewable") {
		t := true
		p.Renewable = &t
	}
	return p
}

var countryAliases = map[string]string{
	"us":  "United States",
	"usa": "United States",
	"uk":  "United Kingdom",
}

func matchPhrase(query string, vocab map[string]string, aliases map[string]string) string {
	// Longest phrase wins so "computer science" beats "science".
	bestLen := 0
	canonical := ""
	for phrase, value := range vocab {
		if len(phrase) > bestLen && strings.Contains(query, phrase) {
			bestLen, canonical = len(phrase), value
		}
	}
	if canonical == "" {
		for alias, value := range aliases {
			if _, known := vocab[strings.ToLower(value)]; known && strings.Contains(query, " "+alias+" ") {
				canonical = value
			}
		}
	}
	return canonical
}

func addVocab(vocab map[string]string, value string) {
	if value == "" || strings.EqualFold(value, "All Fields") {
		return
	}
	vocab[strings.ToLower(value)] = value
}

// expandQuery appends synonyms for common field, level and type terms so
// sparse queries still overlap the catalog vocabulary.
func expandQuery(query string) string {
	q := strings.ToLower(query)
	var extra []string
	for trigger, terms := range queryExpansions {
		if strings.Contains(q, trigger) {
			extra = append(extra, terms)
		}
	}
	if len(extra) == 0 {
		return query
	}
	sort.Strings(extra)
	return query + " " + strings.Join(extra, " ")
}

var queryExpansions = map[string]string{
	"engineering":      "technology stem technical",
	"computer science": "technology programming software",
	"medicine":         "health healthcare doctor",
	"medical":          "health healthcare doctor",
	"business":         "management mba entrepreneurship",
	"undergraduate":    "bachelor bachelors",
	"graduate":         "postgraduate phd doctoral",
	"masters":          "postgraduate phd doctoral",
	"merit":            "academic excellence achievement",
	"need":             "financial aid assistance",
}

func (r *Retriever) tokenize(text string) []string {
	raw := r.tokenPattern.FindAllString(strings.ToLower(text), -1)
	out := raw[:0]
	for _, tok := range raw {
		if _, stop := r.stopwords[tok]; stop {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// vectorizeTokens builds an L2-normalized TF-IDF vector. Tokens outside
// the fitted vocabulary contribute nothing.
func (r *Retriever) vectorizeTokens(tokens []string) []float64 {
	vec := make([]float64, len(r.idf))
	tf := map[int]int{}
	total := 0
	for _, tok := range tokens {
		if idx, ok := r.vocabulary[tok]; ok {
			tf[idx]++
			total++
		}
	}
	if total == 0 {
		return vec
	}
	for idx, count := range tf {
		vec[idx] = float64(count) / float64(total) * r.idf[idx]
	}
	var norm float64
	for _, v := range vec {
		norm += v * v
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}

func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

func defaultStopwords() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for",
		"to", "of", "in", "on", "at", "by", "with", "as", "is", "are",
		"was", "were", "be", "been", "being", "it", "this", "that",
		"these", "those", "from", "up", "down", "over", "under", "than",
		"so", "such", "into", "about", "me", "my", "what", "which", "who",
		"show", "tell", "can", "will", "just", "do", "does", "how",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
