// Package index provides the precomputed nearest-neighbor structure over
// encoded catalog vectors. Distance is cosine (1 - cosine similarity),
// chosen so "similar to" queries compare relative attribute proportions
// rather than magnitudes. Row i of the index corresponds to catalog
// record i; the index is rebuilt whole or not at all.
package index

import (
	"fmt"
	"math"
	"sort"

	"scholarmatch/internal/models"
)

// Neighbor is one result of a nearest query.
type Neighbor struct {
	Pos      int     // catalog position
	Distance float64 // cosine distance, ascending from 0
}

// Index owns the projected feature matrix. Fields are exported for gob
// persistence; treat them as read-only after Build.
type Index struct {
	InputDim   int
	Projection *Projection // nil when no reduction was applied
	Vectors    [][]float64 // one row per catalog record, in catalog order
}

// Build fits the index over the full encoded catalog. When components > 0
// and the raw dimensionality exceeds it, a PCA projection to that many
// components is fitted once and applied to all rows.
func Build(vectors [][]float64, components int) (*Index, error) {
	if len(vectors) == 0 {
		return nil, fmt.Errorf("cannot build index over empty matrix")
	}
	dim := len(vectors[0])
	for _, v := range vectors {
		if len(v) != dim {
			return nil, &models.DimensionMismatchError{Want: dim, Got: len(v)}
		}
	}

	ix := &Index{InputDim: dim}
	if components > 0 && dim > components {
		proj, err := FitProjection(vectors, components)
		if err != nil {
			return nil, fmt.Errorf("fit projection: %w", err)
		}
		ix.Projection = proj
	}

	ix.Vectors = make([][]float64, len(vectors))
	for i, v := range vectors {
		ix.Vectors[i] = ix.project(v)
	}
	return ix, nil
}

// Len returns the number of indexed rows.
func (ix *Index) Len() int { return len(ix.Vectors) }

// Similar returns up to k nearest neighbors of the record at catalog
// position pos, excluding the record itself, ordered by ascending
// distance with ties broken by catalog order.
func (ix *Index) Similar(pos, k int) ([]Neighbor, error) {
	if pos < 0 || pos >= len(ix.Vectors) {
		return nil, fmt.Errorf("index row %d: %w", pos, models.ErrNotFound)
	}
	return ix.nearest(ix.Vectors[pos], k, pos), nil
}

// Nearest returns up to k nearest neighbors of an arbitrary vector in the
// encoder's output space. The vector length must match the encoder
// dimensionality, else *models.DimensionMismatchError.
func (ix *Index) Nearest(vec []float64, k int) ([]Neighbor, error) {
	if len(vec) != ix.InputDim {
		return nil, &models.DimensionMismatchError{Want: ix.InputDim, Got: len(vec)}
	}
	return ix.nearest(ix.project(vec), k, -1), nil
}

// NearestAmong restricts a Nearest query to the given catalog positions.
// Used to rank a filtered candidate pool by distance.
func (ix *Index) NearestAmong(vec []float64, allowed []int, k int) ([]Neighbor, error) {
	if len(vec) != ix.InputDim {
		return nil, &models.DimensionMismatchError{Want: ix.InputDim, Got: len(vec)}
	}
	target := ix.project(vec)
	neighbors := make([]Neighbor, 0, len(allowed))
	for _, pos := range allowed {
		if pos < 0 || pos >= len(ix.Vectors) {
			return nil, fmt.Errorf("index row %d: %w", pos, models.ErrNotFound)
		}
		neighbors = append(neighbors, Neighbor{Pos: pos, Distance: cosineDistance(target, ix.Vectors[pos])})
	}
	sortNeighbors(neighbors)
	if k >= 0 && len(neighbors) > k {
		neighbors = neighbors[:k]
	}
	return neighbors, nil
}

// DistanceBetween returns the cosine distance between two indexed rows.
func (ix *Index) DistanceBetween(a, b int) (float64, error) {
	if a < 0 || a >= len(ix.Vectors) || b < 0 || b >= len(ix.Vectors) {
		return 0, models.ErrNotFound
	}
	return cosineDistance(ix.Vectors[a], ix.Vectors[b]), nil
}

// Row returns the projected vector of a catalog position. Used when an
// anchor record seeds a ranked query.
func (ix *Index) Row(pos int) ([]float64, error) {
	if pos < 0 || pos >= len(ix.Vectors) {
		return nil, fmt.Errorf("index row %d: %w", pos, models.ErrNotFound)
	}
	return ix.Vectors[pos], nil
}

func (ix *Index) nearest(target []float64, k, exclude int) []Neighbor {
	neighbors := make([]Neighbor, 0, len(ix.Vectors))
	for pos, row := range ix.Vectors {
		if pos == exclude {
			continue
		}
		neighbors = append(neighbors, Neighbor{Pos: pos, Distance: cosineDistance(target, row)})
	}
	sortNeighbors(neighbors)
	if k >= 0 && len(neighbors) > k {
		neighbors = neighbors[:k]
	}
	return neighbors
}

func (ix *Index) project(vec []float64) []float64 {
	if ix.Projection == nil {
		return vec
	}
	return ix.Projection.Apply(vec)
}

// sortNeighbors orders by ascending distance, then catalog position, so
// equal distances resolve in catalog insertion order.
func sortNeighbors(neighbors []Neighbor) {
	sort.Slice(neighbors, func(i, j int) bool {
		if neighbors[i].Distance != neighbors[j].Distance {
			return neighbors[i].Distance < neighbors[j].Distance
		}
		return neighbors[i].Pos < neighbors[j].Pos
	})
}

// cosineDistance returns 1 - cos(a, b). Zero-norm vectors compare at the
// maximum distance of 1 to everything.
func cosineDistance(a, b []float64) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 1
	}
	d := 1 - dot/(math.Sqrt(normA)*math.Sqrt(normB))
	if d < 0 {
		// Guard against float noise pushing slightly below zero.
		return 0
	}
	return d
}
