package index

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Projection is a fitted linear dimensionality reduction (PCA). It is
// fitted once at build time and applied unchanged to every query vector.
// Components holds the top principal axes as rows of length InputDim.
type Projection struct {
	Mean       []float64
	Components [][]float64
}

// FitProjection computes a PCA projection onto the top components
// principal axes via thin SVD of the mean-centered data matrix.
func FitProjection(vectors [][]float64, components int) (*Projection, error) {
	n := len(vectors)
	if n == 0 {
		return nil, fmt.Errorf("no vectors")
	}
	d := len(vectors[0])
	if components > d {
		components = d
	}
	if components > n {
		components = n
	}
	if components <= 0 {
		return nil, fmt.Errorf("invalid component count %d", components)
	}

	mean := make([]float64, d)
	for _, v := range vectors {
		for j, x := range v {
			mean[j] += x
		}
	}
	for j := range mean {
		mean[j] /= float64(n)
	}

	centered := mat.NewDense(n, d, nil)
	for i, v := range vectors {
		for j, x := range v {
			centered.Set(i, j, x-mean[j])
		}
	}

	var svd mat.SVD
	if ok := svd.Factorize(centered, mat.SVDThin); !ok {
		return nil, fmt.Errorf("svd factorization failed")
	}
	var v mat.Dense
	svd.VTo(&v)

	// Singular values come out in descending order, so the first columns
	// of V are the leading principal axes.
	comps := make([][]float64, components)
	for c := 0; c < components; c++ {
		row := make([]float64, d)
		for j := 0; j < d; j++ {
			row[j] = v.At(j, c)
		}
		comps[c] = row
	}
	return &Projection{Mean: mean, Components: comps}, nil
}

// Apply projects one vector into the reduced space.
func (p *Projection) Apply(vec []float64) []float64 {
	out := make([]float64, len(p.Components))
	for c, axis := range p.Components {
		var sum float64
		for j, x := range vec {
			sum += (x - p.Mean[j]) * axis[j]
		}
		out[c] = sum
	}
	return out
}

// OutputDim returns the reduced dimensionality.
func (p *Projection) OutputDim() int { return len(p.Components) }
