package bruteforce

import (
	"fmt"
	"math"

	"github.com/viant/featurematch/index"
	"gonum.org/v1/gonum/blas/blas32"
)

// Index is an exact nearest-neighbor index scanning every vector and scoring
// by Euclidean distance.
type Index struct {
	vecs [][]float32
	dim  int
}

// New returns an empty brute-force index.
func New() *Index { return &Index{} }

// Build keeps references to vectors; callers must not mutate them afterwards.
func (i *Index) Build(vectors [][]float32) error {
	dim, err := index.Dimension(vectors)
	if err != nil {
		return fmt.Errorf("bruteforce: %w", err)
	}
	i.vecs = append([][]float32(nil), vectors...)
	i.dim = dim
	return nil
}

// Len returns the number of indexed vectors.
func (i *Index) Len() int { return len(i.vecs) }

// Nearest returns the first vector with the smallest L2 distance to query.
func (i *Index) Nearest(query []float32) (index.Neighbor, error) {
	if len(i.vecs) == 0 {
		return index.Neighbor{}, index.ErrEmpty
	}
	if len(query) != i.dim {
		return index.Neighbor{}, fmt.Errorf("bruteforce: %w: query %d != index %d", index.ErrDimension, len(query), i.dim)
	}
	q := blas32.Vector{N: i.dim, Inc: 1, Data: query}
	diff := blas32.Vector{N: i.dim, Inc: 1, Data: make([]float32, i.dim)}
	best := index.Neighbor{Position: -1, Distance: math.MaxFloat32}
	for j, vec := range i.vecs {
		blas32.Copy(q, diff)
		blas32.Axpy(-1, blas32.Vector{N: i.dim, Inc: 1, Data: vec}, diff)
		if d := blas32.Nrm2(diff); best.Position < 0 || d < best.Distance {
			best = index.Neighbor{Position: j, Distance: d}
		}
	}
	return best, nil
}

var _ index.Index = (*Index)(nil)
