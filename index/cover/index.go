package cover

import (
	"fmt"

	"github.com/viant/featurematch/index"
	"github.com/viant/featurematch/internal/cover/tree"
)

// DefaultBase is the cover-tree level base used when none is configured.
const DefaultBase float32 = 1.3

// Option configures an Index.
type Option func(*Index)

// WithBase overrides the cover-tree level base; values <= 1 are ignored.
func WithBase(base float32) Option {
	return func(i *Index) {
		if base > 1 {
			i.base = base
		}
	}
}

// Index is a Euclidean cover-tree index. Values stored in the tree are the
// build positions of the vectors.
type Index struct {
	base float32
	dim  int
	tree *tree.Tree[int32]
}

// New returns an empty cover-tree index.
func New(opts ...Option) *Index {
	i := &Index{base: DefaultBase}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Build inserts all vectors and precomputes subtree radii.
func (i *Index) Build(vectors [][]float32) error {
	dim, err := index.Dimension(vectors)
	if err != nil {
		return fmt.Errorf("cover: %w", err)
	}
	t := tree.NewTree[int32](i.base, tree.DistanceFunctionEuclidean)
	for pos, vec := range vectors {
		t.Insert(int32(pos), tree.NewPoint(vec...))
	}
	t.Prepare()
	i.tree = t
	i.dim = dim
	return nil
}

// Len returns the number of indexed vectors.
func (i *Index) Len() int {
	if i.tree == nil {
		return 0
	}
	return i.tree.Len()
}

// Nearest returns the closest indexed vector.
func (i *Index) Nearest(query []float32) (index.Neighbor, error) {
	if i.Len() == 0 {
		return index.Neighbor{}, index.ErrEmpty
	}
	if len(query) != i.dim {
		return index.Neighbor{}, fmt.Errorf("cover: %w: query %d != index %d", index.ErrDimension, len(query), i.dim)
	}
	n := i.tree.Nearest(tree.NewPoint(query...))
	if n == nil {
		return index.Neighbor{}, index.ErrEmpty
	}
	pos, ok := i.tree.Value(n.Point)
	if !ok {
		return index.Neighbor{}, fmt.Errorf("cover: nearest point without position")
	}
	return index.Neighbor{Position: int(pos), Distance: n.Distance}, nil
}

var _ index.Index = (*Index)(nil)
