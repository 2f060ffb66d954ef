package matcher

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/rs/xid"

	"github.com/viant/featurematch/descriptor"
	"github.com/viant/featurematch/extractor"
	"github.com/viant/featurematch/index"
	"github.com/viant/featurematch/index/bruteforce"
	"github.com/viant/featurematch/index/cover"
)

const (
	// NoMatch is returned when no reference image accumulated enough weight.
	NoMatch = -1
	// UnknownMatcher is returned when no matcher is registered under a name.
	UnknownMatcher = -2
	// DefaultMinVotes is the minimum accumulated weight used when callers do not choose one.
	DefaultMinVotes = 22
)

var (
	// ErrLengthMismatch is returned when reference names and matrices differ in count.
	ErrLengthMismatch = errors.New("matcher: reference names and descriptor matrices differ in length")
	// ErrDimensionMismatch is returned when reference descriptors do not share one dimension.
	ErrDimensionMismatch = errors.New("matcher: descriptor dimension mismatch")
	// ErrClosed is returned when querying a released matcher.
	ErrClosed = errors.New("matcher: closed")
)

// Matcher is an immutable nearest-neighbor index over the descriptor vectors
// of a set of reference images. Queries may run concurrently.
type Matcher struct {
	id        string
	names     []string
	refs      []*descriptor.Matrix
	owners    []int32
	dim       int
	kind      index.Kind
	idx       index.Index
	weighting Weighting
	extractor extractor.Type
	closed    atomic.Bool
}

// Build indexes the descriptors of the named reference images. Matrix i
// belongs to names[i]; vectors of any element type are converted to float32.
// Reference images without vectors are kept and never receive votes. The
// matcher takes ownership of mats.
func Build(names []string, mats []*descriptor.Matrix, opts ...Option) (*Matcher, error) {
	if len(names) != len(mats) {
		return nil, fmt.Errorf("%w: %d names, %d matrices", ErrLengthMismatch, len(names), len(mats))
	}
	o := newOptions(opts)
	m := &Matcher{
		id:        xid.New().String(),
		names:     append([]string(nil), names...),
		refs:      make([]*descriptor.Matrix, len(mats)),
		weighting: o.Weighting,
		extractor: o.Extractor,
	}
	total := 0
	for i, mat := range mats {
		if mat == nil {
			mat = &descriptor.Matrix{Type: descriptor.Float32}
		}
		if err := mat.Validate(); err != nil {
			return nil, fmt.Errorf("matcher: reference %q: %w", names[i], err)
		}
		if mat.Rows > 0 {
			if total > 0 && mat.Cols != m.dim {
				return nil, fmt.Errorf("%w: reference %q has %d columns, want %d", ErrDimensionMismatch, names[i], mat.Cols, m.dim)
			}
			m.dim = mat.Cols
			total += mat.Rows
		}
		m.refs[i] = mat
	}

	vectors := make([][]float32, 0, total)
	m.owners = make([]int32, 0, total)
	for owner, ref := range m.refs {
		ref = ref.Canonical()
		for r := 0; r < ref.Rows; r++ {
			vectors = append(vectors, ref.Row(r))
			m.owners = append(m.owners, int32(owner))
		}
	}
	m.kind = o.Kind.Resolve(len(vectors), m.dim)
	if len(vectors) == 0 {
		return m, nil
	}
	m.idx = newIndex(m.kind, o.CoverBase)
	if err := m.idx.Build(vectors); err != nil {
		return nil, fmt.Errorf("matcher: build %v index: %w", m.kind, err)
	}
	return m, nil
}

func newIndex(kind index.Kind, base float32) index.Index {
	if kind == index.KindCover {
		return cover.New(cover.WithBase(base))
	}
	return bruteforce.New()
}

// ID returns the unique identifier assigned when the matcher was built.
func (m *Matcher) ID() string { return m.id }

// Len returns the number of reference images, which is also the number of
// vote accumulator slots.
func (m *Matcher) Len() int { return len(m.names) }

// Names returns a copy of the reference image names in index order.
func (m *Matcher) Names() []string { return append([]string(nil), m.names...) }

// NameOf returns the name of reference image i.
func (m *Matcher) NameOf(i int) (string, bool) {
	if i < 0 || i >= len(m.names) {
		return "", false
	}
	return m.names[i], true
}

// VectorCount returns the number of indexed descriptor vectors.
func (m *Matcher) VectorCount() int { return len(m.owners) }

// Dim returns the descriptor dimension, or 0 when nothing is indexed.
func (m *Matcher) Dim() int { return m.dim }

// Kind returns the resolved index kind.
func (m *Matcher) Kind() index.Kind { return m.kind }

// Extractor returns the extractor type the reference descriptors came from.
func (m *Matcher) Extractor() extractor.Type { return m.extractor }

// Weighting returns the distance to vote weight conversion.
func (m *Matcher) Weighting() Weighting { return m.weighting }

// References returns the descriptor matrix of every reference image in its
// original element type. The matrices are shared and must not be modified.
func (m *Matcher) References() []*descriptor.Matrix {
	return append([]*descriptor.Matrix(nil), m.refs...)
}

// Votes returns the accumulated vote weight per reference image for query.
// The result has exactly Len() slots.
func (m *Matcher) Votes(query *descriptor.Matrix) ([]float64, error) {
	if m.closed.Load() {
		return nil, ErrClosed
	}
	votes := make([]float64, len(m.names))
	if query.Empty() || m.idx == nil {
		return votes, nil
	}
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("matcher: query: %w", err)
	}
	if query.Cols != m.dim {
		return nil, fmt.Errorf("matcher: %w: query has %d columns, index %d", index.ErrDimension, query.Cols, m.dim)
	}
	q := query.Canonical()
	for r := 0; r < q.Rows; r++ {
		n, err := m.idx.Nearest(q.Row(r))
		if err != nil {
			return nil, fmt.Errorf("matcher: query vector %d: %w", r, err)
		}
		votes[m.owners[n.Position]] += m.weighting.Weight(float64(n.Distance))
	}
	return votes, nil
}

// BestMatch returns the position of the reference image with the largest
// accumulated weight for query, or NoMatch when that weight is zero or below
// minVotes. Equal weights resolve to the lowest position.
func (m *Matcher) BestMatch(query *descriptor.Matrix, minVotes float64) (int, error) {
	votes, err := m.Votes(query)
	if err != nil {
		return NoMatch, err
	}
	return Decide(votes, minVotes), nil
}

// Decide selects the winning slot of a vote accumulator.
func Decide(votes []float64, minVotes float64) int {
	best := NoMatch
	bestWeight := 0.0
	for i, w := range votes {
		if w > bestWeight {
			best, bestWeight = i, w
		}
	}
	if best == NoMatch || bestWeight < minVotes {
		return NoMatch
	}
	return best
}

// Close releases the index and reference matrices. Callers must ensure no
// query is still running against the matcher.
func (m *Matcher) Close() error {
	if !m.closed.CompareAndSwap(false, true) {
		return nil
	}
	m.idx = nil
	m.refs = nil
	m.owners = nil
	return nil
}
