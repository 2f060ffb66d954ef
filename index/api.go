package index

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmpty is returned when querying an index without vectors.
	ErrEmpty = errors.New("index: empty index")
	// ErrDimension is returned when vectors do not share the index dimension.
	ErrDimension = errors.New("index: dimension mismatch")
)

// Neighbor identifies an indexed vector by its build position and its
// distance to the query.
type Neighbor struct {
	Position int
	Distance float32
}

// Index answers 1-nearest-neighbor queries over a fixed set of vectors.
// Implementations must allow concurrent Nearest calls once Build returned.
type Index interface {
	// Build replaces the indexed vectors. All vectors must share one dimension;
	// positions in Nearest results refer to the order given here.
	Build(vectors [][]float32) error

	// Nearest returns the closest indexed vector and its L2 distance.
	Nearest(query []float32) (Neighbor, error)

	// Len returns the number of indexed vectors.
	Len() int
}

// Kind selects an Index implementation.
type Kind string

const (
	KindAuto  Kind = "auto"
	KindBrute Kind = "brute"
	KindCover Kind = "cover"
)

const (
	autoCoverMinVectors         = 4000
	autoCoverMinDim             = 64
	autoCoverMinDensity float64 = 16
)

// ParseKind parses an index kind name; empty means KindAuto.
func ParseKind(name string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(name))); k {
	case "":
		return KindAuto, nil
	case KindAuto, KindBrute, KindCover:
		return k, nil
	}
	return "", fmt.Errorf("index: unknown kind %q", name)
}

// Resolve maps KindAuto to a concrete kind for the given collection size:
// large, dense collections use the cover tree, everything else brute force.
func (k Kind) Resolve(count, dim int) Kind {
	if k == KindBrute || k == KindCover {
		return k
	}
	if count >= autoCoverMinVectors && dim >= autoCoverMinDim {
		if float64(count)/float64(dim) >= autoCoverMinDensity {
			return KindCover
		}
	}
	return KindBrute
}

// Dimension returns the shared dimension of vectors, or ErrDimension when
// they disagree. An empty set has dimension 0.
func Dimension(vectors [][]float32) (int, error) {
	if len(vectors) == 0 {
		return 0, nil
	}
	dim := len(vectors[0])
	for i := range vectors {
		if len(vectors[i]) != dim {
			return 0, fmt.Errorf("%w: vector %d has %d elements, want %d", ErrDimension, i, len(vectors[i]), dim)
		}
	}
	return dim, nil
}
