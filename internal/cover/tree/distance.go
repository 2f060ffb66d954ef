package tree

import "github.com/viant/vec/search"

// DistanceFunction names a metric supported by the tree. Pruning relies on the
// triangle inequality, so only true metrics are offered.
type DistanceFunction string

const DistanceFunctionEuclidean DistanceFunction = "euclidean"

// DistanceFunc computes the distance between two points.
type DistanceFunc func(p1, p2 *Point) float32

// Function resolves the callable distance implementation, or nil when unknown.
func (d DistanceFunction) Function() DistanceFunc {
	if d == DistanceFunctionEuclidean {
		return EuclideanDistance
	}
	return nil
}

// EuclideanDistance returns the L2 distance between two points.
func EuclideanDistance(p1, p2 *Point) float32 {
	return search.Float32s(p1.Vector).EuclideanDistance(p2.Vector)
}
