package tree

// Point is a descriptor vector stored in the tree. slot refers to the value
// recorded for the point on insert; -1 means none.
type Point struct {
	slot   int32
	Vector []float32
}

// HasValue reports whether the point was inserted with a value.
func (p *Point) HasValue() bool {
	return p != nil && p.slot >= 0
}

// NewPoint constructs a detached point for the given vector, suitable as a query.
func NewPoint(vector ...float32) *Point {
	return &Point{slot: -1, Vector: vector}
}
