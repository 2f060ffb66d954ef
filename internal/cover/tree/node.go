package tree

// Node is a cover-tree node. radius bounds the distance from point to any
// point stored below the node; it is valid while stamp equals the tree version.
type Node struct {
	level    int32
	point    *Point
	children []Node
	radius   float32
	stamp    uint64
}

func newNode(point *Point, level int32) Node {
	return Node{level: level, point: point}
}
