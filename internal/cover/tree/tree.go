package tree

// The insertion scheme is adapted from github.com/viant/gds/tree/cover.

import (
	"container/heap"
	"math"
	"sort"
	"sync"
)

// Tree is a cover tree answering exact kNN queries. Pruning uses per-node
// subtree radii, which are recomputed lazily after inserts; once computed,
// concurrent searches only take the read lock.
type Tree[T any] struct {
	mu           sync.RWMutex
	root         *Node
	base         float32
	distanceName DistanceFunction
	distance     DistanceFunc
	values       values[T]
	size         int
	version      uint64
}

// NewTree constructs a cover tree with the given level base and metric.
// Invalid arguments fall back to base 1.3 and Euclidean distance.
func NewTree[T any](base float32, distanceFn DistanceFunction) *Tree[T] {
	if base <= 1 {
		base = 1.3
	}
	fn := distanceFn.Function()
	if fn == nil {
		distanceFn = DistanceFunctionEuclidean
		fn = distanceFn.Function()
	}
	return &Tree[T]{
		base:         base,
		distanceName: distanceFn,
		distance:     fn,
	}
}

// Distance returns the metric the tree was built with.
func (t *Tree[T]) Distance() DistanceFunction { return t.distanceName }

// Len returns the number of inserted points.
func (t *Tree[T]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.size
}

// Insert adds value with its point to the tree.
func (t *Tree[T]) Insert(value T, point *Point) {
	t.mu.Lock()
	defer t.mu.Unlock()
	point.slot = t.values.put(value)
	t.size++
	t.version++
	if t.root == nil {
		node := newNode(point, 0)
		t.root = &node
		return
	}
	t.insert(t.root, point, 0)
}

// Value returns the value stored with point.
func (t *Tree[T]) Value(point *Point) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if !point.HasValue() {
		var zero T
		return zero, false
	}
	return t.values.value(point.slot)
}

func (t *Tree[T]) levelRadius(level int32) float32 {
	return float32(math.Pow(float64(t.base), float64(level)))
}

func (t *Tree[T]) insert(node *Node, point *Point, level int32) {
	for {
		cover := t.levelRadius(level)
		if t.distance(point, node.point) < cover {
			descended := false
			for i := range node.children {
				child := &node.children[i]
				if t.distance(point, child.point) < cover {
					node = child
					level--
					descended = true
					break
				}
			}
			if !descended {
				node.children = append(node.children, newNode(point, level-1))
				return
			}
			continue
		}
		level++
		if level > node.level {
			newRoot := newNode(point, level)
			newRoot.children = append(newRoot.children, *t.root)
			t.root = &newRoot
			return
		}
	}
}

// rlock acquires the read lock with subtree radii valid for the current version.
func (t *Tree[T]) rlock() {
	for {
		t.mu.RLock()
		if t.root == nil || t.root.stamp == t.version {
			return
		}
		t.mu.RUnlock()
		t.mu.Lock()
		t.subtreeRadius(t.root)
		t.mu.Unlock()
	}
}

// Prepare computes subtree radii so that subsequent searches do not need the
// write lock. Calling it is optional.
func (t *Tree[T]) Prepare() {
	t.rlock()
	t.mu.RUnlock()
}

// KNearestNeighbors runs a depth-first kNN search and returns up to k
// neighbors ordered by increasing distance.
func (t *Tree[T]) KNearestNeighbors(point *Point, k int) []*Neighbor {
	if k <= 0 {
		return nil
	}
	t.rlock()
	defer t.mu.RUnlock()
	if t.root == nil {
		return nil
	}
	h := &neighbors{}
	t.search(t.root, t.distance(point, t.root.point), point, k, h)
	result := make([]*Neighbor, h.Len())
	for i := len(result) - 1; i >= 0; i-- {
		n := heap.Pop(h).(Neighbor)
		result[i] = &n
	}
	return result
}

// Nearest returns the single closest point, or nil for an empty tree.
func (t *Tree[T]) Nearest(point *Point) *Neighbor {
	found := t.KNearestNeighbors(point, 1)
	if len(found) == 0 {
		return nil
	}
	return found[0]
}

func (t *Tree[T]) search(node *Node, dist float32, point *Point, k int, h *neighbors) {
	if h.Len() < k {
		heap.Push(h, Neighbor{Point: node.point, Distance: dist})
	} else if dist < (*h)[0].Distance {
		heap.Pop(h)
		heap.Push(h, Neighbor{Point: node.point, Distance: dist})
	}
	if len(node.children) == 0 {
		return
	}
	type candidate struct {
		child *Node
		dist  float32
	}
	candidates := make([]candidate, len(node.children))
	for i := range node.children {
		child := &node.children[i]
		candidates[i] = candidate{child: child, dist: t.distance(point, child.point)}
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].dist < candidates[j].dist })
	for _, c := range candidates {
		if h.Len() == k && c.dist-c.child.radius >= (*h)[0].Distance {
			continue
		}
		t.search(c.child, c.dist, point, k, h)
	}
}

// subtreeRadius refreshes the cached radius of n and its descendants.
func (t *Tree[T]) subtreeRadius(n *Node) float32 {
	if n.stamp == t.version {
		return n.radius
	}
	var radius float32
	for i := range n.children {
		child := &n.children[i]
		if d := t.distance(n.point, child.point) + t.subtreeRadius(child); d > radius {
			radius = d
		}
	}
	n.radius = radius
	n.stamp = t.version
	return radius
}
