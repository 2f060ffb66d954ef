package tree

import (
	"math"
	"math/rand"
	"sync"
	"testing"
)

func bruteNearest(points [][]float32, q []float32) int {
	best, bestDist := -1, math.Inf(1)
	for i, p := range points {
		var sum float64
		for j := range p {
			d := float64(p[j]) - float64(q[j])
			sum += d * d
		}
		if sum < bestDist {
			best, bestDist = i, sum
		}
	}
	return best
}

func randomPoints(r *rand.Rand, n, dim int) [][]float32 {
	out := make([][]float32, n)
	for i := range out {
		v := make([]float32, dim)
		for j := range v {
			v[j] = float32(r.Intn(256))
		}
		out[i] = v
	}
	return out
}

func TestTree_NearestMatchesBruteForce(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	points := randomPoints(r, 400, 16)
	tr := NewTree[int](1.3, DistanceFunctionEuclidean)
	for i, p := range points {
		tr.Insert(i, NewPoint(p...))
	}
	if tr.Len() != len(points) {
		t.Fatalf("Len = %d, want %d", tr.Len(), len(points))
	}
	for q := 0; q < 50; q++ {
		query := randomPoints(r, 1, 16)[0]
		n := tr.Nearest(NewPoint(query...))
		if n == nil {
			t.Fatalf("Nearest returned nil")
		}
		got, ok := tr.Value(n.Point)
		if !ok {
			t.Fatalf("nearest point has no value")
		}
		// ties may resolve to another point at the same distance
		if want := bruteNearest(points, query); sqDist(points[got], query) != sqDist(points[want], query) {
			t.Fatalf("query %d: nearest = %d, want %d", q, got, want)
		}
	}
}

func sqDist(a, b []float32) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return sum
}

func TestTree_KNearestOrdered(t *testing.T) {
	tr := NewTree[string](0, "")
	if tr.Distance() != DistanceFunctionEuclidean {
		t.Fatalf("default distance = %v", tr.Distance())
	}
	tr.Insert("a", NewPoint(0, 0))
	tr.Insert("b", NewPoint(10, 0))
	tr.Insert("c", NewPoint(3, 0))
	tr.Insert("d", NewPoint(3, 0))

	found := tr.KNearestNeighbors(NewPoint(9, 0), 3)
	if len(found) != 3 {
		t.Fatalf("found %d neighbors, want 3", len(found))
	}
	if v, _ := tr.Value(found[0].Point); v != "b" {
		t.Fatalf("closest = %v, want b", v)
	}
	for i := 1; i < len(found); i++ {
		if found[i].Distance < found[i-1].Distance {
			t.Fatalf("neighbors not ordered: %v then %v", found[i-1].Distance, found[i].Distance)
		}
	}
}

func TestTree_EmptyAndDetachedPoint(t *testing.T) {
	tr := NewTree[int](2, DistanceFunctionEuclidean)
	if n := tr.Nearest(NewPoint(1, 2)); n != nil {
		t.Fatalf("expected nil from empty tree, got %+v", n)
	}
	if _, ok := tr.Value(NewPoint(1, 2)); ok {
		t.Fatalf("detached point must not have a value")
	}
}

func TestTree_ConcurrentSearch(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	points := randomPoints(r, 200, 8)
	tr := NewTree[int](1.3, DistanceFunctionEuclidean)
	for i, p := range points {
		tr.Insert(i, NewPoint(p...))
	}
	tr.Prepare()
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := g; i < len(points); i += 8 {
				n := tr.Nearest(NewPoint(points[i]...))
				if n == nil || n.Distance != 0 {
					t.Errorf("point %d: expected exact hit, got %+v", i, n)
					return
				}
			}
		}(g)
	}
	wg.Wait()
}
