package matcher

import "testing"

func TestWeighting_Weight(t *testing.T) {
	w := DefaultWeighting
	cases := []struct {
		dist float64
		want float64
	}{
		{0, 1},
		{500, 0.5},
		{1000, 0},
		{5000, 0},
	}
	for _, c := range cases {
		if got := w.Weight(c.dist); got != c.want {
			t.Fatalf("Weight(%v) = %v, want %v", c.dist, got, c.want)
		}
	}
	prev := w.Weight(0)
	for d := 10.0; d < 1200; d += 10 {
		cur := w.Weight(d)
		if cur > prev {
			t.Fatalf("weight increased at distance %v", d)
		}
		prev = cur
	}
	if got := (Weighting{}).Weight(0); got != 1 {
		t.Fatalf("zero Weighting should fall back to defaults, got %v", got)
	}
}
