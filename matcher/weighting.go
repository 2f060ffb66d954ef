package matcher

// Weighting converts a nearest-neighbor distance into a vote weight:
//
//	weight = max(0, Threshold - distance/Scale)
type Weighting struct {
	Threshold float64 `yaml:"threshold"`
	Scale     float64 `yaml:"scale"`
}

// DefaultWeighting is used when a Weighting field is not positive.
var DefaultWeighting = Weighting{Threshold: 1, Scale: 1000}

func (w Weighting) normalize() Weighting {
	if w.Threshold <= 0 {
		w.Threshold = DefaultWeighting.Threshold
	}
	if w.Scale <= 0 {
		w.Scale = DefaultWeighting.Scale
	}
	return w
}

// Weight returns the vote weight of a match at distance dist.
func (w Weighting) Weight(dist float64) float64 {
	w = w.normalize()
	weight := w.Threshold - dist/w.Scale
	if weight < 0 {
		return 0
	}
	return weight
}
