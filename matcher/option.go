package matcher

import (
	"github.com/viant/featurematch/extractor"
	"github.com/viant/featurematch/index"
)

// Options holds matcher build settings.
type Options struct {
	Kind      index.Kind
	CoverBase float32
	Weighting Weighting
	Extractor extractor.Type
}

// Option mutates build Options.
type Option func(*Options)

// WithKind selects the index implementation.
func WithKind(kind index.Kind) Option {
	return func(o *Options) { o.Kind = kind }
}

// WithCoverBase sets the cover-tree level base.
func WithCoverBase(base float32) Option {
	return func(o *Options) { o.CoverBase = base }
}

// WithWeighting sets the distance to vote weight conversion.
func WithWeighting(w Weighting) Option {
	return func(o *Options) { o.Weighting = w }
}

// WithExtractor records the extractor type the descriptors were computed with.
func WithExtractor(t extractor.Type) Option {
	return func(o *Options) { o.Extractor = t }
}

func newOptions(opts []Option) *Options {
	o := &Options{Kind: index.KindAuto, Weighting: DefaultWeighting, Extractor: extractor.ORB}
	for _, opt := range opts {
		opt(o)
	}
	o.Weighting = o.Weighting.normalize()
	return o
}
