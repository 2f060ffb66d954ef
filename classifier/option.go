package classifier

import (
	"github.com/viant/featurematch/catalog"
	"github.com/viant/featurematch/config"
	"github.com/viant/featurematch/extractor"
	"github.com/viant/featurematch/internal/logger"
)

// Option configures a Classifier.
type Option func(*Classifier)

// WithConfig sets the configuration; nil keeps the defaults.
func WithConfig(cfg *config.Config) Option {
	return func(c *Classifier) {
		if cfg != nil {
			c.cfg = cfg
		}
	}
}

// WithSource sets the descriptor source used for image based operations.
func WithSource(source extractor.Source) Option {
	return func(c *Classifier) { c.source = source }
}

// WithCatalog sets the store used by Persist and TrainFromCatalog. The
// classifier does not close a store passed this way.
func WithCatalog(store *catalog.Store) Option {
	return func(c *Classifier) { c.store = store }
}

// WithLogger sets the logger reporting skipped inputs.
func WithLogger(l *logger.Logger) Option {
	return func(c *Classifier) { c.logger = l }
}
