package classifier

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/viant/featurematch/catalog"
	"github.com/viant/featurematch/config"
	"github.com/viant/featurematch/descriptor"
	"github.com/viant/featurematch/extractor"
	"github.com/viant/featurematch/index"
	"github.com/viant/featurematch/internal/logger"
	"github.com/viant/featurematch/matcher"
)

const (
	// NoMatch mirrors matcher.NoMatch.
	NoMatch = matcher.NoMatch
	// UnknownMatcher mirrors matcher.UnknownMatcher.
	UnknownMatcher = matcher.UnknownMatcher

	// NoMatchLabel is the label reported when no reference image matched.
	NoMatchLabel = "No match found."
	// UnknownMatcherLabel prefixes the label reported for an unregistered name.
	UnknownMatcherLabel = "Unknown matcher: "
)

var (
	// ErrNoSource is returned by image operations when no descriptor source is configured.
	ErrNoSource = errors.New("classifier: no descriptor source configured")
	// ErrNoCatalog is returned by catalog operations when no catalog is configured.
	ErrNoCatalog = errors.New("classifier: no catalog configured")
)

// Info describes a registered matcher.
type Info struct {
	Name       string
	ID         string
	References int
	Vectors    int
	Dim        int
	Extractor  extractor.Type
	Kind       index.Kind
}

type entry struct {
	// build serializes training of one name.
	build sync.Mutex
	mu    sync.RWMutex
	m     *matcher.Matcher
}

// Classifier maps matcher names to trained matchers.
type Classifier struct {
	cfg       *config.Config
	source    extractor.Source
	store     *catalog.Store
	ownStore  bool
	logger    *logger.Logger
	trainCfg  extractor.Config
	queryCfg  extractor.Config
	buildOpts []matcher.Option

	mu      sync.RWMutex
	entries map[string]*entry
}

// New creates a classifier. When the configuration names a catalog path and
// no store was supplied, the catalog is opened and closed with the classifier.
func New(opts ...Option) (*Classifier, error) {
	c := &Classifier{cfg: config.Default(), entries: map[string]*entry{}}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = logger.OrDefault(c.logger)
	if err := c.cfg.Validate(); err != nil {
		return nil, err
	}
	var err error
	if c.queryCfg, err = c.cfg.ExtractorConfig(); err != nil {
		return nil, err
	}
	// reference images are not equalized, only queries are
	c.trainCfg = c.queryCfg
	c.trainCfg.Equalize = false
	if c.buildOpts, err = c.cfg.MatcherOptions(); err != nil {
		return nil, err
	}
	if c.store == nil && c.cfg.Catalog.Path != "" {
		if c.store, err = catalog.Open(context.Background(), c.cfg.Catalog.Path, catalog.WithLogger(c.logger)); err != nil {
			return nil, err
		}
		c.ownStore = true
	}
	return c, nil
}

// Close releases every matcher and the catalog opened by New.
func (c *Classifier) Close() error {
	c.mu.Lock()
	entries := c.entries
	c.entries = map[string]*entry{}
	c.mu.Unlock()
	for _, e := range entries {
		e.mu.Lock()
		if e.m != nil {
			_ = e.m.Close()
			e.m = nil
		}
		e.mu.Unlock()
	}
	if c.ownStore {
		return c.store.Close()
	}
	return nil
}

// Extractor returns the configured extractor type.
func (c *Classifier) Extractor() extractor.Type { return c.queryCfg.Type }

// MinVotes returns the configured default minimum accumulated weight.
func (c *Classifier) MinVotes() float64 { return c.cfg.MinVotes }

func (c *Classifier) lookup(name string) *entry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.entries[name]
}

func (c *Classifier) entry(name string) *entry {
	if e := c.lookup(name); e != nil {
		return e
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[name]
	if !ok {
		e = &entry{}
		c.entries[name] = e
	}
	return e
}

// train builds a matcher and registers it under name, replacing and then
// releasing any previous matcher. Nothing is registered when the build fails.
func (c *Classifier) train(name string, refNames []string, mats []*descriptor.Matrix, opts ...matcher.Option) error {
	e := c.entry(name)
	e.build.Lock()
	defer e.build.Unlock()
	m, err := matcher.Build(refNames, mats, append(append([]matcher.Option(nil), c.buildOpts...), opts...)...)
	if err != nil {
		return fmt.Errorf("classifier: train %s: %w", name, err)
	}
	e.mu.Lock()
	old := e.m
	e.m = m
	e.mu.Unlock()
	if old != nil {
		_ = old.Close()
	}
	c.logger.Info.Printf("trained %s: %d references, %d vectors, %v index", name, m.Len(), m.VectorCount(), m.Kind())
	return nil
}

// Train registers a matcher over the given reference descriptors under name.
func (c *Classifier) Train(name string, refNames []string, mats []*descriptor.Matrix) error {
	return c.train(name, refNames, mats)
}

// Remove releases the matcher registered under name and reports whether one existed.
func (c *Classifier) Remove(name string) bool {
	e := c.lookup(name)
	if e == nil {
		return false
	}
	e.build.Lock()
	defer e.build.Unlock()
	e.mu.Lock()
	m := e.m
	e.m = nil
	e.mu.Unlock()
	if m == nil {
		return false
	}
	_ = m.Close()
	return true
}

// Names returns the registered matcher names in sorted order.
func (c *Classifier) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var names []string
	for name, e := range c.entries {
		e.mu.RLock()
		if e.m != nil {
			names = append(names, name)
		}
		e.mu.RUnlock()
	}
	sort.Strings(names)
	return names
}

// Info returns metadata of the matcher registered under name.
func (c *Classifier) Info(name string) (Info, bool) {
	var info Info
	ok := c.with(name, func(m *matcher.Matcher) {
		info = Info{
			Name:       name,
			ID:         m.ID(),
			References: m.Len(),
			Vectors:    m.VectorCount(),
			Dim:        m.Dim(),
			Extractor:  m.Extractor(),
			Kind:       m.Kind(),
		}
	})
	return info, ok
}

// with runs fn with the matcher registered under name while holding its read
// lock, and reports whether a matcher was registered.
func (c *Classifier) with(name string, fn func(m *matcher.Matcher)) bool {
	e := c.lookup(name)
	if e == nil {
		return false
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.m == nil {
		return false
	}
	fn(e.m)
	return true
}

// Persist stores the matcher registered under name in the catalog.
func (c *Classifier) Persist(ctx context.Context, name string) error {
	if c.store == nil {
		return ErrNoCatalog
	}
	var stored *catalog.Entry
	if !c.with(name, func(m *matcher.Matcher) {
		stored = &catalog.Entry{Name: name, Extractor: m.Extractor(), BuildID: m.ID()}
		for i, ref := range m.References() {
			refName, _ := m.NameOf(i)
			stored.References = append(stored.References, catalog.Reference{Name: refName, Descriptors: ref})
		}
	}) {
		return fmt.Errorf("classifier: persist: %s%s", UnknownMatcherLabel, name)
	}
	return c.store.Save(ctx, stored)
}

// TrainFromCatalog registers the matcher stored in the catalog under name.
func (c *Classifier) TrainFromCatalog(ctx context.Context, name string) error {
	if c.store == nil {
		return ErrNoCatalog
	}
	stored, err := c.store.Load(ctx, name)
	if err != nil {
		return err
	}
	refNames := make([]string, len(stored.References))
	mats := make([]*descriptor.Matrix, len(stored.References))
	for i, ref := range stored.References {
		refNames[i] = ref.Name
		mats[i] = ref.Descriptors
	}
	return c.train(name, refNames, mats, matcher.WithExtractor(stored.Extractor))
}
