package classifier

import (
	"github.com/viant/featurematch/descriptor"
	"github.com/viant/featurematch/matcher"
)

// BestMatch returns the index of the reference image best matching query in
// the matcher registered under name, NoMatch, or UnknownMatcher.
func (c *Classifier) BestMatch(name string, query *descriptor.Matrix, minVotes float64) (int, error) {
	result := UnknownMatcher
	var err error
	c.with(name, func(m *matcher.Matcher) {
		result, err = m.BestMatch(query, minVotes)
	})
	return result, err
}

// Match is BestMatch with the configured minVotes.
func (c *Classifier) Match(name string, query *descriptor.Matrix) (int, error) {
	return c.BestMatch(name, query, c.cfg.MinVotes)
}

// MatchLabel returns the name of the reference image best matching query, or
// the no match or unknown matcher label.
func (c *Classifier) MatchLabel(name string, query *descriptor.Matrix, minVotes float64) (string, error) {
	label := UnknownMatcherLabel + name
	var err error
	c.with(name, func(m *matcher.Matcher) {
		var i int
		if i, err = m.BestMatch(query, minVotes); err != nil {
			return
		}
		label = labelOf(m, i)
	})
	return label, err
}

func labelOf(m *matcher.Matcher, i int) string {
	if name, ok := m.NameOf(i); ok {
		return name
	}
	return NoMatchLabel
}

// MatchImage extracts descriptors from the image at path and matches them
// against the matcher registered under name.
func (c *Classifier) MatchImage(name, path string, minVotes float64) (int, error) {
	if !c.Has(name) {
		return UnknownMatcher, nil
	}
	if c.source == nil {
		return NoMatch, ErrNoSource
	}
	query, err := c.source.ExtractFile(path, c.queryCfg)
	if err != nil {
		return NoMatch, err
	}
	return c.BestMatch(name, query, minVotes)
}

// MatchImageLabel is MatchImage reporting the matched reference name.
func (c *Classifier) MatchImageLabel(name, path string, minVotes float64) (string, error) {
	if !c.Has(name) {
		return UnknownMatcherLabel + name, nil
	}
	if c.source == nil {
		return NoMatchLabel, ErrNoSource
	}
	query, err := c.source.ExtractFile(path, c.queryCfg)
	if err != nil {
		return NoMatchLabel, err
	}
	return c.MatchLabel(name, query, minVotes)
}

// MatchBytesLabel decodes an encoded image (JPEG, PNG, ...) and reports the
// matched reference name.
func (c *Classifier) MatchBytesLabel(name string, data []byte, minVotes float64) (string, error) {
	if !c.Has(name) {
		return UnknownMatcherLabel + name, nil
	}
	if c.source == nil {
		return NoMatchLabel, ErrNoSource
	}
	query, err := c.source.Extract(data, c.queryCfg)
	if err != nil {
		return NoMatchLabel, err
	}
	return c.MatchLabel(name, query, minVotes)
}

// Has reports whether a matcher is registered under name.
func (c *Classifier) Has(name string) bool {
	return c.with(name, func(*matcher.Matcher) {})
}
