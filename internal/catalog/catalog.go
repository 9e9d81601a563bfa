package catalog

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"config-splitter/internal/match"
)

// Section describes one known top-level section.
type Section struct {
	Key         string
	Label       string
	Subsections []Subsection
}

// Subsection describes a known second-level key of a section.
type Subsection struct {
	Key   string
	Label string
}

// Catalog is an ordered, read-only set of sections.
type Catalog struct {
	sections []Section
	index    map[string]int
}

// New builds a catalog from sections in canonical order.
// Later duplicates of a key are ignored.
func New(sections ...Section) *Catalog {
	c := &Catalog{index: make(map[string]int, len(sections))}

	for _, s := range sections {
		if _, dup := c.index[s.Key]; dup {
			continue
		}

		s.Subsections = slices.Clone(s.Subsections)
		c.index[s.Key] = len(c.sections)
		c.sections = append(c.sections, s)
	}

	return c
}

// Sections returns a copy of the catalog sections in canonical order.
func (c *Catalog) Sections() []Section {
	out := make([]Section, len(c.sections))
	for i, s := range c.sections {
		s.Subsections = slices.Clone(s.Subsections)
		out[i] = s
	}

	return out
}

// Keys returns the section keys in canonical order.
func (c *Catalog) Keys() []string {
	keys := make([]string, len(c.sections))
	for i, s := range c.sections {
		keys[i] = s.Key
	}

	return keys
}

// Lookup returns the section for key.
func (c *Catalog) Lookup(key string) (Section, bool) {
	i, ok := c.index[key]
	if !ok {
		return Section{}, false
	}

	return c.sections[i], true
}

// Contains reports whether key is a known section.
func (c *Catalog) Contains(key string) bool {
	_, ok := c.index[key]
	return ok
}

// SubsectionKeys returns the known subsection keys of a section, in order.
func (c *Catalog) SubsectionKeys(key string) []string {
	s, ok := c.Lookup(key)
	if !ok {
		return nil
	}

	keys := make([]string, len(s.Subsections))
	for i, sub := range s.Subsections {
		keys[i] = sub.Key
	}

	return keys
}

// IsSubsection reports whether child is a known subsection of parent.
func (c *Catalog) IsSubsection(parent, child string) bool {
	return slices.Contains(c.SubsectionKeys(parent), child)
}

// Label returns the display label of a section, falling back to a humanized key.
func (c *Catalog) Label(key string) string {
	if s, ok := c.Lookup(key); ok {
		return s.Label
	}

	return Humanize(key)
}

// SubsectionLabel returns the display label of parent.child, falling back to
// a humanized child key.
func (c *Catalog) SubsectionLabel(parent, child string) string {
	if s, ok := c.Lookup(parent); ok {
		for _, sub := range s.Subsections {
			if sub.Key == child {
				return sub.Label
			}
		}
	}

	return Humanize(child)
}

// Order sorts keys into canonical order. Known sections come first in catalog
// order; unknown keys follow in the order they were given.
func (c *Catalog) Order(keys []string) []string {
	known := make([]string, 0, len(keys))
	unknown := make([]string, 0)

	for _, k := range keys {
		if c.Contains(k) {
			known = append(known, k)
		} else {
			unknown = append(unknown, k)
		}
	}

	slices.SortStableFunc(known, func(a, b string) int {
		return c.index[a] - c.index[b]
	})

	return append(known, unknown...)
}

// Suggest returns known section keys resembling an unknown key, best first.
func (c *Catalog) Suggest(key string) []string {
	return match.Closest(key, c.Keys(), match.DefaultMinSimilarity)
}

// Humanize turns a configuration key into a title-cased label:
// "consistencyChallenges" -> "Consistency Challenges".
func Humanize(key string) string {
	words := match.Tokenize(key)
	if len(words) == 0 {
		return key
	}

	// Casers are stateful; one per call.
	return cases.Title(language.English, cases.NoLower).String(strings.Join(words, " "))
}
