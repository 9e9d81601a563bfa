package analyze

import (
	"slices"
	"strings"
)

// Index maps each top-level key to the keys found directly beneath it.
// Both levels keep first-seen order.
type Index struct {
	keys     []string
	children map[string][]string
}

// NewIndex creates an empty Index.
func NewIndex() *Index {
	return &Index{keys: []string{}, children: make(map[string][]string)}
}

// Keys returns the top-level keys in first-seen order.
func (ix *Index) Keys() []string {
	return slices.Clone(ix.keys)
}

// Has reports whether key was seen at the top level.
func (ix *Index) Has(key string) bool {
	_, ok := ix.children[key]
	return ok
}

// Children returns the second-level keys of a top-level key.
func (ix *Index) Children(key string) []string {
	return slices.Clone(ix.children[key])
}

// HasChild reports whether child was seen directly under key.
func (ix *Index) HasChild(key, child string) bool {
	return slices.Contains(ix.children[key], child)
}

// Len returns the number of top-level keys.
func (ix *Index) Len() int {
	return len(ix.keys)
}

// String renders one "key: child, child" line per top-level key.
func (ix *Index) String() string {
	var b strings.Builder

	for _, k := range ix.keys {
		b.WriteString(k + ":")

		if kids := ix.children[k]; len(kids) > 0 {
			b.WriteString(" " + strings.Join(kids, ", "))
		}

		b.WriteString("\n")
	}

	return b.String()
}

func (ix *Index) addKey(key string) {
	if _, ok := ix.children[key]; ok {
		return
	}

	ix.keys = append(ix.keys, key)
	ix.children[key] = []string{}
}

func (ix *Index) addChild(key, child string) {
	if slices.Contains(ix.children[key], child) {
		return
	}

	ix.children[key] = append(ix.children[key], child)
}
