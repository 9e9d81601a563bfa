package document

import (
	"errors"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

// ErrNotMapping is returned when a document root is not a mapping.
var ErrNotMapping = errors.New("document root must be a mapping of sections")

// Entry is one key/value pair of a mapping.
type Entry struct {
	Key   string
	Value *yaml.Node
}

// Document is an ordered, immutable mapping of top-level sections.
type Document struct {
	entries []Entry
	index   map[string]int
}

// New creates a document holding the given entries. Later duplicates of a key
// are ignored.
func New(entries ...Entry) *Document {
	d := &Document{index: make(map[string]int, len(entries))}

	for _, e := range entries {
		if _, dup := d.index[e.Key]; dup {
			continue
		}

		d.index[e.Key] = len(d.entries)
		d.entries = append(d.entries, e)
	}

	return d
}

// Parse parses YAML content into a Document. Empty content (or a document
// holding only comments or null) yields an empty Document.
func Parse(content string) (*Document, error) {
	var root yaml.Node

	if err := yaml.Unmarshal([]byte(content), &root); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	node := &root
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return New(), nil
		}

		node = node.Content[0]
	}

	switch {
	case node.Kind == 0, IsNull(node):
		return New(), nil
	case node.Kind != yaml.MappingNode:
		return nil, fmt.Errorf("%w, got %s", ErrNotMapping, kindName(node.Kind))
	}

	entries := make([]Entry, 0, len(node.Content)/2)
	seen := make(map[string]int, len(node.Content)/2)

	for i := 0; i+1 < len(node.Content); i += 2 {
		k := node.Content[i]
		if line, dup := seen[k.Value]; dup {
			return nil, fmt.Errorf("duplicate section %q on lines %d and %d", k.Value, line, k.Line)
		}

		seen[k.Value] = k.Line
		entries = append(entries, Entry{Key: k.Value, Value: clean(node.Content[i+1])})
	}

	return New(entries...), nil
}

// Len returns the number of top-level sections.
func (d *Document) Len() int {
	return len(d.entries)
}

// Keys returns the top-level keys in document order.
func (d *Document) Keys() []string {
	keys := make([]string, len(d.entries))
	for i, e := range d.entries {
		keys[i] = e.Key
	}

	return keys
}

// Entries returns the top-level entries in document order.
func (d *Document) Entries() []Entry {
	return slices.Clone(d.entries)
}

// Has reports whether key is a top-level section.
func (d *Document) Has(key string) bool {
	_, ok := d.index[key]
	return ok
}

// Get returns the value of a top-level section.
func (d *Document) Get(key string) (*yaml.Node, bool) {
	i, ok := d.index[key]
	if !ok {
		return nil, false
	}

	return d.entries[i].Value, true
}

// With returns a document where key holds value. An existing key keeps its
// position; a new key is appended.
func (d *Document) With(key string, value *yaml.Node) *Document {
	entries := slices.Clone(d.entries)

	if i, ok := d.index[key]; ok {
		entries[i] = Entry{Key: key, Value: value}
	} else {
		entries = append(entries, Entry{Key: key, Value: value})
	}

	return New(entries...)
}

// Without returns a document without key.
func (d *Document) Without(key string) *Document {
	i, ok := d.index[key]
	if !ok {
		return d
	}

	entries := slices.Delete(slices.Clone(d.entries), i, i+1)

	return New(entries...)
}

// Subset returns a document with only the given keys, in the given order.
// Keys that are not present are skipped.
func (d *Document) Subset(keys ...string) *Document {
	entries := make([]Entry, 0, len(keys))

	for _, k := range keys {
		if v, ok := d.Get(k); ok {
			entries = append(entries, Entry{Key: k, Value: v})
		}
	}

	return New(entries...)
}

// Encode renders the document as plain YAML without headers.
func (d *Document) Encode() (string, error) {
	return Encode(Mapping(d.entries...))
}

// Decode converts the document into plain Go values, mainly for comparisons.
func (d *Document) Decode() (map[string]any, error) {
	out := make(map[string]any, len(d.entries))

	for _, e := range d.entries {
		var v any
		if err := e.Value.Decode(&v); err != nil {
			return nil, fmt.Errorf("failed to decode section %q: %w", e.Key, err)
		}

		out[e.Key] = v
	}

	return out, nil
}
