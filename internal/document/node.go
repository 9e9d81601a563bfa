package document

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Scalar creates a plain string key/scalar node.
func Scalar(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}

// Null creates an explicit null node.
func Null() *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
}

// Mapping creates a mapping node from entries.
func Mapping(entries ...Entry) *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, e := range entries {
		n.Content = append(n.Content, Scalar(e.Key), e.Value)
	}

	return n
}

// Sequence creates a sequence node from items.
func Sequence(items ...*yaml.Node) *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Content: items}
}

// IsMapping reports whether n is a mapping node.
func IsMapping(n *yaml.Node) bool {
	return n != nil && n.Kind == yaml.MappingNode
}

// IsNull reports whether n is a null scalar.
func IsNull(n *yaml.Node) bool {
	return n != nil && n.Kind == yaml.ScalarNode && n.Tag == "!!null"
}

// Pairs returns the entries of a mapping node, or nil for any other node.
func Pairs(n *yaml.Node) []Entry {
	if !IsMapping(n) {
		return nil
	}

	entries := make([]Entry, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		entries = append(entries, Entry{Key: n.Content[i].Value, Value: n.Content[i+1]})
	}

	return entries
}

// ChildKeys returns the keys of a mapping node in order.
func ChildKeys(n *yaml.Node) []string {
	pairs := Pairs(n)

	keys := make([]string, len(pairs))
	for i, p := range pairs {
		keys[i] = p.Key
	}

	return keys
}

// Child returns the value under key in a mapping node.
func Child(n *yaml.Node, key string) (*yaml.Node, bool) {
	for _, p := range Pairs(n) {
		if p.Key == key {
			return p.Value, true
		}
	}

	return nil, false
}

// WithChild returns a new mapping equal to n with key set to value. A null n
// is treated as an empty mapping. An existing key keeps its position.
func WithChild(n *yaml.Node, key string, value *yaml.Node) *yaml.Node {
	pairs := Pairs(n)

	if i := slices.IndexFunc(pairs, func(e Entry) bool { return e.Key == key }); i >= 0 {
		pairs[i].Value = value
	} else {
		pairs = append(pairs, Entry{Key: key, Value: value})
	}

	return Mapping(pairs...)
}

// Partition splits the entries of a mapping node into those for which take
// returns false (kept, in order) and those for which it returns true (taken,
// in order). Non-mapping nodes have no entries.
func Partition(n *yaml.Node, take func(key string) bool) (kept, taken []Entry) {
	for _, p := range Pairs(n) {
		if take(p.Key) {
			taken = append(taken, p)
		} else {
			kept = append(kept, p)
		}
	}

	return kept, taken
}

// Encode renders a node as YAML with a two-space indent.
func Encode(n *yaml.Node) (string, error) {
	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	if err := enc.Encode(n); err != nil {
		return "", fmt.Errorf("failed to encode YAML: %w", err)
	}

	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("failed to encode YAML: %w", err)
	}

	return buf.String(), nil
}

// EncodeEntry renders a single "key: value" block.
func EncodeEntry(key string, value *yaml.Node) (string, error) {
	return Encode(Mapping(Entry{Key: key, Value: value}))
}

// Indent prefixes every non-empty line of text.
func Indent(text, prefix string) string {
	lines := strings.SplitAfter(text, "\n")

	var b strings.Builder
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			b.WriteString(prefix)
		}

		b.WriteString(line)
	}

	return b.String()
}

// Clone returns a deep copy of n in the same normalized form Parse produces.
func Clone(n *yaml.Node) *yaml.Node {
	return clean(n)
}

// clean deep-copies a parsed node, dropping comments, anchors and flow
// styles and resolving aliases, so re-encoding never duplicates generated
// headers and every output uses block layout.
func clean(n *yaml.Node) *yaml.Node {
	if n == nil {
		return nil
	}

	if n.Kind == yaml.AliasNode && n.Alias != nil {
		return clean(n.Alias)
	}

	out := &yaml.Node{
		Kind:  n.Kind,
		Tag:   n.Tag,
		Value: n.Value,
		Style: n.Style &^ yaml.FlowStyle,
	}

	if IsNull(out) {
		out.Value = "null"
	}

	if len(n.Content) > 0 {
		out.Content = make([]*yaml.Node, len(n.Content))
		for i, c := range n.Content {
			out.Content[i] = clean(c)
		}
	}

	return out
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "empty"
	}
}
