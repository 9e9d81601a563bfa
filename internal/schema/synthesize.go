package schema

import (
	"gopkg.in/yaml.v3"

	"config-splitter/internal/document"
)

// Synthesize builds the default value of a schema node. It reports false when
// the node contributes nothing and should be omitted:
//   - a declared default is used verbatim;
//   - an object yields its synthesized properties, omitted when none remain;
//   - an array without default yields an empty sequence;
//   - a nullable scalar without default yields null.
//
// The returned tree is a fresh copy and may be used freely.
func Synthesize(n Node) (*yaml.Node, bool) {
	if n == nil {
		return nil, false
	}

	if def := n.attrs().Default; def != nil {
		return document.Clone(def), true
	}

	switch n := n.(type) {
	case *Object:
		var entries []document.Entry

		for _, p := range n.Properties {
			if v, ok := Synthesize(p.Schema); ok {
				entries = append(entries, document.Entry{Key: p.Name, Value: v})
			}
		}

		if len(entries) == 0 {
			return nil, false
		}

		return document.Mapping(entries...), true

	case *Array:
		return document.Sequence(), true

	case *Scalar:
		if n.Nullable {
			return document.Null(), true
		}
	}

	return nil, false
}
