package schema

import (
	_ "embed"
	"fmt"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"

	"config-splitter/internal/document"
)

//go:embed builtin.yaml
var builtinSchema []byte

var builtin = sync.OnceValue(func() *Registry {
	r, err := Parse(builtinSchema)
	if err != nil {
		panic(fmt.Sprintf("schema: invalid builtin schema: %v", err))
	}

	return r
})

// Builtin returns the schema registry of the builtin catalog sections.
func Builtin() *Registry {
	return builtin()
}

// rawNode is the on-disk form of a schema node.
type rawNode struct {
	Type        TypeSet   `yaml:"type"`
	Description string    `yaml:"description"`
	Default     yaml.Node `yaml:"default"`
	Properties  yaml.Node `yaml:"properties"`
	Items       *rawNode  `yaml:"items"`
}

// Registry maps section keys to their object schemas.
type Registry struct {
	order    []string
	sections map[string]*Object
}

// Parse loads a registry from YAML: a mapping of section key to schema node.
// Every section must be an object.
func Parse(data []byte) (*Registry, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse schema YAML: %w", err)
	}

	r := &Registry{sections: make(map[string]*Object)}

	top := &root
	if top.Kind == yaml.DocumentNode && len(top.Content) > 0 {
		top = top.Content[0]
	}

	if top.Kind == 0 || top.Kind == yaml.DocumentNode {
		return r, nil
	}

	if top.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("schema root must be a mapping of sections")
	}

	for i := 0; i+1 < len(top.Content); i += 2 {
		key := top.Content[i].Value

		n, err := decode(top.Content[i+1], key)
		if err != nil {
			return nil, err
		}

		obj, ok := n.(*Object)
		if !ok {
			return nil, fmt.Errorf("%s: section schema must be an object", key)
		}

		if _, dup := r.sections[key]; dup {
			return nil, fmt.Errorf("%s: section declared twice", key)
		}

		r.order = append(r.order, key)
		r.sections[key] = obj
	}

	return r, nil
}

func decode(n *yaml.Node, path string) (Node, error) {
	var raw rawNode
	if err := n.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return build(&raw, path)
}

func build(raw *rawNode, path string) (Node, error) {
	for _, t := range raw.Type {
		if !slices.Contains(knownTypes, t) {
			return nil, fmt.Errorf("%s: unknown type %q", path, t)
		}
	}

	attrs := Attrs{
		Description: raw.Description,
		Nullable:    raw.Type.Has(TypeNull),
	}

	if raw.Default.Kind != 0 {
		attrs.Default = document.Clone(&raw.Default)
	}

	switch {
	case raw.Type.Has(TypeObject) || raw.Properties.Kind == yaml.MappingNode:
		obj := &Object{Attrs: attrs}

		if raw.Properties.Kind != 0 && raw.Properties.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("%s: properties must be a mapping", path)
		}

		for i := 0; i+1 < len(raw.Properties.Content); i += 2 {
			name := raw.Properties.Content[i].Value

			child, err := decode(raw.Properties.Content[i+1], path+"."+name)
			if err != nil {
				return nil, err
			}

			obj.Properties = append(obj.Properties, Property{Name: name, Schema: child})
		}

		return obj, nil

	case raw.Type.Has(TypeArray):
		arr := &Array{Attrs: attrs}

		if raw.Items != nil {
			items, err := build(raw.Items, path+"[]")
			if err != nil {
				return nil, err
			}

			arr.Items = items
		}

		return arr, nil

	default:
		return &Scalar{Attrs: attrs, Type: raw.Type.Primary()}, nil
	}
}

// Keys returns the section keys in declaration order.
func (r *Registry) Keys() []string {
	return slices.Clone(r.order)
}

// Section returns the schema of a top-level section.
func (r *Registry) Section(key string) (*Object, bool) {
	obj, ok := r.sections[key]
	return obj, ok
}

// Subsection returns the schema of parent.child.
func (r *Registry) Subsection(parent, child string) (Node, bool) {
	obj, ok := r.sections[parent]
	if !ok {
		return nil, false
	}

	return obj.Property(child)
}

// Defaults synthesizes the default tree of a section.
func (r *Registry) Defaults(key string) (*yaml.Node, bool) {
	obj, ok := r.sections[key]
	if !ok {
		return nil, false
	}

	return Synthesize(obj)
}

// SubsectionDefaults synthesizes the default tree of parent.child.
func (r *Registry) SubsectionDefaults(parent, child string) (*yaml.Node, bool) {
	n, ok := r.Subsection(parent, child)
	if !ok {
		return nil, false
	}

	return Synthesize(n)
}
