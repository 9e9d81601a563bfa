package schema

import (
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

// Type names understood by the loader.
const (
	TypeString  = "string"
	TypeInteger = "integer"
	TypeNumber  = "number"
	TypeBoolean = "boolean"
	TypeNull    = "null"
	TypeObject  = "object"
	TypeArray   = "array"
)

var knownTypes = []string{TypeString, TypeInteger, TypeNumber, TypeBoolean, TypeNull, TypeObject, TypeArray}

// Node is one schema node: *Scalar, *Object or *Array.
type Node interface {
	attrs() *Attrs
}

// Attrs holds what every variant may declare.
type Attrs struct {
	Description string
	// Default is the declared default value, nil when none is declared.
	Default *yaml.Node
	// Nullable is set when the declared types include "null".
	Nullable bool
}

func (a *Attrs) attrs() *Attrs { return a }

// Scalar is a leaf value such as a string, number or boolean.
type Scalar struct {
	Attrs

	// Type is the primary non-null type name; empty means any.
	Type string
}

// Object is a mapping with ordered, named properties.
type Object struct {
	Attrs

	Properties []Property
}

// Array is a sequence of items.
type Array struct {
	Attrs

	// Items describes every element; nil when undeclared.
	Items Node
}

// Property is a named child of an Object.
type Property struct {
	Name   string
	Schema Node
}

var (
	_ Node = (*Scalar)(nil)
	_ Node = (*Object)(nil)
	_ Node = (*Array)(nil)
)

// Property returns the schema of a named property.
func (o *Object) Property(name string) (Node, bool) {
	i := slices.IndexFunc(o.Properties, func(p Property) bool { return p.Name == name })
	if i < 0 {
		return nil, false
	}

	return o.Properties[i].Schema, true
}

// PropertyNames returns the property names in declaration order.
func (o *Object) PropertyNames() []string {
	names := make([]string, len(o.Properties))
	for i, p := range o.Properties {
		names[i] = p.Name
	}

	return names
}

// TypeSet is the declared type of a node. It unmarshals from either a single
// type name or a list of names.
type TypeSet []string

// UnmarshalYAML implements custom YAML unmarshaling for TypeSet.
func (t *TypeSet) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var name string
		if err := node.Decode(&name); err != nil {
			return err
		}

		if name != "" {
			*t = TypeSet{name}
		} else {
			*t = TypeSet{}
		}

		return nil

	case yaml.SequenceNode:
		var names []string
		if err := node.Decode(&names); err != nil {
			return err
		}

		*t = names

		return nil

	default:
		return fmt.Errorf("expected type name or list of names, got %v", node.Kind)
	}
}

// Has reports whether name is one of the declared types.
func (t TypeSet) Has(name string) bool {
	return slices.Contains(t, name)
}

// Primary returns the first declared type other than null.
func (t TypeSet) Primary() string {
	for _, name := range t {
		if name != TypeNull {
			return name
		}
	}

	return ""
}
