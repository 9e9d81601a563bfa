package schema

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// JSONSchema returns the registry as a JSON Schema object with one property
// per section, in declaration order.
func (r *Registry) JSONSchema() *jsonschema.Schema {
	root := &jsonschema.Schema{
		Version:     jsonschema.Version,
		Title:       "Configuration",
		Description: "Sections of the application configuration document",
		Type:        TypeObject,
		Properties:  jsonschema.NewProperties(),
	}

	for _, key := range r.order {
		root.Properties.Set(key, toJSONSchema(r.sections[key]))
	}

	return root
}

// ExportJSON renders the registry as indented JSON Schema.
func (r *Registry) ExportJSON() ([]byte, error) {
	data, err := json.MarshalIndent(r.JSONSchema(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}

	return data, nil
}

func toJSONSchema(n Node) *jsonschema.Schema {
	s := &jsonschema.Schema{}

	switch n := n.(type) {
	case *Scalar:
		s.Type = n.Type
	case *Object:
		s.Type = TypeObject
		if len(n.Properties) > 0 {
			s.Properties = jsonschema.NewProperties()
			for _, p := range n.Properties {
				s.Properties.Set(p.Name, toJSONSchema(p.Schema))
			}
		}
	case *Array:
		s.Type = TypeArray
		if n.Items != nil {
			s.Items = toJSONSchema(n.Items)
		}
	}

	attrs := n.attrs()

	var def any
	if attrs.Default != nil {
		if err := attrs.Default.Decode(&def); err != nil {
			def = nil
		}
	}

	if !attrs.Nullable || s.Type == "" {
		s.Description = attrs.Description
		s.Default = def

		return s
	}

	return &jsonschema.Schema{
		Description: attrs.Description,
		Default:     def,
		AnyOf:       []*jsonschema.Schema{s, {Type: TypeNull}},
	}
}
