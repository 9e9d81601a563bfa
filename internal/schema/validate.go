package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const resourceName = "config.schema.json"

// Validator checks decoded documents against a compiled registry.
type Validator struct {
	schema *jsonschema.Schema
}

// Validator compiles the registry into a Validator.
func (r *Registry) Validator() (*Validator, error) {
	data, err := r.ExportJSON()
	if err != nil {
		return nil, err
	}

	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020

	if err := c.AddResource(resourceName, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("failed to load schema: %w", err)
	}

	compiled, err := c.Compile(resourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	return &Validator{schema: compiled}, nil
}

// Validate returns one "location: message" line per violation found in doc.
// A nil result means the document conforms.
func (v *Validator) Validate(doc map[string]any) []string {
	data, err := json.Marshal(doc)
	if err != nil {
		return []string{fmt.Sprintf("document is not JSON compatible: %v", err)}
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var instance any
	if err := dec.Decode(&instance); err != nil {
		return []string{fmt.Sprintf("document is not JSON compatible: %v", err)}
	}

	err = v.schema.Validate(instance)
	if err == nil {
		return nil
	}

	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return []string{err.Error()}
	}

	var out []string
	collect(ve, &out)

	return out
}

func collect(ve *jsonschema.ValidationError, out *[]string) {
	if len(ve.Causes) == 0 {
		loc := ve.InstanceLocation
		if loc == "" {
			loc = "/"
		}

		*out = append(*out, loc+": "+ve.Message)

		return
	}

	for _, c := range ve.Causes {
		collect(c, out)
	}
}
