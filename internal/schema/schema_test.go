package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"config-splitter/internal/catalog"
	"config-splitter/internal/document"
)

func decodeNode(t *testing.T, n *yaml.Node) any {
	t.Helper()

	var v any
	require.NoError(t, n.Decode(&v))

	return v
}

func TestParse_Variants(t *testing.T) {
	r, err := Parse([]byte(`
zwift:
  type: object
  properties:
    level:
      type: [integer, "null"]
    tags:
      type: array
      items: {type: string}
    name:
      type: string
      default: rider
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"zwift"}, r.Keys())

	obj, ok := r.Section("zwift")
	require.True(t, ok)
	assert.Equal(t, []string{"level", "tags", "name"}, obj.PropertyNames())

	level, ok := r.Subsection("zwift", "level")
	require.True(t, ok)
	require.IsType(t, &Scalar{}, level)
	assert.Equal(t, TypeInteger, level.(*Scalar).Type)
	assert.True(t, level.(*Scalar).Nullable)

	tags, _ := obj.Property("tags")
	require.IsType(t, &Array{}, tags)
	assert.IsType(t, &Scalar{}, tags.(*Array).Items)

	_, ok = r.Subsection("zwift", "missing")
	assert.False(t, ok)
	_, ok = r.Subsection("missing", "level")
	assert.False(t, ok)
}

func TestParse_Defaults(t *testing.T) {
	r, err := Parse([]byte(`
zwift:
  type: object
  properties:
    name:
      type: string
      default: rider
    level:
      type: [integer, "null"]
      default: null
    tags:
      type: array
      default: [a, b]
    profile:
      type: object
      default: {from: 50, to: null}
`))
	require.NoError(t, err)

	tests := []struct {
		property string
		want     any
	}{
		{property: "name", want: "rider"},
		{property: "level", want: nil},
		{property: "tags", want: []any{"a", "b"}},
		{property: "profile", want: map[string]any{"from": 50, "to": nil}},
	}

	for _, tt := range tests {
		t.Run(tt.property, func(t *testing.T) {
			n, ok := r.Subsection("zwift", tt.property)
			require.True(t, ok)
			require.NotNil(t, n.attrs().Default)
			assert.Equal(t, tt.want, decodeNode(t, n.attrs().Default))
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{name: "unknown type", input: "a:\n  type: object\n  properties:\n    b: {type: date}\n", wantErr: `a.b: unknown type "date"`},
		{name: "section not object", input: "a:\n  type: string\n", wantErr: "a: section schema must be an object"},
		{name: "bad type value", input: "a:\n  type: {x: 1}\n", wantErr: "expected type name"},
		{name: "root not mapping", input: "- a\n", wantErr: "schema root must be a mapping"},
		{name: "properties not mapping", input: "a:\n  type: object\n  properties: [x]\n", wantErr: "a: properties must be a mapping"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSynthesize(t *testing.T) {
	nullable := &Scalar{Attrs: Attrs{Nullable: true}, Type: TypeString}
	plain := &Scalar{Type: TypeString}
	withDefault := &Scalar{Attrs: Attrs{Default: document.Scalar("x")}, Type: TypeString}

	tests := []struct {
		name   string
		node   Node
		want   any
		wantOK bool
	}{
		{name: "nil", node: nil},
		{name: "explicit default", node: withDefault, want: "x", wantOK: true},
		{name: "nullable leaf", node: nullable, want: nil, wantOK: true},
		{name: "plain leaf omitted", node: plain},
		{name: "array without default", node: &Array{Items: plain}, want: []any{}, wantOK: true},
		{
			name: "nullable object without properties omitted",
			node: &Object{Attrs: Attrs{Nullable: true}},
		},
		{
			name: "empty nested objects omitted",
			node: &Object{Properties: []Property{
				{Name: "a", Schema: plain},
				{Name: "b", Schema: &Object{Properties: []Property{{Name: "c", Schema: plain}}}},
			}},
		},
		{
			name: "object keeps only contributing properties",
			node: &Object{Properties: []Property{
				{Name: "a", Schema: plain},
				{Name: "b", Schema: nullable},
				{Name: "c", Schema: &Object{Properties: []Property{{Name: "d", Schema: withDefault}}}},
				{Name: "e", Schema: &Array{}},
			}},
			want:   map[string]any{"b": nil, "c": map[string]any{"d": "x"}, "e": []any{}},
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Synthesize(tt.node)
			assert.Equal(t, tt.wantOK, ok)

			if !tt.wantOK {
				assert.Nil(t, got)
				return
			}

			assert.Equal(t, tt.want, decodeNode(t, got))
		})
	}
}

func TestSynthesize_ReturnsCopies(t *testing.T) {
	def := document.Scalar("x")
	n := &Scalar{Attrs: Attrs{Default: def}}

	got, ok := Synthesize(n)
	require.True(t, ok)

	got.Value = "changed"
	assert.Equal(t, "x", def.Value)
}

func TestBuiltin_CoversCatalog(t *testing.T) {
	r := Builtin()
	c := catalog.Builtin()

	assert.Equal(t, c.Keys(), r.Keys())

	for _, key := range c.Keys() {
		def, ok := r.Defaults(key)
		require.True(t, ok, key)
		assert.NotEmpty(t, document.ChildKeys(def), key)

		for _, sub := range c.SubsectionKeys(key) {
			_, ok := r.SubsectionDefaults(key, sub)
			assert.True(t, ok, key+"."+sub)
		}
	}
}

func TestBuiltin_Defaults(t *testing.T) {
	r := Builtin()

	zwift, ok := r.Defaults("zwift")
	require.True(t, ok)
	assert.Equal(t, map[string]any{"level": nil, "racingScore": nil}, decodeNode(t, zwift))

	athlete, ok := r.SubsectionDefaults("general", "athlete")
	require.True(t, ok)
	assert.Equal(t,
		[]string{"birthday", "maxHeartRateFormula", "restingHeartRateFormula", "heartRateZones", "weightHistory", "ftpHistory"},
		document.ChildKeys(athlete))

	_, ok = r.Defaults("unknown")
	assert.False(t, ok)
}

func TestExportJSON(t *testing.T) {
	data, err := Builtin().ExportJSON()
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))

	assert.Equal(t, "object", out["type"])

	props, ok := out["properties"].(map[string]any)
	require.True(t, ok)
	assert.Len(t, props, len(catalog.Builtin().Keys()))

	zwift := props["zwift"].(map[string]any)
	level := zwift["properties"].(map[string]any)["level"].(map[string]any)
	assert.Len(t, level["anyOf"], 2)
}

func TestValidator(t *testing.T) {
	v, err := Builtin().Validator()
	require.NoError(t, err)

	assert.Empty(t, v.Validate(map[string]any{
		"zwift":   map[string]any{"level": 10, "racingScore": nil},
		"unknown": "kept",
	}))

	violations := v.Validate(map[string]any{
		"zwift": map[string]any{"level": "high"},
	})
	require.NotEmpty(t, violations)
	assert.Contains(t, violations[0], "/zwift/level")
}

func TestValidator_AcceptsSynthesizedDefaults(t *testing.T) {
	r := Builtin()

	v, err := r.Validator()
	require.NoError(t, err)

	doc := map[string]any{}
	for _, key := range r.Keys() {
		def, _ := r.Defaults(key)
		doc[key] = decodeNode(t, def)
	}

	assert.Empty(t, v.Validate(doc))
}
