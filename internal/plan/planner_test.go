package plan

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"config-splitter/internal/analyze"
	"config-splitter/internal/diagnostic"
)

const source = `general:
  appUrl: x
  athlete:
    birthday: y
appearance:
  locale: en_US
zwift:
  level: 10
integrations:
  notifications: {}
  ai: {}
  extra: {}
daemon: {}
`

func TestBuild_DefaultPolicy(t *testing.T) {
	p, err := Build(analyze.Analyze(source), nil, PolicyKeepFirst)
	require.NoError(t, err)

	assert.Equal(t, []string{"general", "appearance", "zwift", "integrations", "daemon"}, p.Included())
	assert.Empty(t, p.RemainingSections())
	assert.Equal(t, DestinationOriginal, p.Remaining.Destination)

	general, ok := p.Section("general")
	require.True(t, ok)
	assert.Equal(t, []string{"athlete"}, general.SplitOut())

	appearance, _ := p.Section("appearance")
	assert.Empty(t, appearance.SplitOut(), "single child never splits")

	integrations, _ := p.Section("integrations")
	assert.Equal(t, []string{"ai", "extra"}, integrations.SplitOut())

	// 5 sections + athlete + ai + extra
	assert.Equal(t, 8, p.FilesCount())
}

func TestBuild_InlinePolicy(t *testing.T) {
	p, err := Build(analyze.Analyze(source), nil, PolicyInline)
	require.NoError(t, err)

	for _, s := range p.Sections {
		assert.Empty(t, s.SplitOut(), s.Key)
	}

	assert.Equal(t, 5, p.FilesCount())
}

func TestBuild_Selection(t *testing.T) {
	sel := &Selection{
		Sections: map[string]SectionSelection{
			"general": {Include: true, SecondLevel: map[string]SubsectionSelection{
				"appUrl":  {Split: false},
				"athlete": {Split: true},
			}},
			"zwift":        {Include: false},
			"integrations": {Include: true, SecondLevel: map[string]SubsectionSelection{"ai": {Split: true}}},
			"missing":      {Include: true},
		},
		Remaining: &RemainingConfig{Destination: DestinationCustom, CustomFileName: "rest.yaml"},
	}

	p, err := Build(analyze.Analyze(source), sel, PolicyKeepFirst)
	require.NoError(t, err)

	assert.Equal(t, []string{"general", "integrations"}, p.Included())
	assert.Equal(t, []string{"appearance", "zwift", "daemon"}, p.RemainingSections())
	assert.Equal(t, "rest.yaml", p.Remaining.CustomFileName)

	integrations, _ := p.Section("integrations")
	assert.Equal(t, []string{"ai"}, integrations.SplitOut())
	assert.Equal(t, 4, p.FilesCount())

	require.Len(t, p.Diagnostics.Warnings, 1)
	assert.Equal(t, diagnostic.CodeUnknownSelection, p.Diagnostics.Warnings[0].Code)
	assert.Contains(t, p.Diagnostics.Warnings[0].Message, "missing")
}

func TestBuild_AdoptsTopLevelKey(t *testing.T) {
	ix := analyze.Analyze("general:\n  appUrl: \"http://x\"\nathlete:\n  birthday: \"1990-01-01\"\n")
	sel := &Selection{Sections: map[string]SectionSelection{
		"general": {Include: true, SecondLevel: map[string]SubsectionSelection{"athlete": {Split: true}}},
		"athlete": {Include: true},
	}}

	p, err := Build(ix, sel, PolicyKeepFirst)
	require.NoError(t, err)

	assert.Equal(t, []string{"general"}, p.Included())
	assert.Empty(t, p.RemainingSections())

	general, _ := p.Section("general")
	assert.Equal(t, []string{"athlete"}, general.SplitOut())
	assert.Equal(t, []string{"athlete"}, general.Adopted())
	assert.Equal(t, 2, p.FilesCount())
	assert.Empty(t, p.Diagnostics.Warnings)

	_, ok := p.Section("athlete")
	assert.False(t, ok)
}

func TestBuild_AdoptionConflicts(t *testing.T) {
	ix := analyze.Analyze("a:\n  x: 1\nb:\n  y: 1\nc:\n  z: 1\n")
	sel := &Selection{Sections: map[string]SectionSelection{
		"a": {Include: true, SecondLevel: map[string]SubsectionSelection{"b": {Split: true}, "nope": {Split: true}}},
		"c": {Include: true, SecondLevel: map[string]SubsectionSelection{"b": {Split: true}, "a": {Split: true}}},
	}}

	p, err := Build(ix, sel, PolicyKeepFirst)
	require.NoError(t, err)

	a, _ := p.Section("a")
	assert.Equal(t, []string{"b"}, a.Adopted())

	c, _ := p.Section("c")
	assert.Empty(t, c.Adopted())

	assert.Equal(t, 3, p.Diagnostics.Count(diagnostic.CodeUnknownSelection))
}

func TestBuild_NoSections(t *testing.T) {
	_, err := Build(analyze.Analyze(""), nil, PolicyKeepFirst)
	assert.True(t, errors.Is(err, ErrNoSections))

	_, err = Build(analyze.Analyze(source), &Selection{}, PolicyKeepFirst)
	assert.True(t, errors.Is(err, ErrNoSections))
}

func TestEnums(t *testing.T) {
	p, err := ParsePolicy("inline")
	require.NoError(t, err)
	assert.Equal(t, PolicyInline, p)
	assert.Equal(t, "keep-first", PolicyKeepFirst.String())

	_, err = ParsePolicy("random")
	assert.Error(t, err)

	d, err := ParseDestination("Merge")
	require.NoError(t, err)
	assert.Equal(t, DestinationMerge, d)
	assert.Equal(t, "Destination(7)", Destination(7).String())

	var rc RemainingConfig
	require.NoError(t, json.Unmarshal([]byte(`{"destination":"custom","customFileName":"x.yaml"}`), &rc))
	assert.Equal(t, DestinationCustom, rc.Destination)

	require.Error(t, json.Unmarshal([]byte(`{"destination":"elsewhere"}`), &rc))

	out, err := json.Marshal(RemainingConfig{Destination: DestinationMerge, MergeIntoFile: "config.yaml"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"destination":"merge","mergeIntoFile":"config.yaml"}`, string(out))
}
