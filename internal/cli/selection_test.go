package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"config-splitter/internal/analyze"
	"config-splitter/internal/plan"
)

const document = `general:
  appUrl: x
athlete:
  birthday: "1989-08-14"
appearance:
  locale: en_US
  dashboard:
    layout: null
  photos:
    hidePhotosForSportTypes: []
integrations:
  notifications: {}
  ai: {}
`

func TestBuildSelection(t *testing.T) {
	ix := analyze.Analyze(document)

	tests := []struct {
		name  string
		flags selectionFlags
		want  map[string]plan.SectionSelection
	}{
		{
			name:  "include literal",
			flags: selectionFlags{include: []string{"general"}},
			want:  map[string]plan.SectionSelection{"general": {Include: true}},
		},
		{
			name:  "include glob",
			flags: selectionFlags{include: []string{"a*"}},
			want: map[string]plan.SectionSelection{
				"athlete":    {Include: true},
				"appearance": {Include: true},
			},
		},
		{
			name:  "unknown literal kept for warnings",
			flags: selectionFlags{include: []string{"zwift"}},
			want:  map[string]plan.SectionSelection{"zwift": {Include: true}},
		},
		{
			name:  "split child glob",
			flags: selectionFlags{split: []string{"appearance.*"}},
			want: map[string]plan.SectionSelection{
				"appearance": {Include: true, SecondLevel: map[string]plan.SubsectionSelection{
					"locale":    {Split: true},
					"dashboard": {Split: true},
					"photos":    {Split: true},
				}},
			},
		},
		{
			name:  "split section glob",
			flags: selectionFlags{split: []string{"*.ai"}},
			want: map[string]plan.SectionSelection{
				"general":      {Include: true, SecondLevel: map[string]plan.SubsectionSelection{"ai": {Split: true}}},
				"athlete":      {Include: true, SecondLevel: map[string]plan.SubsectionSelection{"ai": {Split: true}}},
				"appearance":   {Include: true, SecondLevel: map[string]plan.SubsectionSelection{"ai": {Split: true}}},
				"integrations": {Include: true, SecondLevel: map[string]plan.SubsectionSelection{"ai": {Split: true}}},
			},
		},
		{
			name:  "adopt top-level key",
			flags: selectionFlags{split: []string{"general.athlete"}},
			want: map[string]plan.SectionSelection{
				"general": {Include: true, SecondLevel: map[string]plan.SubsectionSelection{"athlete": {Split: true}}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel, err := buildSelection(ix, tt.flags)
			require.NoError(t, err)

			assert.Equal(t, tt.want, sel.Sections)
			assert.Equal(t, plan.DestinationOriginal, sel.Remaining.Destination)
		})
	}
}

func TestBuildSelection_Remaining(t *testing.T) {
	ix := analyze.Analyze(document)

	tests := []struct {
		name  string
		flags selectionFlags
		want  plan.RemainingConfig
	}{
		{
			name:  "custom file implies custom",
			flags: selectionFlags{include: []string{"general"}, customFile: "rest.yaml"},
			want:  plan.RemainingConfig{Destination: plan.DestinationCustom, CustomFileName: "rest.yaml"},
		},
		{
			name:  "merge into implies merge",
			flags: selectionFlags{include: []string{"general"}, mergeInto: "config.yaml"},
			want:  plan.RemainingConfig{Destination: plan.DestinationMerge, MergeIntoFile: "config.yaml"},
		},
		{
			name:  "explicit destination",
			flags: selectionFlags{include: []string{"general"}, remaining: "Original"},
			want:  plan.RemainingConfig{Destination: plan.DestinationOriginal},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel, err := buildSelection(ix, tt.flags)
			require.NoError(t, err)
			assert.Equal(t, tt.want, *sel.Remaining)
		})
	}
}

func TestBuildSelection_Errors(t *testing.T) {
	ix := analyze.Analyze(document)

	tests := []struct {
		name  string
		flags selectionFlags
	}{
		{"bad include glob", selectionFlags{include: []string{"[general"}}},
		{"split without child", selectionFlags{split: []string{"general"}}},
		{"split with empty section", selectionFlags{split: []string{".athlete"}}},
		{"bad destination", selectionFlags{remaining: "elsewhere"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := buildSelection(ix, tt.flags)
			assert.Error(t, err)
		})
	}
}

func TestSelectionFlags_Empty(t *testing.T) {
	assert.True(t, selectionFlags{}.empty())
	assert.False(t, selectionFlags{include: []string{"general"}}.empty())
	assert.False(t, selectionFlags{customFile: "rest.yaml"}.empty())
}
