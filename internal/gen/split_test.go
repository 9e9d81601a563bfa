package gen

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"config-splitter/internal/analyze"
	"config-splitter/internal/document"
	"config-splitter/internal/header"
	"config-splitter/internal/plan"
)

func TestSplit_AdoptedSubsection(t *testing.T) {
	content := "general:\n  appUrl: \"http://x\"\nathlete:\n  birthday: \"1990-01-01\"\n"
	sel := &plan.Selection{Sections: map[string]plan.SectionSelection{
		"general": {Include: true, SecondLevel: map[string]plan.SubsectionSelection{"athlete": {Split: true}}},
		"athlete": {Include: true},
	}}

	result := split(t, content, sel, DefaultSplitOptions())

	require.Len(t, result.Files, 2)
	assert.Empty(t, result.KeptInOriginal)

	assert.Equal(t, OutputFile{
		FileName: "config.yaml",
		Content:  header.Banner("General", false) + "general:\n  appUrl: \"http://x\"\n",
		Sections: []string{"general"},
	}, result.Files[0])

	assert.Equal(t, OutputFile{
		FileName: "config-general-athlete.yaml",
		Content:  header.Banner("Athlete", false) + "athlete:\n  birthday: \"1990-01-01\"\n",
		Sections: []string{"athlete"},
	}, result.Files[1])
}

func TestSplit_DefaultPolicy(t *testing.T) {
	result := split(t, master, nil, DefaultSplitOptions())

	names := make([]string, len(result.Files))
	for i, f := range result.Files {
		names[i] = f.FileName
	}

	assert.Equal(t, []string{
		"config.yaml",
		"config-general-athlete.yaml",
		"config-appearance.yaml",
		"config-appearance-dashboard.yaml",
		"config-appearance-photos.yaml",
		"config-import.yaml",
		"config-import-sportTypesToImport.yaml",
		"config-metrics.yaml",
		"config-metrics-consistencyChallenges.yaml",
		"config-zwift.yaml",
		"config-zwift-racingScore.yaml",
		"config-integrations.yaml",
		"config-integrations-ai.yaml",
		"config-daemon.yaml",
		"config-customTool.yaml",
	}, names)

	general := fileByName(t, result.Files, "config.yaml")
	assert.NotContains(t, general.Content, "birthday")
	assert.True(t, strings.HasPrefix(general.Content, header.Banner("General", false)))

	athlete := fileByName(t, result.Files, "config-general-athlete.yaml")
	assert.Equal(t, []string{"athlete"}, athlete.Sections)
	assert.Contains(t, athlete.Content, "athlete:\n  birthday: \"1989-08-14\"\n")

	for _, f := range result.Files {
		assert.True(t, strings.HasSuffix(f.Content, "\n"), f.FileName)
		assert.False(t, strings.HasSuffix(f.Content, "\n\n"), f.FileName)
	}
}

func TestSplit_NestedHeaders(t *testing.T) {
	content := "integrations:\n  notifications:\n    services: []\n  ai:\n    enabled: false\n  extra: 1\n"

	doc, err := document.Parse(content)
	require.NoError(t, err)

	p, err := plan.Build(analyze.Analyze(content), nil, plan.PolicyInline)
	require.NoError(t, err)

	result, err := newSplitter().Split(doc, p)
	require.NoError(t, err)
	require.Len(t, result.Files, 1)

	expected := header.Banner("Integrations", false) +
		"integrations:\n" +
		document.Indent(header.Banner("Notifications", true), "  ") +
		"  notifications:\n    services: []\n" +
		"\n" +
		document.Indent(header.Banner("AI", true), "  ") +
		"  ai:\n    enabled: false\n" +
		"  extra: 1\n"

	assert.Equal(t, expected, result.Files[0].Content)
	assert.Equal(t, decode(t, content), decode(t, result.Files[0].Content))
}

func TestSplit_NonMappingValueIsVerbatim(t *testing.T) {
	content := "daemon:\n  cron:\n    - action: a\n  other: 1\nlist:\n  - a\n"
	sel := &plan.Selection{Sections: map[string]plan.SectionSelection{
		"list":   {Include: true, SecondLevel: map[string]plan.SubsectionSelection{"ghost": {Split: true}}},
		"daemon": {Include: true, SecondLevel: map[string]plan.SubsectionSelection{"other": {Split: true}}},
	}}

	result := split(t, content, sel, DefaultSplitOptions())

	list := fileByName(t, result.Files, "config-list.yaml")
	assert.Contains(t, list.Content, "list:\n  - a\n")

	daemon := fileByName(t, result.Files, "config-daemon.yaml")
	assert.NotContains(t, daemon.Content, "other")
	assert.Contains(t, daemon.Content, "action: a")

	other := fileByName(t, result.Files, "config-daemon-other.yaml")
	assert.Contains(t, other.Content, "other: 1\n")
}

func TestSplit_Remaining(t *testing.T) {
	content := "general:\n  appUrl: x\nzwift:\n  level: 1\ngear:\n  stravaGear: []\n"
	include := func(rc *plan.RemainingConfig) *plan.Selection {
		return &plan.Selection{
			Sections:  map[string]plan.SectionSelection{"general": {Include: true}},
			Remaining: rc,
		}
	}

	t.Run("kept in original", func(t *testing.T) {
		result := split(t, content, include(nil), DefaultSplitOptions())

		require.Len(t, result.Files, 1)
		assert.Equal(t, []string{"zwift", "gear"}, result.KeptInOriginal)
	})

	t.Run("original file is rewritten", func(t *testing.T) {
		opts := DefaultSplitOptions()
		opts.SourceName = "config.yaml"

		result := split(t, content, include(nil), opts)

		require.Len(t, result.Files, 1)
		assert.Empty(t, result.KeptInOriginal)
		assert.Equal(t, []string{"general", "zwift", "gear"}, result.Files[0].Sections)
	})

	t.Run("custom file", func(t *testing.T) {
		result := split(t, content, include(&plan.RemainingConfig{
			Destination: plan.DestinationCustom, CustomFileName: "rest.yaml",
		}), DefaultSplitOptions())

		rest := fileByName(t, result.Files, "rest.yaml")
		assert.Equal(t, []string{"zwift", "gear"}, rest.Sections)
		assert.Contains(t, rest.Content, header.Banner("Zwift", false)+"zwift:\n  level: 1\n")
	})

	t.Run("merge into produced file", func(t *testing.T) {
		result := split(t, content, include(&plan.RemainingConfig{
			Destination: plan.DestinationMerge, MergeIntoFile: "config.yaml",
		}), DefaultSplitOptions())

		require.Len(t, result.Files, 1)
		assert.Equal(t, []string{"general", "zwift", "gear"}, result.Files[0].Sections)
	})
}

func TestSplit_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		sel     *plan.Selection
		wantErr error
	}{
		{
			name:    "custom file without name",
			content: "general:\n  a: 1\nzwift: {}\n",
			sel: &plan.Selection{
				Sections:  map[string]plan.SectionSelection{"general": {Include: true}},
				Remaining: &plan.RemainingConfig{Destination: plan.DestinationCustom},
			},
			wantErr: ErrCustomFile,
		},
		{
			name:    "custom file collides",
			content: "general:\n  a: 1\nzwift: {}\n",
			sel: &plan.Selection{
				Sections:  map[string]plan.SectionSelection{"general": {Include: true}},
				Remaining: &plan.RemainingConfig{Destination: plan.DestinationCustom, CustomFileName: "config.yaml"},
			},
			wantErr: ErrCustomFile,
		},
		{
			name:    "merge target not produced",
			content: "general:\n  a: 1\nzwift: {}\n",
			sel: &plan.Selection{
				Sections:  map[string]plan.SectionSelection{"general": {Include: true}},
				Remaining: &plan.RemainingConfig{Destination: plan.DestinationMerge, MergeIntoFile: "other.yaml"},
			},
			wantErr: ErrMergeTarget,
		},
		{
			name:    "duplicate file names",
			content: "general:\n  a: 1\n  athlete: 2\ngeneral-athlete: 3\n",
			wantErr: ErrDuplicateFile,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := document.Parse(tt.content)
			require.NoError(t, err)

			p, err := plan.Build(analyze.Analyze(tt.content), tt.sel, plan.PolicyKeepFirst)
			require.NoError(t, err)

			_, err = newSplitter().Split(doc, p)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), err.Error())
		})
	}
}

func TestSplit_NoLoss(t *testing.T) {
	doc, err := document.Parse(master)
	require.NoError(t, err)

	sel := &plan.Selection{
		Sections: map[string]plan.SectionSelection{
			"general": {Include: true, SecondLevel: map[string]plan.SubsectionSelection{"athlete": {Split: true}}},
			"metrics": {Include: true},
		},
	}

	result := split(t, master, sel, DefaultSplitOptions())

	var seen []string
	for _, f := range result.Files {
		seen = append(seen, f.Sections...)
	}

	seen = append(seen, result.KeptInOriginal...)

	// Split-out children are listed under their own key.
	assert.ElementsMatch(t, append(doc.Keys(), "athlete"), seen)
}

func TestSplit_PlanSectionMissingFromDocument(t *testing.T) {
	doc, err := document.Parse("zwift:\n  level: 1\n")
	require.NoError(t, err)

	p, err := plan.Build(analyze.Analyze("ghost:\n  a: 1\nzwift:\n  level: 1\n"), nil, plan.PolicyKeepFirst)
	require.NoError(t, err)

	result, err := newSplitter().Split(doc, p)
	require.NoError(t, err)

	require.Len(t, result.Files, 1)
	assert.Equal(t, 1, len(result.Diagnostics.Warnings))
}

func TestNaming(t *testing.T) {
	n := DefaultNaming()

	assert.Equal(t, "config.yaml", n.SectionFile("general"))
	assert.Equal(t, "config-zwift.yaml", n.SectionFile("zwift"))
	assert.Equal(t, "config-metrics-eddington.yaml", n.SubsectionFile("metrics", "eddington"))

	parent, ok := n.ParentOf("/etc/app/config-metrics-eddington.yaml", "eddington")
	assert.True(t, ok)
	assert.Equal(t, "metrics", parent)

	_, ok = n.ParentOf("config-metrics-eddington.yaml", "metrics")
	assert.False(t, ok)

	_, ok = n.ParentOf("config-eddington.yaml", "eddington")
	assert.False(t, ok)

	_, ok = n.ParentOf("config.yaml", "general")
	assert.False(t, ok)
}

func TestWriteFiles(t *testing.T) {
	dir := t.TempDir() + "/out"

	require.NoError(t, WriteFiles([]OutputFile{{FileName: "config.yaml", Content: "a: 1\n"}}, dir))
	assert.FileExists(t, dir+"/config.yaml")

	assert.Error(t, WriteFiles([]OutputFile{{FileName: "../escape.yaml"}}, dir))
}
