package gen

import (
	"testing"

	"github.com/stretchr/testify/require"

	"config-splitter/internal/analyze"
	"config-splitter/internal/catalog"
	"config-splitter/internal/document"
	"config-splitter/internal/plan"
	"config-splitter/internal/schema"
)

const master = `general:
  appUrl: "http://localhost:8080/"
  athlete:
    birthday: "1989-08-14"
    maxHeartRateFormula: fox
appearance:
  locale: en_US
  dashboard:
    layout: null
  photos:
    hidePhotosForSportTypes: []
import:
  numberOfNewActivitiesToProcessPerImport: 250
  sportTypesToImport: [Ride, Run]
metrics:
  eddington:
    - label: Ride
      sportTypesToInclude: [Ride]
  consistencyChallenges: []
zwift:
  level: 10
  racingScore: null
integrations:
  notifications:
    services: []
  ai:
    enabled: false
daemon:
  cron:
    - action: importDataAndBuildApp
      expression: "0 14 * * *"
      enabled: true
customTool:
  flag: true
`

func newSplitter() *Splitter {
	return NewSplitter(catalog.Builtin(), DefaultSplitOptions())
}

func newMerger() *Merger {
	return NewMerger(catalog.Builtin(), schema.Builtin(), DefaultNaming())
}

func split(t *testing.T, content string, sel *plan.Selection, opts SplitOptions) *SplitResult {
	t.Helper()

	doc, err := document.Parse(content)
	require.NoError(t, err)

	p, err := plan.Build(analyze.Analyze(content), sel, plan.PolicyKeepFirst)
	require.NoError(t, err)

	result, err := NewSplitter(catalog.Builtin(), opts).Split(doc, p)
	require.NoError(t, err)

	return result
}

func inputsOf(files []OutputFile) []Input {
	inputs := make([]Input, len(files))
	for i, f := range files {
		inputs[i] = Input{Name: f.FileName, Content: f.Content}
	}

	return inputs
}

func decode(t *testing.T, content string) map[string]any {
	t.Helper()

	doc, err := document.Parse(content)
	require.NoError(t, err)

	out, err := doc.Decode()
	require.NoError(t, err)

	return out
}

func fileByName(t *testing.T, files []OutputFile, name string) OutputFile {
	t.Helper()

	for _, f := range files {
		if f.FileName == name {
			return f
		}
	}

	require.Failf(t, "file not produced", "%s", name)

	return OutputFile{}
}

func buildPlan(t *testing.T, content string, sel *plan.Selection, policy plan.Policy) *plan.Plan {
	t.Helper()

	p, err := plan.Build(analyze.Analyze(content), sel, policy)
	require.NoError(t, err)

	return p
}

func splitWith(t *testing.T, content string, p *plan.Plan) *SplitResult {
	t.Helper()

	doc, err := document.Parse(content)
	require.NoError(t, err)

	result, err := newSplitter().Split(doc, p)
	require.NoError(t, err)

	return result
}
