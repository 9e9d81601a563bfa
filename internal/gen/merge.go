package gen

import (
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"config-splitter/internal/catalog"
	"config-splitter/internal/diagnostic"
	"config-splitter/internal/document"
	"config-splitter/internal/header"
	"config-splitter/internal/schema"
)

// Input is one section file to merge.
type Input struct {
	// Name identifies the input in diagnostics and drives subsection
	// folding; it is usually the file name.
	Name    string
	Content string
}

// MergeOptions configures one merge.
type MergeOptions struct {
	// FillMissing adds absent catalog sections and subsections from their
	// schema defaults.
	FillMissing bool
	// Validate checks the merged document against the schema and reports
	// violations as warnings.
	Validate bool
}

// MergeResult is the outcome of a merge.
type MergeResult struct {
	MergedContent string
	// Sections lists the merged top-level keys in output order.
	Sections    []string
	Diagnostics diagnostic.Diagnostics
}

// SectionsCount returns the number of merged top-level sections.
func (r *MergeResult) SectionsCount() int {
	return len(r.Sections)
}

// Warnings returns the warning messages.
func (r *MergeResult) Warnings() []string {
	return r.Diagnostics.WarningMessages()
}

// Errors returns the per-input error messages.
func (r *MergeResult) Errors() []string {
	return r.Diagnostics.ErrorMessages()
}

// Merger combines section files into one document.
type Merger struct {
	catalog *catalog.Catalog
	schema  *schema.Registry
	naming  Naming
	writer  *sectionWriter
	headers *header.Generator
}

// NewMerger creates a Merger. The registry supplies defaults for FillMissing.
func NewMerger(c *catalog.Catalog, reg *schema.Registry, naming Naming) *Merger {
	return &Merger{
		catalog: c,
		schema:  reg,
		naming:  naming,
		writer:  newSectionWriter(c),
		headers: header.New(c),
	}
}

// fold is a split-out child waiting to be put back under its parent.
type fold struct {
	parent string
	child  string
	value  *yaml.Node
	source string
}

// parsedInput is an input that parsed into at least one section.
type parsedInput struct {
	name    string
	entries []document.Entry
	// parents maps keys of a split-out child file to their parent section.
	parents map[string]string
}

// Merge parses inputs and combines them. Inputs that fail to parse are
// reported as errors and skipped. When no section is left, the result still
// carries the diagnostics and the error is ErrNoSectionData.
//
// Sections and subsections are decided in input order: whichever input
// defines a key first wins, whether it is inline or in a split-out file.
func (m *Merger) Merge(inputs []Input, opts MergeOptions) (*MergeResult, error) {
	result := &MergeResult{}
	diags := &result.Diagnostics

	parsed := m.parse(inputs, diags)
	foldable := foldableParents(parsed)

	acc := document.New()
	pending := make(map[string][]fold)

	var waiting []string

	for _, in := range parsed {
		for _, e := range in.entries {
			parent, isChild := in.parents[e.Key]

			switch {
			case !isChild:
				acc = m.unionParent(acc, e, in.name, pending[e.Key], diags)
				delete(pending, e.Key)

			case !foldable[parent]:
				acc = m.orphan(acc, fold{parent: parent, child: e.Key, value: e.Value, source: in.name}, diags)

			default:
				f := fold{parent: parent, child: e.Key, value: e.Value, source: in.name}

				if value, ok := acc.Get(parent); ok {
					acc = m.foldInto(acc, value, f, diags)
					continue
				}

				if slices.ContainsFunc(pending[parent], func(p fold) bool { return p.child == f.child }) {
					m.duplicateChild(f, diags)
					continue
				}

				if _, seen := pending[parent]; !seen {
					waiting = append(waiting, parent)
				}

				pending[parent] = append(pending[parent], f)
			}
		}
	}

	for _, parent := range waiting {
		for _, f := range pending[parent] {
			value, ok := acc.Get(parent)
			if !ok || !(document.IsMapping(value) || document.IsNull(value)) {
				acc = m.orphan(acc, f, diags)
				continue
			}

			acc = m.foldInto(acc, value, f, diags)
		}
	}

	if opts.FillMissing {
		acc = m.fillMissing(acc, diags)
	}

	if acc.Len() == 0 {
		return result, ErrNoSectionData
	}

	for _, key := range acc.Keys() {
		if !m.catalog.Contains(key) {
			diags.AddInfo(diagnostic.CodeUnknownSection,
				fmt.Sprintf("unknown section %q kept as is", key), key, "", m.catalog.Suggest(key)...)
		}
	}

	if opts.Validate {
		if err := m.validate(acc, diags); err != nil {
			return nil, err
		}
	}

	ordered := acc.Subset(m.catalog.Order(acc.Keys())...)

	body, err := m.writer.sections(ordered.Entries())
	if err != nil {
		return nil, err
	}

	result.MergedContent = finish(m.headers.TableOfContents(outline(ordered)) + "\n" + body)
	result.Sections = ordered.Keys()

	return result, nil
}

// union adds e to acc unless the key is already there, in which case the
// first value wins and a warning names the key and the input.
func (m *Merger) union(acc *document.Document, e document.Entry, source string, diags *diagnostic.Diagnostics) *document.Document {
	if acc.Has(e.Key) {
		diags.AddWarning(diagnostic.CodeDuplicateSection,
			fmt.Sprintf("duplicate section %q in %s ignored; the first definition wins", e.Key, source), e.Key, source)

		return acc
	}

	return acc.With(e.Key, e.Value)
}

// parse decodes every input, dropping those that fail or hold nothing, and
// marks the keys of split-out child files.
func (m *Merger) parse(inputs []Input, diags *diagnostic.Diagnostics) []parsedInput {
	var parsed []parsedInput

	for i, in := range inputs {
		name := in.Name
		if name == "" {
			name = fmt.Sprintf("input %d", i+1)
		}

		doc, err := document.Parse(in.Content)
		if err != nil {
			diags.AddError(diagnostic.CodeParseFailed, fmt.Sprintf("%s: %v", name, err), "", name)
			continue
		}

		if doc.Len() == 0 {
			diags.AddWarning(diagnostic.CodeEmptyInput, fmt.Sprintf("%s: no sections found", name), "", name)
			continue
		}

		p := parsedInput{name: name, entries: doc.Entries(), parents: make(map[string]string)}

		for _, key := range doc.Keys() {
			if parent, ok := m.naming.ParentOf(in.Name, key); ok {
				p.parents[key] = parent
			}
		}

		parsed = append(parsed, p)
	}

	return parsed
}

// foldableParents reports, per section defined inline by some input,
// whether its winning definition can take children back.
func foldableParents(parsed []parsedInput) map[string]bool {
	foldable := make(map[string]bool)
	seen := make(map[string]bool)

	for _, in := range parsed {
		for _, e := range in.entries {
			if _, isChild := in.parents[e.Key]; isChild || seen[e.Key] {
				continue
			}

			seen[e.Key] = true
			foldable[e.Key] = document.IsMapping(e.Value) || document.IsNull(e.Value)
		}
	}

	return foldable
}

// unionParent unions e and nests the children of earlier split-out files
// that were waiting for it. Those children win over inline ones.
func (m *Merger) unionParent(
	acc *document.Document,
	e document.Entry,
	source string,
	waiting []fold,
	diags *diagnostic.Diagnostics,
) *document.Document {
	if acc.Has(e.Key) || len(waiting) == 0 {
		return m.union(acc, e, source, diags)
	}

	value := e.Value

	for _, f := range waiting {
		if _, dup := document.Child(value, f.child); dup {
			m.duplicateChild(fold{parent: f.parent, child: f.child, source: source}, diags)
		}

		value = document.WithChild(value, f.child, f.value)
		m.folded(f, diags)
	}

	return acc.With(e.Key, value)
}

// foldInto nests f under parent, which is already merged.
func (m *Merger) foldInto(acc *document.Document, parent *yaml.Node, f fold, diags *diagnostic.Diagnostics) *document.Document {
	if _, dup := document.Child(parent, f.child); dup {
		m.duplicateChild(f, diags)
		return acc
	}

	m.folded(f, diags)

	return acc.With(f.parent, document.WithChild(parent, f.child, f.value))
}

// orphan keeps a split-out child whose parent cannot take it as a
// top-level section.
func (m *Merger) orphan(acc *document.Document, f fold, diags *diagnostic.Diagnostics) *document.Document {
	diags.AddWarning(diagnostic.CodeOrphanSubsection,
		fmt.Sprintf("%s: parent section %q not found; %q kept as a top-level section", f.source, f.parent, f.child),
		f.parent+"."+f.child, f.source)

	return m.union(acc, document.Entry{Key: f.child, Value: f.value}, f.source, diags)
}

func (m *Merger) duplicateChild(f fold, diags *diagnostic.Diagnostics) {
	path := f.parent + "." + f.child

	diags.AddWarning(diagnostic.CodeDuplicateSection,
		fmt.Sprintf("duplicate subsection %q in %s ignored; the first definition wins", path, f.source),
		path, f.source)
}

func (m *Merger) folded(f fold, diags *diagnostic.Diagnostics) {
	diags.AddInfo(diagnostic.CodeFoldedSubsection,
		fmt.Sprintf("%s: moved %q back under %q", f.source, f.child, f.parent), f.parent+"."+f.child, f.source)
}

// fillMissing adds absent catalog sections, then absent catalog
// subsections of present sections. Present keys are never replaced.
func (m *Merger) fillMissing(acc *document.Document, diags *diagnostic.Diagnostics) *document.Document {
	for _, key := range m.catalog.Keys() {
		if acc.Has(key) {
			continue
		}

		value, ok := m.schema.Defaults(key)
		if !ok {
			value = document.Mapping()
		}

		acc = acc.With(key, value)
		diags.AddWarning(diagnostic.CodeAddedSection,
			fmt.Sprintf("added missing section %q with default values", key), key, "")
	}

	for _, key := range m.catalog.Keys() {
		value, ok := acc.Get(key)
		if !ok || !(document.IsMapping(value) || document.IsNull(value)) {
			continue
		}

		updated := value

		for _, sub := range m.catalog.SubsectionKeys(key) {
			if _, present := document.Child(updated, sub); present {
				continue
			}

			def, ok := m.schema.SubsectionDefaults(key, sub)
			if !ok {
				continue
			}

			updated = document.WithChild(updated, sub, def)
			diags.AddWarning(diagnostic.CodeAddedSubsection,
				fmt.Sprintf("added missing subsection %q with default values", key+"."+sub), key+"."+sub, "")
		}

		if updated != value {
			acc = acc.With(key, updated)
		}
	}

	return acc
}

func (m *Merger) validate(acc *document.Document, diags *diagnostic.Diagnostics) error {
	v, err := m.schema.Validator()
	if err != nil {
		return err
	}

	decoded, err := acc.Decode()
	if err != nil {
		return err
	}

	for _, violation := range v.Validate(decoded) {
		section := strings.TrimPrefix(violation, "/")
		if i := strings.IndexAny(section, "/:"); i >= 0 {
			section = section[:i]
		}

		diags.AddWarning(diagnostic.CodeSchemaViolation, "schema: "+violation, section, "")
	}

	return nil
}
