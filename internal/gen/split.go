package gen

import (
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"config-splitter/internal/catalog"
	"config-splitter/internal/diagnostic"
	"config-splitter/internal/document"
	"config-splitter/internal/plan"
)

// OutputFile is one file produced by a split.
type OutputFile struct {
	FileName string   `json:"fileName"`
	Content  string   `json:"content"`
	Sections []string `json:"sections"`
}

// SplitOptions configures a Splitter.
type SplitOptions struct {
	Naming Naming
	// SourceName is the file name of the split document. When remaining
	// sections stay in the original and a produced file has this name, they
	// are appended to it so rewriting the source does not drop them.
	SourceName string
}

// DefaultSplitOptions returns options with the default naming.
func DefaultSplitOptions() SplitOptions {
	return SplitOptions{Naming: DefaultNaming()}
}

// SplitResult is the outcome of a split.
type SplitResult struct {
	Files []OutputFile
	// KeptInOriginal lists sections left in the source document.
	KeptInOriginal []string
	Diagnostics    diagnostic.Diagnostics
}

// Splitter executes split plans.
type Splitter struct {
	writer  *sectionWriter
	options SplitOptions
}

// NewSplitter creates a Splitter rendering headers from c.
func NewSplitter(c *catalog.Catalog, options SplitOptions) *Splitter {
	return &Splitter{writer: newSectionWriter(c), options: options}
}

// pending is an output file being assembled.
type pending struct {
	name    string
	blocks  []string
	entries []string
}

// Split renders the files described by p. Every top-level key of doc ends
// up in exactly one file's Sections or in KeptInOriginal.
func (s *Splitter) Split(doc *document.Document, p *plan.Plan) (*SplitResult, error) {
	result := &SplitResult{}

	var files []*pending

	consumed := make(map[string]bool)

	add := func(name string) (*pending, error) {
		if slices.ContainsFunc(files, func(f *pending) bool { return f.name == name }) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateFile, name)
		}

		f := &pending{name: name}
		files = append(files, f)

		return f, nil
	}

	for _, sp := range p.Sections {
		if !sp.Included {
			continue
		}

		value, ok := doc.Get(sp.Key)
		if !ok {
			result.Diagnostics.AddWarning(diagnostic.CodeMissingSection,
				fmt.Sprintf("section %q not found in parsed document", sp.Key), sp.Key, "")

			continue
		}

		consumed[sp.Key] = true

		if err := s.splitSection(doc, sp, value, add, consumed, &result.Diagnostics); err != nil {
			return nil, err
		}
	}

	if len(files) == 0 {
		return nil, ErrNoSections
	}

	var remaining []string

	for _, key := range doc.Keys() {
		if !consumed[key] {
			remaining = append(remaining, key)
		}
	}

	if err := s.route(doc, p.Remaining, remaining, files, add, result); err != nil {
		return nil, err
	}

	for _, f := range files {
		result.Files = append(result.Files, OutputFile{
			FileName: f.name,
			Content:  finish(strings.Join(f.blocks, "\n")),
			Sections: f.entries,
		})
	}

	return result, nil
}

func (s *Splitter) splitSection(
	doc *document.Document,
	sp plan.SectionPlan,
	value *yaml.Node,
	add func(string) (*pending, error),
	consumed map[string]bool,
	diags *diagnostic.Diagnostics,
) error {
	naming := s.options.Naming

	splitOut := make(map[string]bool)

	for _, sub := range sp.Subsections {
		if sub.SplitOut && !sub.Adopted {
			splitOut[sub.Key] = true
		}
	}

	var taken []document.Entry

	if document.IsMapping(value) {
		var kept []document.Entry

		kept, taken = document.Partition(value, func(key string) bool { return splitOut[key] })
		value = document.Mapping(kept...)
	}

	for _, key := range sp.SplitOut() {
		if splitOut[key] && !slices.ContainsFunc(taken, func(e document.Entry) bool { return e.Key == key }) {
			path := sp.Key + "." + key
			diags.AddInfo(diagnostic.CodeMissingSubsection,
				fmt.Sprintf("subsection %q not found in parsed section; nothing to split", path), path, "")
		}
	}

	parent, err := add(naming.SectionFile(sp.Key))
	if err != nil {
		return err
	}

	if err := s.appendSection(parent, sp.Key, value); err != nil {
		return err
	}

	for _, e := range taken {
		if err := s.addChild(add, sp.Key, e.Key, e.Value); err != nil {
			return err
		}
	}

	for _, key := range sp.Adopted() {
		v, ok := doc.Get(key)
		if !ok {
			diags.AddInfo(diagnostic.CodeMissingSubsection,
				fmt.Sprintf("section %q not found in parsed document; nothing to split", key), sp.Key+"."+key, "")

			continue
		}

		consumed[key] = true

		if err := s.addChild(add, sp.Key, key, v); err != nil {
			return err
		}
	}

	return nil
}

func (s *Splitter) addChild(add func(string) (*pending, error), parent, key string, value *yaml.Node) error {
	f, err := add(s.options.Naming.SubsectionFile(parent, key))
	if err != nil {
		return err
	}

	block, err := s.writer.child(parent, key, value)
	if err != nil {
		return err
	}

	f.blocks = append(f.blocks, block)
	f.entries = append(f.entries, key)

	return nil
}

func (s *Splitter) appendSection(f *pending, key string, value *yaml.Node) error {
	block, err := s.writer.section(key, value)
	if err != nil {
		return err
	}

	f.blocks = append(f.blocks, block)
	f.entries = append(f.entries, key)

	return nil
}

// route sends the sections no included section consumed to their
// destination.
func (s *Splitter) route(
	doc *document.Document,
	rc plan.RemainingConfig,
	remaining []string,
	files []*pending,
	add func(string) (*pending, error),
	result *SplitResult,
) error {
	if len(remaining) == 0 {
		return nil
	}

	find := func(name string) *pending {
		i := slices.IndexFunc(files, func(f *pending) bool { return f.name == name })
		if i < 0 {
			return nil
		}

		return files[i]
	}

	var target *pending

	switch rc.Destination {
	case plan.DestinationCustom:
		if rc.CustomFileName == "" {
			return fmt.Errorf("%w: a file name is required for remaining sections", ErrCustomFile)
		}

		if find(rc.CustomFileName) != nil {
			return fmt.Errorf("%w: %s is already produced by the split", ErrCustomFile, rc.CustomFileName)
		}

		f, err := add(rc.CustomFileName)
		if err != nil {
			return err
		}

		target = f

	case plan.DestinationMerge:
		target = find(rc.MergeIntoFile)
		if target == nil {
			return fmt.Errorf("%w: %q is not produced by the split", ErrMergeTarget, rc.MergeIntoFile)
		}

	default:
		if s.options.SourceName != "" {
			target = find(s.options.SourceName)
		}

		if target == nil {
			result.KeptInOriginal = remaining
			return nil
		}
	}

	for _, key := range remaining {
		value, _ := doc.Get(key)
		if err := s.appendSection(target, key, value); err != nil {
			return err
		}
	}

	return nil
}
