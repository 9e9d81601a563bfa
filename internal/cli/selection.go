package cli

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"

	"config-splitter/internal/analyze"
	"config-splitter/internal/plan"
)

// selectionFlags are the split command's section selection flags.
type selectionFlags struct {
	include    []string
	split      []string
	remaining  string
	customFile string
	mergeInto  string
}

// empty reports whether no selection flag was given, in which case the
// configured policy applies to every section.
func (f selectionFlags) empty() bool {
	return len(f.include) == 0 && len(f.split) == 0 &&
		f.remaining == "" && f.customFile == "" && f.mergeInto == ""
}

// buildSelection turns glob patterns into a selection against ix.
//
// Include patterns match top-level keys. Split patterns have the form
// "section.child"; the section part is matched against top-level keys and
// selects them too, the child part against their children. A child part
// without wildcards is passed through as is, so a top-level key can be
// moved under another section ("general.athlete").
func buildSelection(ix *analyze.Index, f selectionFlags) (*plan.Selection, error) {
	sel := &plan.Selection{Sections: make(map[string]plan.SectionSelection)}

	for _, pattern := range f.include {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid include pattern %q: %w", pattern, err)
		}

		matched := false

		for _, key := range ix.Keys() {
			if g.Match(key) {
				include(sel, key)
				matched = true
			}
		}

		if !matched && !hasMeta(pattern) {
			include(sel, pattern)
		}
	}

	for _, pattern := range f.split {
		section, child, ok := strings.Cut(pattern, ".")
		if !ok || section == "" || child == "" {
			return nil, fmt.Errorf("invalid split pattern %q: want section.child", pattern)
		}

		sg, err := glob.Compile(section)
		if err != nil {
			return nil, fmt.Errorf("invalid split pattern %q: %w", pattern, err)
		}

		cg, err := glob.Compile(child, '.')
		if err != nil {
			return nil, fmt.Errorf("invalid split pattern %q: %w", pattern, err)
		}

		for _, key := range ix.Keys() {
			if !sg.Match(key) {
				continue
			}

			if !hasMeta(child) {
				splitChild(sel, key, child)
				continue
			}

			for _, c := range ix.Children(key) {
				if cg.Match(c) {
					splitChild(sel, key, c)
				}
			}
		}
	}

	rc, err := remainingConfig(f)
	if err != nil {
		return nil, err
	}

	sel.Remaining = rc

	return sel, nil
}

func remainingConfig(f selectionFlags) (*plan.RemainingConfig, error) {
	dest := plan.DestinationOriginal

	switch {
	case f.remaining != "":
		d, err := plan.ParseDestination(f.remaining)
		if err != nil {
			return nil, err
		}

		dest = d
	case f.customFile != "":
		dest = plan.DestinationCustom
	case f.mergeInto != "":
		dest = plan.DestinationMerge
	}

	return &plan.RemainingConfig{
		Destination:    dest,
		CustomFileName: f.customFile,
		MergeIntoFile:  f.mergeInto,
	}, nil
}

func include(sel *plan.Selection, key string) {
	ss := sel.Sections[key]
	ss.Include = true
	sel.Sections[key] = ss
}

func splitChild(sel *plan.Selection, key, child string) {
	ss := sel.Sections[key]
	ss.Include = true

	if ss.SecondLevel == nil {
		ss.SecondLevel = make(map[string]plan.SubsectionSelection)
	}

	ss.SecondLevel[child] = plan.SubsectionSelection{Split: true}
	sel.Sections[key] = ss
}

func hasMeta(pattern string) bool {
	return strings.ContainsAny(pattern, `*?[]{}\`)
}
