package plan

import (
	"errors"
	"fmt"
	"slices"
	"sort"

	"config-splitter/internal/analyze"
	"config-splitter/internal/common"
	"config-splitter/internal/diagnostic"
)

// ErrNoSections is returned when a plan would include no section at all.
var ErrNoSections = errors.New("no sections selected for split")

// Build produces a split plan for the indexed document. A nil selection
// applies policy to every section.
func Build(ix *analyze.Index, sel *Selection, policy Policy) (*Plan, error) {
	var p *Plan
	if sel == nil {
		p = autoPlan(ix, policy)
	} else {
		p = selectedPlan(ix, sel)
	}

	if len(p.Included()) == 0 {
		return nil, ErrNoSections
	}

	return p, nil
}

func autoPlan(ix *analyze.Index, policy Policy) *Plan {
	p := &Plan{Remaining: RemainingConfig{Destination: DestinationOriginal}}

	for _, key := range ix.Keys() {
		children := ix.Children(key)
		sp := SectionPlan{Key: key, Included: true}

		for i, child := range children {
			split := policy == PolicyKeepFirst && common.IsMultiple(children) && i > 0
			sp.Subsections = append(sp.Subsections, SubsectionPlan{Key: child, SplitOut: split})
		}

		p.Sections = append(p.Sections, sp)
	}

	return p
}

func selectedPlan(ix *analyze.Index, sel *Selection) *Plan {
	p := &Plan{Remaining: RemainingConfig{Destination: DestinationOriginal}}
	if sel.Remaining != nil {
		p.Remaining = *sel.Remaining
	}

	adopted := adoptions(ix, sel, &p.Diagnostics)

	for _, key := range ix.Keys() {
		if _, ok := adopted[key]; ok {
			continue
		}

		ss, selected := sel.Sections[key]
		sp := SectionPlan{Key: key, Included: selected && ss.Include}

		for _, child := range ix.Children(key) {
			sp.Subsections = append(sp.Subsections, SubsectionPlan{
				Key:      child,
				SplitOut: sp.Included && ss.SecondLevel[child].Split,
			})
		}

		for _, child := range ix.Keys() {
			if adopted[child] == key {
				sp.Subsections = append(sp.Subsections, SubsectionPlan{Key: child, SplitOut: true, Adopted: true})
			}
		}

		p.Sections = append(p.Sections, sp)
	}

	for _, key := range sortedKeys(sel.Sections) {
		if !ix.Has(key) {
			p.Diagnostics.AddWarning(diagnostic.CodeUnknownSelection,
				fmt.Sprintf("selected section %q is not in the document", key), key, "")
		}
	}

	return p
}

// adoptions maps top-level keys selected as split children of another
// section to that section. Parents are visited in document order; a key
// is adopted at most once, and a key that adopts others or was already
// adopted cannot be adopted or adopt in turn.
func adoptions(ix *analyze.Index, sel *Selection, diags *diagnostic.Diagnostics) map[string]string {
	adopted := make(map[string]string)
	parents := make(map[string]bool)

	for _, parent := range ix.Keys() {
		ss, ok := sel.Sections[parent]
		if !ok {
			continue
		}

		for _, child := range sortedKeys(ss.SecondLevel) {
			if ix.HasChild(parent, child) {
				continue
			}

			path := parent + "." + child

			switch {
			case !ix.Has(child) || child == parent:
				diags.AddWarning(diagnostic.CodeUnknownSelection,
					fmt.Sprintf("selected subsection %q is not in the document", path), path, "")
			case !ss.Include || !ss.SecondLevel[child].Split:
				// Not split out, so the key stays a top-level section.
			case adopted[parent] != "" || parents[child] || adopted[child] != "":
				diags.AddWarning(diagnostic.CodeUnknownSelection,
					fmt.Sprintf("section %q cannot be moved under %q", child, parent), path, "")
			default:
				adopted[child] = parent
				parents[parent] = true
			}
		}
	}

	return adopted
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

// Section returns the plan of a top-level section.
func (p *Plan) Section(key string) (SectionPlan, bool) {
	i := slices.IndexFunc(p.Sections, func(s SectionPlan) bool { return s.Key == key })
	if i < 0 {
		return SectionPlan{}, false
	}

	return p.Sections[i], true
}

// Included returns the keys of included sections in document order.
func (p *Plan) Included() []string {
	var keys []string

	for _, s := range p.Sections {
		if s.Included {
			keys = append(keys, s.Key)
		}
	}

	return keys
}

// RemainingSections returns the keys of sections that are not included.
func (p *Plan) RemainingSections() []string {
	var keys []string

	for _, s := range p.Sections {
		if !s.Included {
			keys = append(keys, s.Key)
		}
	}

	return keys
}

// FilesCount is the number of included sections plus the number of
// children split out of them.
func (p *Plan) FilesCount() int {
	n := 0

	for _, s := range p.Sections {
		if !s.Included {
			continue
		}

		n += 1 + len(s.SplitOut())
	}

	return n
}

// SplitOut returns the keys of children written to their own files.
func (s SectionPlan) SplitOut() []string {
	var keys []string

	for _, sub := range s.Subsections {
		if sub.SplitOut {
			keys = append(keys, sub.Key)
		}
	}

	return keys
}

// Adopted returns the top-level keys moved under this section.
func (s SectionPlan) Adopted() []string {
	var keys []string

	for _, sub := range s.Subsections {
		if sub.Adopted {
			keys = append(keys, sub.Key)
		}
	}

	return keys
}
