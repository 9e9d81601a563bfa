// Package header renders the generated comment banners and the table of
// contents that frame sections in split and merged configuration files.
//
// Output depends only on the catalog and on which sections and subsections
// are present, so the same document shape always yields byte-identical text.
package header

import (
	"slices"
	"strings"

	"config-splitter/internal/catalog"
)

// Width is the total width of a divider line, including the leading '#'.
const Width = 80

var (
	majorRule = "#" + strings.Repeat("=", Width-1)
	minorRule = "#" + strings.Repeat("-", Width-1)
)

const tocTitle = "Configuration"

// Outline records one present top-level section and the keys directly under it.
type Outline struct {
	Key      string
	Children []string
}

// Banner renders a section header: divider, "# <label>", divider. Nested
// headers use the lighter divider. The result ends with a newline.
func Banner(label string, nested bool) string {
	rule := majorRule
	if nested {
		rule = minorRule
	}

	return rule + "\n# " + label + "\n" + rule + "\n"
}

// Generator renders headers with labels taken from a catalog.
type Generator struct {
	catalog *catalog.Catalog
}

// New creates a Generator for the given catalog.
func New(c *catalog.Catalog) *Generator {
	return &Generator{catalog: c}
}

// SectionHeader renders the top-level banner of a section.
func (g *Generator) SectionHeader(key string) string {
	return Banner(g.catalog.Label(key), false)
}

// SubsectionHeader renders the nested banner of parent.child.
func (g *Generator) SubsectionHeader(parent, child string) string {
	return Banner(g.catalog.SubsectionLabel(parent, child), true)
}

// TableOfContents renders the table of contents for the present sections.
// Sections are listed in catalog order (unknown ones last); under each, the
// catalog subsections present in the document are listed in catalog order.
func (g *Generator) TableOfContents(present []Outline) string {
	children := make(map[string][]string, len(present))
	keys := make([]string, 0, len(present))

	for _, o := range present {
		if _, seen := children[o.Key]; seen {
			continue
		}

		keys = append(keys, o.Key)
		children[o.Key] = o.Children
	}

	var b strings.Builder

	b.WriteString(majorRule + "\n")
	b.WriteString("# " + tocTitle + "\n")
	b.WriteString(majorRule + "\n")
	b.WriteString("# Table of contents:\n")
	b.WriteString("#\n")

	for _, key := range g.catalog.Order(keys) {
		b.WriteString("# - " + g.catalog.Label(key) + "\n")

		for _, sub := range g.catalog.SubsectionKeys(key) {
			if slices.Contains(children[key], sub) {
				b.WriteString("#   - " + g.catalog.SubsectionLabel(key, sub) + "\n")
			}
		}
	}

	b.WriteString("#\n")

	return b.String()
}
