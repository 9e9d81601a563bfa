package gen

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"config-splitter/internal/catalog"
	"config-splitter/internal/document"
	"config-splitter/internal/header"
)

const nestedIndent = "  "

// sectionWriter renders sections with their banners.
type sectionWriter struct {
	catalog *catalog.Catalog
	headers *header.Generator
}

func newSectionWriter(c *catalog.Catalog) *sectionWriter {
	return &sectionWriter{catalog: c, headers: header.New(c)}
}

// section renders one top-level section. A mapping with more than one key
// gets a nested banner before each known subsection.
func (w *sectionWriter) section(key string, value *yaml.Node) (string, error) {
	var b strings.Builder

	b.WriteString(w.headers.SectionHeader(key))

	pairs := document.Pairs(value)
	if len(pairs) < 2 || !w.hasSubsection(key, pairs) {
		body, err := document.EncodeEntry(key, value)
		if err != nil {
			return "", fmt.Errorf("section %q: %w", key, err)
		}

		b.WriteString(body)

		return b.String(), nil
	}

	b.WriteString(key + ":\n")

	for i, p := range pairs {
		if w.catalog.IsSubsection(key, p.Key) {
			if i > 0 {
				b.WriteString("\n")
			}

			b.WriteString(document.Indent(w.headers.SubsectionHeader(key, p.Key), nestedIndent))
		}

		body, err := document.EncodeEntry(p.Key, p.Value)
		if err != nil {
			return "", fmt.Errorf("section %q: %w", key+"."+p.Key, err)
		}

		b.WriteString(document.Indent(body, nestedIndent))
	}

	return b.String(), nil
}

// child renders a split-out child as a top-level block of its own file,
// labelled as a subsection of parent.
func (w *sectionWriter) child(parent, key string, value *yaml.Node) (string, error) {
	body, err := document.EncodeEntry(key, value)
	if err != nil {
		return "", fmt.Errorf("section %q: %w", parent+"."+key, err)
	}

	return header.Banner(w.catalog.SubsectionLabel(parent, key), false) + body, nil
}

func (w *sectionWriter) hasSubsection(key string, pairs []document.Entry) bool {
	for _, p := range pairs {
		if w.catalog.IsSubsection(key, p.Key) {
			return true
		}
	}

	return false
}

// sections renders entries in the given order, separated by blank lines.
func (w *sectionWriter) sections(entries []document.Entry) (string, error) {
	blocks := make([]string, 0, len(entries))

	for _, e := range entries {
		block, err := w.section(e.Key, e.Value)
		if err != nil {
			return "", err
		}

		blocks = append(blocks, block)
	}

	return strings.Join(blocks, "\n"), nil
}

// outline lists the present sections and their keys for the table of
// contents.
func outline(doc *document.Document) []header.Outline {
	out := make([]header.Outline, 0, doc.Len())
	for _, e := range doc.Entries() {
		out = append(out, header.Outline{Key: e.Key, Children: document.ChildKeys(e.Value)})
	}

	return out
}

// finish trims trailing whitespace and ends the text with one newline.
func finish(text string) string {
	return strings.TrimRight(text, " \t\r\n") + "\n"
}
