// Package catalog holds the SectionCatalog: the fixed, ordered list of known
// top-level configuration sections, their display labels and their known
// subsections.
//
// The catalog is the single source of ordering and labels for the splitter,
// the merger and the header generator, so a section renders with the same
// banner whichever direction produced it. The builtin catalog is immutable
// and safe for concurrent use.
package catalog
