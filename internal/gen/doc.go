// Package gen executes split plans and merges section files.
//
// Both directions render through the same section writer, so a section
// looks byte-identical whether it was produced by a split or a merge:
//   - a top-level banner with the section label
//   - the section body, with a nested banner before each known subsection
//     when the section holds more than one key
//
// Split hands back one OutputFile per produced file and never touches the
// file system; WriteFiles is a separate step for callers that want it.
// Merge unions parsed inputs (first definition wins), folds split-out
// subsection files back under their parent, optionally fills missing
// sections from schema defaults and renders a single document with a table
// of contents.
package gen
