// Package plan decides how a configuration document is split.
//
// Planning pipeline:
//  1. Analyze the raw text → structural index
//  2. Without a selection, apply the auto-split policy:
//     - every top-level section is included
//     - keep-first: the first child stays inline, the others are split out
//     - sections with zero or one child are never split
//  3. With a selection, include the selected sections and split the
//     selected children; a selected child that is really a top-level key
//     is adopted under its parent
//  4. Route the unselected sections to the remaining destination
//  5. Emit diagnostics for selection entries the index does not know
package plan
