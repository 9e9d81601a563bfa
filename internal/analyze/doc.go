// Package analyze builds a structural index of a configuration document
// from its raw text.
//
// The index lists, per top-level key, the distinct keys found directly
// beneath it. It is produced by a line scanner rather than a YAML parser:
// the first indented key under a section locks the indentation width, keys
// at that width are children, deeper keys are ignored and shallower lines
// close the section. Flow mappings, block scalars and list items are not
// understood and may be misread, so the index only drives split planning and
// is never used to read values.
//
// Key types:
//   - Index: ordered top-level keys and their ordered children
package analyze
