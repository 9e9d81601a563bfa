// Package document provides ConfigDocument: one parsed YAML configuration
// file as an ordered mapping from top-level section key to value node.
//
// Documents are persistent values. Parse produces clean node trees (comments,
// anchors and flow styles dropped, aliases resolved) and no function in this
// package mutates a node after that; every transformation returns a new
// Document or a new node that shares untouched children with its input.
//
// Encoding uses gopkg.in/yaml.v3 with a two-space indent.
package document
