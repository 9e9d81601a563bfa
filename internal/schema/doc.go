// Package schema describes the default-bearing shape of each configuration
// section and synthesizes default value trees from it.
//
// Schemas are loaded from a small YAML dialect of JSON Schema: every node has
// a type (a single name, or a list where "null" marks the field nullable), an
// optional default, ordered properties for objects and items for arrays.
// Loaded nodes are a closed set of variants (*Scalar, *Object, *Array), so
// default synthesis branches exhaustively on the variant.
//
// The builtin registry covers every section of the builtin catalog. It can be
// exported as JSON Schema for editor integration and used to validate merged
// documents.
package schema
