// Package match provides key tokenization and fuzzy name matching used to
// humanize configuration keys and to suggest catalog sections for keys that
// are not recognized.
//
// Key functions:
//   - Tokenize: splits camelCase, snake_case and kebab-case keys into words
//   - NormalizeKey: folds a key to a separator-free lowercase form
//   - Distance / Similarity: Levenshtein edit distance and its 0..1 score
//   - Closest: ranks candidate keys by similarity to an unknown key
package match
