// Package diagnostic provides structured errors, warnings and informational
// notices collected while splitting and merging configuration documents.
//
// Findings never abort an operation on their own; callers decide which
// severities are fatal. Typical findings:
//   - Duplicate sections across merge inputs (first one wins)
//   - Sections or subsections back-filled from schema defaults
//   - Unknown sections, with the closest catalog section as a suggestion
//   - Inputs that could not be parsed
package diagnostic
