package common

import "slices"

// UnknownStr is returned by String methods for out-of-range enum values.
const UnknownStr = "unknown"

// IsMultiple reports whether the slice has more than one element.
func IsMultiple[S ~[]E, E any](s S) bool {
	return len(s) > 1
}

// AppendUnique appends v unless the slice already holds it.
func AppendUnique[S ~[]E, E comparable](s S, v E) S {
	if slices.Contains(s, v) {
		return s
	}

	return append(s, v)
}
