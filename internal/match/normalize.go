package match

import (
	"strings"
	"unicode"
)

// NormalizeKey folds a configuration key for fuzzy matching: the key is
// tokenized, lowercased and joined without separators.
//
//	"heartRateZones" -> "heartratezones"
//	"heart_rate-zones" -> "heartratezones"
func NormalizeKey(s string) string {
	return strings.ToLower(strings.Join(Tokenize(s), ""))
}

// Tokenize splits a key into words on separators and camelCase boundaries.
// Examples:
//   - "appUrl" -> ["app", "Url"]
//   - "consistencyChallenges" -> ["consistency", "Challenges"]
//   - "AIProvider" -> ["AI", "Provider"]
//   - "sport_types-to import" -> ["sport", "types", "to", "import"]
func Tokenize(s string) []string {
	if s == "" {
		return nil
	}

	var (
		tokens  []string
		current strings.Builder
	)

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		if isSeparator(r) {
			flush()
			continue
		}

		if i > 0 && startsToken(runes, i) {
			flush()
		}

		current.WriteRune(r)
	}

	flush()

	return tokens
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' ' || r == '.'
}

// startsToken reports whether a new word begins at position i.
func startsToken(runes []rune, i int) bool {
	r, prev := runes[i], runes[i-1]
	if isSeparator(prev) || !unicode.IsUpper(r) {
		return false
	}

	// "appUrl": lower to upper
	if !unicode.IsUpper(prev) {
		return true
	}

	// "AIProvider": end of an acronym
	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}
