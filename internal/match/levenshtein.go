package match

import "sort"

// DefaultMinSimilarity is the score below which Closest drops a candidate.
const DefaultMinSimilarity = 0.6

// Distance computes the Levenshtein distance (edit distance) between two strings:
// the minimum number of single-byte insertions, deletions or substitutions
// required to turn a into b.
func Distance(a, b string) int {
	if a == b {
		return 0
	}

	if len(a) == 0 {
		return len(b)
	}

	if len(b) == 0 {
		return len(a)
	}

	// keep the rows as short as possible
	if len(a) > len(b) {
		a, b = b, a
	}

	prev := make([]int, len(a)+1)
	curr := make([]int, len(a)+1)

	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(b); j++ {
		curr[0] = j

		for i := 1; i <= len(a); i++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}

			curr[i] = min(prev[i]+1, curr[i-1]+1, prev[i-1]+cost)
		}

		prev, curr = curr, prev
	}

	return prev[len(a)]
}

// Similarity returns 1 - distance/maxLen over the normalized forms of a and b.
// 1.0 means identical keys, 0.0 means nothing in common.
func Similarity(a, b string) float64 {
	na, nb := NormalizeKey(a), NormalizeKey(b)
	if len(na) == 0 && len(nb) == 0 {
		return 1.0
	}

	return 1.0 - float64(Distance(na, nb))/float64(max(len(na), len(nb)))
}

// Closest returns the candidates whose similarity to key is at least minScore,
// best first. Ties keep the candidates' original order.
func Closest(key string, candidates []string, minScore float64) []string {
	type scored struct {
		name  string
		score float64
	}

	var ranked []scored

	for _, c := range candidates {
		if s := Similarity(key, c); s >= minScore {
			ranked = append(ranked, scored{name: c, score: s})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	out := make([]string, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, r.name)
	}

	return out
}
