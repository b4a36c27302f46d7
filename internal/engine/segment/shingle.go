package segment

import "strings"

// ShingleSize is the fixed n-gram width used for overlap comparison.
const ShingleSize = 6

// Shingles returns the deduplicated set of space-joined runs of n consecutive
// tokens. Token slices shorter than n yield an empty set.
func Shingles(tokens []string, n int) map[string]struct{} {
	set := make(map[string]struct{})
	if n <= 0 || len(tokens) < n {
		return set
	}
	for i := 0; i+n <= len(tokens); i++ {
		set[strings.Join(tokens[i:i+n], " ")] = struct{}{}
	}
	return set
}

// TokenSet returns the deduplicated set of tokens.
func TokenSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

// Jaccard computes intersection-over-union of two sets. An empty union
// yields 0.
func Jaccard(a, b map[string]struct{}) float64 {
	intersection := 0
	for k := range a {
		if _, ok := b[k]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
