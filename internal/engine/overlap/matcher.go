// Package overlap estimates textual overlap between an input and a small
// fixed reference corpus, plus repetition between the input's own sentences.
// Comparison is set-based: 6-token shingles against the corpus, token sets
// between sentence pairs, both via Jaccard similarity.
package overlap

import (
	"math"

	"github.com/textlens/textlens/internal/engine/segment"
)

// Match sources.
const (
	SourceCorpus = "Local Corpus"
	SourceSelf   = "Self repetition"
)

const (
	sampleLimit   = 120
	selfThreshold = 0.7
	minSelfTokens = 6
)

// Match records a single overlap hit.
type Match struct {
	Source     string  `json:"source"`
	Sample     string  `json:"sample"`
	Similarity float64 `json:"similarity"`
}

// Result is the outcome of an overlap check. Uniqueness is omitted when the
// input is too short to form any shingle.
type Result struct {
	PercentOverlap float64  `json:"percent_overlap"`
	Uniqueness     *float64 `json:"uniqueness,omitempty"`
	Matches        []Match  `json:"matches"`
}

// Check computes the overlap estimate for text. Inputs shorter than six
// tokens short-circuit to zero overlap with no matches.
func Check(text string) Result {
	tokens := segment.Tokenize(text)
	shingles := segment.Shingles(tokens, segment.ShingleSize)
	if len(shingles) == 0 {
		return Result{PercentOverlap: 0, Matches: []Match{}}
	}

	matches := make([]Match, 0)
	for _, entry := range referenceCorpus {
		entryShingles := segment.Shingles(segment.Tokenize(entry), segment.ShingleSize)
		jac := segment.Jaccard(shingles, entryShingles)
		if jac > 0 {
			matches = append(matches, Match{
				Source:     SourceCorpus,
				Sample:     truncate(entry),
				Similarity: round1(jac * 100),
			})
		}
	}

	sentences := segment.SplitSentences(text)
	for i := 0; i < len(sentences); i++ {
		a := segment.Tokenize(sentences[i])
		if len(a) <= minSelfTokens {
			continue
		}
		setA := segment.TokenSet(a)
		for j := i + 1; j < len(sentences); j++ {
			b := segment.Tokenize(sentences[j])
			if len(b) <= minSelfTokens {
				continue
			}
			jac := segment.Jaccard(setA, segment.TokenSet(b))
			if jac > selfThreshold {
				matches = append(matches, Match{
					Source:     SourceSelf,
					Sample:     `"` + truncate(sentences[j]) + `"`,
					Similarity: round1(jac * 100),
				})
			}
		}
	}

	// Each match contributes at most 25 points, capped at 100 overall.
	var percent float64
	for _, m := range matches {
		percent += math.Min(25, m.Similarity/4)
	}
	percent = round1(math.Min(100, percent))
	uniqueness := round1(math.Max(0, 100-percent))

	return Result{
		PercentOverlap: percent,
		Uniqueness:     &uniqueness,
		Matches:        matches,
	}
}

func truncate(s string) string {
	runes := []rune(s)
	if len(runes) > sampleLimit {
		runes = runes[:sampleLimit]
	}
	return string(runes) + "..."
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
