// Package authorship implements the machine-authorship likelihood heuristic.
// It derives five normalised features from sentence-length statistics,
// lexical diversity, contraction density, and punctuation variety, then
// combines them into a weighted score and label. The scorer is fully
// deterministic; it is a heuristic, not a trained classifier.
package authorship

import (
	"math"
	"regexp"
	"strings"

	"github.com/textlens/textlens/internal/engine/segment"
)

// Labels assigned from the weighted score.
const (
	LabelAI    = "Likely AI"
	LabelHuman = "Likely Human"
	LabelMixed = "Mixed"
)

// Feature weights. They sum to 1.0 by construction.
const (
	weightLen          = 0.30
	weightBurstiness   = 0.25
	weightTTR          = 0.20
	weightContractions = 0.10
	weightPunctVar     = 0.15
)

// Details exposes the raw statistics behind the score.
type Details struct {
	AvgSentenceLen float64 `json:"avg_sentence_len"`
	StdSentenceLen float64 `json:"std_sentence_len"`
	TypeTokenRatio float64 `json:"type_token_ratio"`
	Contractions   float64 `json:"contractions_per_sentence"`
	PunctTypes     int     `json:"punct_types"`
}

// Result is the outcome of scoring a text.
type Result struct {
	Score   float64 `json:"score"`
	Label   string  `json:"label"`
	Details Details `json:"details"`
}

var contractionSuffix = regexp.MustCompile(`(?i)'(s|re|ve|ll|d|t)`)

// punctMarks are the punctuation characters counted for variety.
var punctMarks = []rune{',', ':', ';', '-', '—', '(', ')'}

// Score computes the machine-authorship likelihood for text. Empty input
// produces a degenerate zero result rather than an error; division by zero
// is guarded by falling back to 1 in every denominator.
func Score(text string) Result {
	sentences := segment.SplitSentences(text)
	tokens := segment.Tokenize(text)

	lengths := make([]float64, len(sentences))
	var total float64
	for i, s := range sentences {
		lengths[i] = float64(len(segment.Tokenize(s)))
		total += lengths[i]
	}

	avg := total / float64(orOne(len(sentences)))

	var variance float64
	for _, l := range lengths {
		variance += (l - avg) * (l - avg)
	}
	variance /= float64(orOne(len(lengths)))
	std := math.Sqrt(variance)

	distinct := len(segment.TokenSet(tokens))
	ttr := float64(distinct) / float64(orOne(len(tokens)))

	contractionCount := len(contractionSuffix.FindAllString(text, -1))
	contractions := float64(contractionCount) / float64(orOne(len(sentences)))

	punctTypes := 0
	for _, mark := range punctMarks {
		if strings.ContainsRune(text, mark) {
			punctTypes++
		}
	}

	lenFactor := clamp01((avg - 18) / 22)
	burstinessFactor := 1 - clamp01(std/12)
	ttrFactor := 1 - clamp01(ttr/0.7)
	contractionFactor := 1 - clamp01(contractions/3)
	punctVarFactor := 1 - clamp01(float64(punctTypes)/5)

	score := weightLen*lenFactor +
		weightBurstiness*burstinessFactor +
		weightTTR*ttrFactor +
		weightContractions*contractionFactor +
		weightPunctVar*punctVarFactor

	label := LabelMixed
	switch {
	case score >= 0.65:
		label = LabelAI
	case score <= 0.45:
		label = LabelHuman
	}

	return Result{
		Score: round3(score),
		Label: label,
		Details: Details{
			AvgSentenceLen: round3(avg),
			StdSentenceLen: round3(std),
			TypeTokenRatio: round3(ttr),
			Contractions:   round3(contractions),
			PunctTypes:     punctTypes,
		},
	}
}

func orOne(n int) int {
	if n == 0 {
		return 1
	}
	return n
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
