// Package rewrite implements the paraphrasing engine. A sentence passes
// through a pipeline of independent probabilistic steps: clause reordering,
// synonym substitution, tone shaping, and length shaping. Each step draws
// from an injectable random source so callers can seed or mock it.
package rewrite

import (
	"math/rand"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/textlens/textlens/internal/engine/lexicon"
	"github.com/textlens/textlens/internal/engine/segment"
)

// Tone selects the tone-shaping behaviour.
type Tone string

const (
	ToneNatural Tone = "natural"
	ToneFormal  Tone = "formal"
	ToneCasual  Tone = "casual"
)

// Length selects the length-shaping behaviour.
type Length string

const (
	LengthShorter Length = "shorter"
	LengthMedium  Length = "medium"
	LengthLonger  Length = "longer"
)

// Options controls a single rewrite invocation.
type Options struct {
	Tone   Tone
	Length Length
}

const (
	commaSwapProb  = 0.25
	synonymProb    = 0.35
	casualProb     = 0.3
	longerProb     = 0.4
	minRewriteLen  = 6
	longerSuffix   = " In practice, this tends to work well."
	casualPrefix   = "Honestly, "
	minSuffixChars = 12
)

var (
	wordOrSpace = regexp.MustCompile(`\S+|\s+`)
	wordCore    = regexp.MustCompile(`[A-Za-z'\-]+`)
	digits      = regexp.MustCompile(`[0-9]`)
)

// contractions is the fixed expansion table applied for the formal tone.
// Matching is case-insensitive, replacement literal.
var contractions = []struct {
	pattern *regexp.Regexp
	expand  string
}{
	{regexp.MustCompile(`(?i)can't`), "cannot"},
	{regexp.MustCompile(`(?i)won't`), "will not"},
	{regexp.MustCompile(`(?i)don't`), "do not"},
	{regexp.MustCompile(`(?i)isn't`), "is not"},
	{regexp.MustCompile(`(?i)aren't`), "are not"},
	{regexp.MustCompile(`(?i)I'm`), "I am"},
	{regexp.MustCompile(`(?i)you're`), "you are"},
	{regexp.MustCompile(`(?i)we're`), "we are"},
	{regexp.MustCompile(`(?i)they're`), "they are"},
	{regexp.MustCompile(`(?i)it's`), "it is"},
}

// Rewrite paraphrases text sentence by sentence and joins the results with
// single spaces. Sentences with fewer than six whitespace-delimited words
// pass through untouched, including the tone and length steps. A nil rng
// falls back to a time-seeded source.
func Rewrite(text string, opts Options, rng *rand.Rand) string {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Tone == "" {
		opts.Tone = ToneNatural
	}
	if opts.Length == "" {
		opts.Length = LengthMedium
	}

	sentences := segment.SplitSentences(text)
	out := make([]string, 0, len(sentences))
	for _, sentence := range sentences {
		if len(strings.Fields(sentence)) < minRewriteLen {
			out = append(out, sentence)
			continue
		}
		s := maybeSwapClauses(sentence, rng)
		s = substituteSynonyms(s, rng)
		s = applyTone(s, opts.Tone, rng)
		s = applyLength(s, opts.Length, rng)
		out = append(out, s)
	}
	return strings.Join(out, " ")
}

// maybeSwapClauses reorders "A, B" into "B, A" with probability 0.25 when the
// sentence contains exactly one comma.
func maybeSwapClauses(sentence string, rng *rand.Rand) string {
	parts := strings.Split(sentence, ",")
	if len(parts) != 2 {
		return sentence
	}
	if rng.Float64() >= commaSwapProb {
		return sentence
	}
	return strings.TrimSpace(parts[1]) + ", " + strings.TrimSpace(parts[0])
}

// substituteSynonyms walks the sentence word by word, preserving the original
// whitespace, and swaps eligible words for a random synonym with probability
// 0.35. Stopwords and words containing digits are never altered.
func substituteSynonyms(sentence string, rng *rand.Rand) string {
	var b strings.Builder
	for _, token := range wordOrSpace.FindAllString(sentence, -1) {
		if strings.TrimSpace(token) == "" {
			b.WriteString(token)
			continue
		}
		b.WriteString(substituteWord(token, rng))
	}
	return b.String()
}

func substituteWord(word string, rng *rand.Rand) string {
	if digits.MatchString(word) {
		return word
	}
	core := wordCore.FindString(word)
	if core == "" {
		return word
	}
	key := strings.ToLower(core)
	if lexicon.IsStopword(key) {
		return word
	}
	candidates, ok := lexicon.Synonyms(key)
	if !ok || len(candidates) == 0 {
		return word
	}
	if rng.Float64() >= synonymProb {
		return word
	}
	replacement := candidates[rng.Intn(len(candidates))]
	if first := []rune(core)[0]; unicode.IsUpper(first) {
		replacement = capitalize(replacement)
	}
	return strings.Replace(word, core, replacement, 1)
}

func applyTone(sentence string, tone Tone, rng *rand.Rand) string {
	switch tone {
	case ToneFormal:
		for _, c := range contractions {
			sentence = c.pattern.ReplaceAllString(sentence, c.expand)
		}
	case ToneCasual:
		if rng.Float64() < casualProb && sentence != "" {
			sentence = casualPrefix + lowerFirst(sentence)
		}
	}
	return sentence
}

// applyLength shapes the rewritten sentence. "shorter" drops 1-3 character
// words outright and makes no attempt to keep the result grammatical.
func applyLength(sentence string, length Length, rng *rand.Rand) string {
	switch length {
	case LengthShorter:
		kept := make([]string, 0)
		for _, w := range strings.Fields(sentence) {
			if len([]rune(w)) > 3 {
				kept = append(kept, w)
			}
		}
		return strings.Join(kept, " ")
	case LengthLonger:
		if len(sentence) > minSuffixChars && rng.Float64() < longerProb {
			return sentence + longerSuffix
		}
	}
	return sentence
}

func capitalize(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func lowerFirst(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}
