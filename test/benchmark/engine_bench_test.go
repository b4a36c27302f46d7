package benchmark

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/textlens/textlens/internal/engine/authorship"
	"github.com/textlens/textlens/internal/engine/overlap"
	"github.com/textlens/textlens/internal/engine/rewrite"
	"github.com/textlens/textlens/internal/engine/segment"
)

var sampleTexts = map[string]string{
	"short": "The quick brown fox jumps over the lazy dog. It was not in a hurry today.",
	"medium": `Text analysis engines process documents through several independent passes.
        Sentence segmentation splits the input on terminal punctuation, tokenization
        lowercases and strips everything outside a small character set, and shingling
        slides a fixed-size window over the token stream. The resulting sets support
        fast similarity comparison without storing the original text. Each pass is
        deterministic so identical inputs always produce identical outputs.`,
	"long": strings.Repeat(`Authorship analysis relies on surface statistics of the text.
        Average sentence length, vocabulary diversity, contraction frequency, and
        punctuation variety each contribute a weighted signal. Human writing tends to
        vary sentence length considerably while machine writing is more uniform. No
        single signal is decisive on its own, which is why the final score blends all
        of them before assigning a label. `, 20),
}

func BenchmarkSplitSentences(b *testing.B) {
	for name, text := range sampleTexts {
		b.Run(name, func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(text)))
			for i := 0; i < b.N; i++ {
				sentences := segment.SplitSentences(text)
				_ = sentences
			}
		})
	}
}

func BenchmarkTokenize(b *testing.B) {
	for name, text := range sampleTexts {
		b.Run(name, func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(text)))
			for i := 0; i < b.N; i++ {
				tokens := segment.Tokenize(text)
				_ = tokens
			}
		})
	}
}

func BenchmarkShingles(b *testing.B) {
	tokens := segment.Tokenize(sampleTexts["long"])
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		shingles := segment.Shingles(tokens, segment.ShingleSize)
		_ = shingles
	}
}

func BenchmarkRewrite(b *testing.B) {
	rng := rand.New(rand.NewSource(7))
	for name, text := range sampleTexts {
		b.Run(name, func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(text)))
			for i := 0; i < b.N; i++ {
				out := rewrite.Rewrite(text, rewrite.Options{}, rng)
				_ = out
			}
		})
	}
}

func BenchmarkScore(b *testing.B) {
	for name, text := range sampleTexts {
		b.Run(name, func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(text)))
			for i := 0; i < b.N; i++ {
				result := authorship.Score(text)
				_ = result
			}
		})
	}
}

func BenchmarkOverlapCheck(b *testing.B) {
	for name, text := range sampleTexts {
		b.Run(name, func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(text)))
			for i := 0; i < b.N; i++ {
				result := overlap.Check(text)
				_ = result
			}
		})
	}
}

func BenchmarkScoreVaryingSize(b *testing.B) {
	sizes := []int{100, 500, 1000, 5000, 20000}
	base := "The results were mixed but the team kept iterating on the approach. "
	for _, size := range sizes {
		text := strings.Repeat(base, size/len(base)+1)[:size]
		b.Run(fmt.Sprintf("bytes_%d", size), func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(text)))
			for i := 0; i < b.N; i++ {
				result := authorship.Score(text)
				_ = result
			}
		})
	}
}
