package authorship

import (
	"strings"
	"testing"
)

func TestScoreDeterministic(t *testing.T) {
	text := "The report was finished on time. It's shorter than expected, but the numbers hold up well."
	first := Score(text)
	second := Score(text)
	if first != second {
		t.Errorf("score not deterministic: %+v vs %+v", first, second)
	}
}

func TestScoreEmptyInput(t *testing.T) {
	got := Score("")
	if got.Score < 0 || got.Score > 1 {
		t.Errorf("score out of range for empty input: %v", got.Score)
	}
	if got.Details.AvgSentenceLen != 0 {
		t.Errorf("expected zero avg sentence length, got %v", got.Details.AvgSentenceLen)
	}
}

func TestUniformSentencesNeverHuman(t *testing.T) {
	// Eight identical 20-token sentences: zero variance, so the burstiness
	// factor saturates at 1 and the label must not fall below "Mixed".
	words := make([]string, 20)
	for i := range words {
		words[i] = "alpha"
	}
	words[19] = "omega"
	sentence := strings.Join(words, " ") + "."
	text := strings.Repeat(sentence+" ", 8)

	got := Score(text)
	if got.Label == LabelHuman {
		t.Errorf("uniform-length text labelled %q, score %v", got.Label, got.Score)
	}
}

func TestScoreExample(t *testing.T) {
	text := "AI is important. It can help people solve problems quickly and reliably, and it can also reduce costs."
	got := Score(text)
	if got.Score < 0 || got.Score > 1 {
		t.Fatalf("score out of range: %v", got.Score)
	}
	// Two sentences of 3 and 15 tokens.
	if got.Details.AvgSentenceLen != 9 {
		t.Errorf("avg sentence length = %v, want 9", got.Details.AvgSentenceLen)
	}
	if got.Label != LabelAI && got.Label != LabelHuman && got.Label != LabelMixed {
		t.Errorf("unknown label %q", got.Label)
	}
}

func TestContractionCounting(t *testing.T) {
	text := "It's fine. They're here. We've left."
	got := Score(text)
	// Three contraction suffixes across three sentences.
	if got.Details.Contractions != 1 {
		t.Errorf("contractions per sentence = %v, want 1", got.Details.Contractions)
	}
}

func TestPunctTypes(t *testing.T) {
	text := "One, two: three; four - five (six)."
	got := Score(text)
	if got.Details.PunctTypes != 6 {
		t.Errorf("punct types = %d, want 6", got.Details.PunctTypes)
	}
}
