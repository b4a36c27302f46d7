package overlap

import (
	"strings"
	"testing"
)

func TestCorpusVerbatimMatch(t *testing.T) {
	text := referenceCorpus[0]
	got := Check(text)

	found := false
	for _, m := range got.Matches {
		if m.Source == SourceCorpus && m.Similarity == 100.0 {
			found = true
			if !strings.HasSuffix(m.Sample, "...") {
				t.Errorf("sample not ellipsis-terminated: %q", m.Sample)
			}
		}
	}
	if !found {
		t.Fatalf("verbatim corpus entry produced no 100%% match: %+v", got.Matches)
	}
	if got.Uniqueness == nil {
		t.Error("uniqueness missing on long input")
	}
	if got.PercentOverlap <= 0 {
		t.Errorf("percent overlap = %v, want > 0", got.PercentOverlap)
	}
}

func TestSelfRepetition(t *testing.T) {
	sentence := "the quick brown fox jumps over the lazy sleeping dog"
	text := sentence + ". " + sentence + "."
	got := Check(text)

	found := false
	for _, m := range got.Matches {
		if m.Source == SourceSelf {
			found = true
			if m.Similarity < 70.0 {
				t.Errorf("self repetition similarity = %v, want >= 70", m.Similarity)
			}
			if !strings.HasPrefix(m.Sample, `"`) {
				t.Errorf("self repetition sample not quote-wrapped: %q", m.Sample)
			}
		}
	}
	if !found {
		t.Fatalf("repeated sentence produced no self-repetition match: %+v", got.Matches)
	}
}

func TestShortInputShortCircuits(t *testing.T) {
	got := Check("five tokens is too few")
	if got.PercentOverlap != 0 {
		t.Errorf("percent overlap = %v, want 0", got.PercentOverlap)
	}
	if len(got.Matches) != 0 {
		t.Errorf("matches = %v, want empty", got.Matches)
	}
	if got.Uniqueness != nil {
		t.Errorf("uniqueness = %v, want omitted", *got.Uniqueness)
	}
}

func TestCheckDeterministic(t *testing.T) {
	text := referenceCorpus[1] + " Plus some additional original words to pad things out."
	a := Check(text)
	b := Check(text)
	if a.PercentOverlap != b.PercentOverlap || len(a.Matches) != len(b.Matches) {
		t.Errorf("overlap check not deterministic: %+v vs %+v", a, b)
	}
}

func TestUnrelatedTextNoCorpusMatch(t *testing.T) {
	text := "Zebras gallop across wide open plains while distant thunder rolls over the hills beyond the river delta."
	got := Check(text)
	for _, m := range got.Matches {
		if m.Source == SourceCorpus {
			t.Errorf("unexpected corpus match: %+v", m)
		}
	}
	if got.Uniqueness == nil || *got.Uniqueness != 100 {
		t.Errorf("expected uniqueness 100 for unrelated text, got %+v", got.Uniqueness)
	}
}

func TestContributionCap(t *testing.T) {
	// A single perfect corpus match contributes min(25, 100/4) = 25 points.
	got := Check(referenceCorpus[2])
	if got.PercentOverlap != 25 {
		t.Errorf("percent overlap = %v, want 25", got.PercentOverlap)
	}
	if got.Uniqueness == nil || *got.Uniqueness != 75 {
		t.Errorf("uniqueness = %+v, want 75", got.Uniqueness)
	}
}
