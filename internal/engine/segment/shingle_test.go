package segment

import "testing"

func TestShingles(t *testing.T) {
	tokens := []string{"a", "b", "c", "d", "e", "f", "g"}
	set := Shingles(tokens, 6)
	if len(set) != 2 {
		t.Fatalf("expected 2 shingles, got %d: %v", len(set), set)
	}
	if _, ok := set["a b c d e f"]; !ok {
		t.Error("missing first shingle")
	}
	if _, ok := set["b c d e f g"]; !ok {
		t.Error("missing second shingle")
	}
}

func TestShinglesShortInput(t *testing.T) {
	set := Shingles([]string{"too", "few", "tokens"}, 6)
	if len(set) != 0 {
		t.Errorf("expected empty set for short input, got %v", set)
	}
}

func TestShinglesDeduplicated(t *testing.T) {
	tokens := []string{"a", "b", "a", "b", "a", "b", "a", "b"}
	set := Shingles(tokens, 2)
	if len(set) != 2 {
		t.Errorf("expected deduplication to 2 shingles, got %d", len(set))
	}
}

func TestJaccard(t *testing.T) {
	a := map[string]struct{}{"x": {}, "y": {}, "z": {}}
	b := map[string]struct{}{"y": {}, "z": {}, "w": {}}
	if got := Jaccard(a, b); got != 0.5 {
		t.Errorf("Jaccard = %v, want 0.5", got)
	}
	if got := Jaccard(nil, nil); got != 0 {
		t.Errorf("Jaccard of empty sets = %v, want 0", got)
	}
	if got := Jaccard(a, a); got != 1 {
		t.Errorf("Jaccard of identical sets = %v, want 1", got)
	}
}
