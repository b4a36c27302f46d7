package segment

import (
	"regexp"
	"strings"
	"testing"
)

func TestSplitSentencesBasic(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "two sentences",
			text: "AI is important. It can help people.",
			want: []string{"AI is important.", "It can help people."},
		},
		{
			name: "mixed terminators",
			text: "Really? Yes! It works.",
			want: []string{"Really?", "Yes!", "It works."},
		},
		{
			name: "no terminator",
			text: "trailing fragment without punctuation",
			want: []string{"trailing fragment without punctuation"},
		},
		{
			name: "whitespace runs collapsed",
			text: "First  sentence.\n\tSecond   sentence.",
			want: []string{"First sentence.", "Second sentence."},
		},
		{
			name: "terminator not followed by whitespace",
			text: "Version 1.5 is out. Use it.",
			want: []string{"Version 1.5 is out.", "Use it."},
		},
		{
			name: "empty input",
			text: "   ",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitSentences(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d sentences %v, want %d %v", len(got), got, len(tt.want), tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("sentence %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSplitSentencesReconstruction(t *testing.T) {
	texts := []string{
		"One sentence here. Another one follows! And a third?",
		"A  text	with   odd\nwhitespace. Still one stream of characters.",
		"No terminator at all just words",
	}
	for _, text := range texts {
		sentences := SplitSentences(text)
		for _, s := range sentences {
			if strings.TrimSpace(s) == "" {
				t.Errorf("empty sentence from %q", text)
			}
		}
		joined := strings.Join(sentences, " ")
		normalized := strings.Join(strings.Fields(text), " ")
		if joined != normalized {
			t.Errorf("reconstruction mismatch:\n got %q\nwant %q", joined, normalized)
		}
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{"Hello, World!", []string{"hello", "world"}},
		{"it's a well-known fact", []string{"it's", "a", "well-known", "fact"}},
		{"(brackets) and \"quotes\"", []string{"brackets", "and", "quotes"}},
		{"numbers 123 stay", []string{"numbers", "123", "stay"}},
		{"", nil},
	}
	for _, tt := range tests {
		got := Tokenize(tt.text)
		if len(got) != len(tt.want) {
			t.Fatalf("Tokenize(%q) = %v, want %v", tt.text, got, tt.want)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("Tokenize(%q)[%d] = %q, want %q", tt.text, i, got[i], tt.want[i])
			}
		}
	}
}

func TestTokenizeCharset(t *testing.T) {
	valid := regexp.MustCompile(`^[a-z0-9'-]+$`)
	text := "Mixed CASE, punctuation; digits 42 — and 'quotes' (plus brackets)!"
	for _, tok := range Tokenize(text) {
		if !valid.MatchString(tok) {
			t.Errorf("token %q contains characters outside [a-z0-9'-]", tok)
		}
	}
}
