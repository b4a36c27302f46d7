// Package segment provides sentence and token segmentation for the analysis
// engine. It normalises whitespace, splits text into sentences on terminal
// punctuation, and lowercases words into plain tokens. Every other engine
// component builds on its output.
package segment

import (
	"strings"
)

// SplitSentences splits text into trimmed sentences. Whitespace runs are
// collapsed to single spaces first, then the text is cut immediately after
// any '.', '!' or '?' that is followed by whitespace, with the terminator
// kept on the preceding sentence. Empty sentences are never returned.
func SplitSentences(text string) []string {
	normalized := strings.Join(strings.Fields(text), " ")
	if normalized == "" {
		return nil
	}

	var sentences []string
	start := 0
	runes := []rune(normalized)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if (r == '.' || r == '!' || r == '?') && i+1 < len(runes) && runes[i+1] == ' ' {
			s := strings.TrimSpace(string(runes[start : i+1]))
			if s != "" {
				sentences = append(sentences, s)
			}
			start = i + 1
		}
	}
	if s := strings.TrimSpace(string(runes[start:])); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

// Tokenize breaks text into lowercased word tokens. Brackets and quotes are
// treated as separators, as is every character outside [a-z0-9'- ]. Order is
// preserved and duplicates are kept.
func Tokenize(text string) []string {
	lowered := strings.ToLower(text)
	mapped := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r
		case r >= '0' && r <= '9':
			return r
		case r == '\'' || r == '-':
			return r
		default:
			return ' '
		}
	}, lowered)
	return strings.Fields(mapped)
}
