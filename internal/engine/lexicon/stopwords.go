// Package lexicon holds the engine's static word lists: a stopword set and a
// synonym table. Both are initialised once and read-only afterwards, so they
// are safe for unsynchronised concurrent reads.
package lexicon

var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {},
	"be": {}, "but": {}, "by": {}, "for": {}, "from": {}, "had": {},
	"has": {}, "have": {}, "he": {}, "her": {}, "his": {}, "if": {},
	"in": {}, "is": {}, "it": {}, "its": {}, "of": {}, "on": {},
	"or": {}, "she": {}, "so": {}, "that": {}, "the": {}, "their": {},
	"them": {}, "they": {}, "this": {}, "to": {}, "was": {}, "we": {},
	"were": {}, "which": {}, "will": {}, "with": {}, "you": {},
	"your": {}, "not": {}, "no": {}, "can": {}, "do": {}, "does": {},
	"what": {}, "when": {}, "where": {}, "who": {}, "how": {},
}

// IsStopword reports whether the lowercased word is a stopword.
func IsStopword(word string) bool {
	_, ok := stopwords[word]
	return ok
}
