package lexicon

// synonyms maps a lowercased word core to its replacement candidates. The
// rewriter picks uniformly at random from the list.
var synonyms = map[string][]string{
	"important":   {"crucial", "vital", "significant"},
	"help":        {"assist", "aid", "support"},
	"helps":       {"assists", "aids", "supports"},
	"quickly":     {"rapidly", "swiftly", "promptly"},
	"big":         {"large", "substantial", "considerable"},
	"small":       {"minor", "modest", "compact"},
	"good":        {"solid", "strong", "effective"},
	"bad":         {"poor", "weak", "flawed"},
	"easy":        {"simple", "straightforward", "effortless"},
	"hard":        {"difficult", "tough", "demanding"},
	"show":        {"demonstrate", "reveal", "indicate"},
	"shows":       {"demonstrates", "reveals", "indicates"},
	"use":         {"employ", "apply", "utilize"},
	"uses":        {"employs", "applies", "utilizes"},
	"make":        {"create", "produce", "build"},
	"makes":       {"creates", "produces", "builds"},
	"think":       {"believe", "reckon", "consider"},
	"start":       {"begin", "launch", "initiate"},
	"end":         {"finish", "conclude", "wrap up"},
	"problem":     {"issue", "challenge", "difficulty"},
	"problems":    {"issues", "challenges", "difficulties"},
	"people":      {"individuals", "folks", "persons"},
	"many":        {"numerous", "plenty of", "a lot of"},
	"often":       {"frequently", "regularly", "commonly"},
	"also":        {"additionally", "moreover", "furthermore"},
	"however":     {"nevertheless", "nonetheless", "still"},
	"reduce":      {"lower", "cut", "decrease"},
	"increase":    {"raise", "boost", "grow"},
	"fast":        {"quick", "rapid", "speedy"},
	"slow":        {"sluggish", "gradual", "unhurried"},
	"very":        {"extremely", "highly", "particularly"},
	"new":         {"fresh", "novel", "recent"},
	"old":         {"aging", "dated", "longstanding"},
	"reliably":    {"consistently", "dependably", "steadily"},
	"costs":       {"expenses", "expenditures", "outlays"},
	"improve":     {"enhance", "refine", "strengthen"},
	"understand":  {"grasp", "comprehend", "follow"},
	"interesting": {"intriguing", "compelling", "notable"},
}

// Synonyms returns the replacement candidates for the lowercased word core
// and whether an entry exists.
func Synonyms(word string) ([]string, bool) {
	list, ok := synonyms[word]
	return list, ok
}
