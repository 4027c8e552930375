package themes

// stopwords contains English function words and high-frequency fillers
// that carry no discriminative value for keyword extraction.
var stopwords = map[string]struct{}{
	// Articles and determiners
	"a": {}, "an": {}, "the": {}, "this": {}, "that": {}, "these": {},
	"those": {}, "some": {}, "any": {}, "each": {}, "every": {}, "all": {},
	"both": {}, "few": {}, "more": {}, "most": {}, "other": {}, "such": {},
	// Pronouns
	"i": {}, "me": {}, "my": {}, "myself": {}, "we": {}, "our": {},
	"ours": {}, "you": {}, "your": {}, "yours": {}, "he": {}, "him": {},
	"his": {}, "she": {}, "her": {}, "hers": {}, "it": {}, "its": {},
	"they": {}, "them": {}, "their": {}, "theirs": {}, "who": {},
	"whom": {}, "which": {}, "what": {},
	// Auxiliaries and copulas
	"am": {}, "is": {}, "are": {}, "was": {}, "were": {}, "be": {},
	"been": {}, "being": {}, "have": {}, "has": {}, "had": {}, "having": {},
	"do": {}, "does": {}, "did": {}, "doing": {}, "will": {}, "would": {},
	"shall": {}, "should": {}, "can": {}, "could": {}, "may": {},
	"might": {}, "must": {},
	// Conjunctions
	"and": {}, "but": {}, "or": {}, "nor": {}, "so": {}, "yet": {},
	"because": {}, "although": {}, "while": {}, "if": {}, "then": {},
	"than": {}, "as": {},
	// Prepositions
	"at": {}, "by": {}, "for": {}, "from": {}, "in": {}, "into": {},
	"of": {}, "on": {}, "onto": {}, "to": {}, "with": {}, "without": {},
	"about": {}, "above": {}, "after": {}, "before": {}, "below": {},
	"between": {}, "during": {}, "over": {}, "under": {}, "up": {},
	"down": {}, "out": {}, "off": {}, "through": {},
	// Adverbs and fillers
	"not": {}, "no": {}, "only": {}, "very": {}, "too": {}, "also": {},
	"just": {}, "there": {}, "here": {}, "when": {}, "where": {},
	"why": {}, "how": {}, "again": {}, "once": {}, "now": {}, "ever": {},
	"never": {}, "always": {}, "even": {}, "still": {}, "however": {},
	"further": {}, "own": {}, "same": {},
}

func isStopword(token string) bool {
	_, ok := stopwords[token]
	return ok
}
