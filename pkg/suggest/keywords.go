package suggest

import (
	"regexp"
	"sort"
	"strings"
)

var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "to": true, "for": true, "of": true,
	"with": true, "by": true, "from": true, "as": true, "is": true, "was": true,
	"are": true, "were": true, "been": true, "be": true, "have": true,
	"has": true, "had": true, "do": true, "does": true, "did": true,
	"will": true, "would": true, "could": true, "should": true, "may": true,
	"might": true, "must": true, "i": true, "you": true, "he": true,
	"she": true, "it": true, "we": true, "they": true, "what": true,
	"which": true, "who": true, "when": true, "where": true, "why": true,
	"how": true, "all": true, "each": true, "every": true, "both": true,
	"few": true, "more": true, "most": true, "other": true, "some": true,
	"such": true, "no": true, "not": true, "only": true, "same": true,
	"so": true, "than": true, "too": true, "very": true, "just": true,
	"can": true, "this": true, "that": true, "these": true, "those": true,
	"my": true, "your": true, "his": true, "her": true, "its": true,
	"our": true, "their": true,
}

var nonWordRe = regexp.MustCompile(`[^\w\s]`)

// extractKeywords returns up to ten keywords from text, most frequent
// first. Words of four letters or more that are not stop words count;
// ties keep first-seen order so results are deterministic.
func extractKeywords(text string) []string {
	cleaned := nonWordRe.ReplaceAllString(strings.ToLower(text), "")

	freq := make(map[string]int)
	var order []string
	for _, word := range strings.Fields(cleaned) {
		if len(word) <= 3 || stopWords[word] {
			continue
		}
		if freq[word] == 0 {
			order = append(order, word)
		}
		freq[word]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return freq[order[i]] > freq[order[j]]
	})

	if len(order) > 10 {
		order = order[:10]
	}
	return order
}
