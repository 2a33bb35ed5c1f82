package suggest

import "strings"

// levenshtein computes the edit distance between two strings.
func levenshtein(a, b string) int {
	ar, br := []rune(a), []rune(b)
	if len(ar) == 0 {
		return len(br)
	}
	if len(br) == 0 {
		return len(ar)
	}

	prev := make([]int, len(ar)+1)
	curr := make([]int, len(ar)+1)
	for j := 0; j <= len(ar); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(br); i++ {
		curr[0] = i
		for j := 1; j <= len(ar); j++ {
			if br[i-1] == ar[j-1] {
				curr[j] = prev[j-1]
			} else {
				curr[j] = min3(prev[j-1], curr[j-1], prev[j]) + 1
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(ar)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

// stringSimilarity scores two strings in [0,1] by normalized edit
// distance, case-insensitive.
func stringSimilarity(a, b string) float64 {
	al, bl := strings.ToLower(a), strings.ToLower(b)
	maxLen := len([]rune(al))
	if l := len([]rune(bl)); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 1
	}
	return 1 - float64(levenshtein(al, bl))/float64(maxLen)
}

// wordOverlap scores two texts in [0,1] by Jaccard similarity of their
// word sets.
func wordOverlap(a, b string) float64 {
	wordsA := toWordSet(a)
	wordsB := toWordSet(b)

	intersection := 0
	for w := range wordsA {
		if wordsB[w] {
			intersection++
		}
	}
	union := len(wordsB)
	for w := range wordsA {
		if !wordsB[w] {
			union++
		}
	}
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func toWordSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(text)) {
		set[w] = true
	}
	return set
}
