package matching

import (
	"regexp"
	"strings"

	"github.com/agnivade/levenshtein"
)

var (
	nonAlnumRegex   = regexp.MustCompile(`[^a-z0-9\s]`)
	whitespaceRegex = regexp.MustCompile(`\s+`)
)

// tokenBonusWeight caps the token-overlap bonus. Edit distance alone
// under-rewards reordered or partially overlapping multi-word names
// (middle names, swapped order); the bonus compensates without being
// able to override the exact-match short circuit.
const tokenBonusWeight = 0.2

// normalizeForComparison lowercases, strips everything outside [a-z0-9\s],
// collapses whitespace runs and trims.
func normalizeForComparison(s string) string {
	s = strings.ToLower(s)
	s = nonAlnumRegex.ReplaceAllString(s, "")
	s = whitespaceRegex.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Similarity scores two name strings in [0, 1]. Identical normalized strings
// (including two empties) score 1.0; otherwise the score is the Levenshtein
// base ratio plus a token-overlap bonus, clamped to 1.0.
func Similarity(a, b string) float64 {
	na := normalizeForComparison(a)
	nb := normalizeForComparison(b)
	if na == nb {
		return 1.0
	}

	maxLen := len(na)
	if len(nb) > maxLen {
		maxLen = len(nb)
	}
	distance := levenshtein.ComputeDistance(na, nb)
	score := float64(maxLen-distance) / float64(maxLen)

	wordsA := strings.Fields(na)
	wordsB := strings.Fields(nb)
	if len(wordsA) > 0 && len(wordsB) > 0 {
		inB := make(map[string]bool, len(wordsB))
		for _, w := range wordsB {
			inB[w] = true
		}
		shared := 0
		for _, w := range wordsA {
			if inB[w] {
				shared++
			}
		}
		maxWords := len(wordsA)
		if len(wordsB) > maxWords {
			maxWords = len(wordsB)
		}
		score += float64(shared) / float64(maxWords) * tokenBonusWeight
	}

	if score > 1.0 {
		score = 1.0
	}
	return score
}
