// Package similarity provides a deterministic token-overlap estimate of how
// much meaning survived a translation round trip. It is the fallback accuracy
// metric when no generative scoring backend is available.
package similarity

import (
	"math"
	"regexp"
	"strings"
)

// Result is a 0-100 overlap estimate with a human-readable explanation.
type Result struct {
	Score       int    `json:"score"`
	Explanation string `json:"explanation"`
}

// Weights of the two components of the combined score.
const (
	jaccardWeight = 0.7
	lengthWeight  = 0.3
)

// nonToken matches everything except word characters, whitespace and Hangul
// syllables; those characters are stripped before tokenizing.
var nonToken = regexp.MustCompile(`[^\w\s\x{AC00}-\x{D7AF}]+`)

// Score compares a text with its back-translation. Token sets are compared
// Jaccard-style and blended with a length ratio; the result is clamped to
// [0, 100]. Either side tokenizing to nothing yields a zero score.
func Score(original, candidate string) Result {
	origTokens := tokenize(original)
	candTokens := tokenize(candidate)
	if len(origTokens) == 0 || len(candTokens) == 0 {
		return Result{Score: 0, Explanation: "Unable to compare texts"}
	}

	origSet := toSet(origTokens)
	candSet := toSet(candTokens)

	matches := 0
	union := make(map[string]struct{}, len(origSet)+len(candSet))
	for tok := range origSet {
		union[tok] = struct{}{}
		if _, ok := candSet[tok]; ok {
			matches++
		}
	}
	for tok := range candSet {
		union[tok] = struct{}{}
	}

	jaccard := float64(matches) / float64(len(union)) * 100

	minLen, maxLen := len(origTokens), len(candTokens)
	if minLen > maxLen {
		minLen, maxLen = maxLen, minLen
	}
	lengthRatio := float64(minLen) / float64(maxLen)

	combined := int(math.Round(jaccard*jaccardWeight + lengthRatio*100*lengthWeight))
	if combined < 0 {
		combined = 0
	}
	if combined > 100 {
		combined = 100
	}

	return Result{Score: combined, Explanation: explain(combined)}
}

func explain(score int) string {
	switch {
	case score >= 85:
		return "Excellent semantic preservation"
	case score >= 70:
		return "Good meaning retention with minor variations"
	case score >= 50:
		return "Moderate similarity - some nuances may differ"
	default:
		return "Translation may have significant interpretation"
	}
}

func tokenize(text string) []string {
	cleaned := nonToken.ReplaceAllString(strings.ToLower(text), "")
	return strings.Fields(cleaned)
}

func toSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		set[tok] = struct{}{}
	}
	return set
}
