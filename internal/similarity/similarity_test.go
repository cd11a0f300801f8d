package similarity_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"hanmal/backend/internal/similarity"
)

func TestScore_IdenticalTokenSets(t *testing.T) {
	// Same words in a different order: full token overlap, equal length.
	res := similarity.Score("The weather is nice today", "Today the weather is nice")
	require.Equal(t, 100, res.Score)
	require.Equal(t, "Excellent semantic preservation", res.Explanation)
}

func TestScore_DisjointVocabularies(t *testing.T) {
	// No shared tokens: the score comes entirely from the length-ratio term.
	res := similarity.Score("apple banana", "car train")
	require.Equal(t, 30, res.Score)
	require.Equal(t, "Translation may have significant interpretation", res.Explanation)
}

func TestScore_EmptyAfterTokenization(t *testing.T) {
	res := similarity.Score("", "something")
	require.Equal(t, 0, res.Score)
	require.Equal(t, "Unable to compare texts", res.Explanation)

	// Punctuation-only input tokenizes to nothing.
	res = similarity.Score("hello world", "?!...")
	require.Equal(t, 0, res.Score)
	require.Equal(t, "Unable to compare texts", res.Explanation)
}

func TestScore_CaseAndPunctuationInsensitive(t *testing.T) {
	res := similarity.Score("Hello, world!", "hello world")
	require.Equal(t, 100, res.Score)
}

func TestScore_Korean(t *testing.T) {
	res := similarity.Score("오늘 날씨가 좋네요", "오늘 날씨가 좋네요")
	require.Equal(t, 100, res.Score)
	require.Equal(t, "Excellent semantic preservation", res.Explanation)
}

func TestScore_PartialOverlap(t *testing.T) {
	// 3 shared tokens of a 5-token union: jaccard 60, length ratio 1.0.
	// combined = round(60*0.7 + 100*0.3) = 72.
	res := similarity.Score("the cat sat down", "the cat lay down")
	require.Equal(t, 72, res.Score)
	require.Equal(t, "Good meaning retention with minor variations", res.Explanation)
}

func TestScore_DuplicatesCollapse(t *testing.T) {
	// Duplicate tokens collapse in the sets but still count for length.
	res := similarity.Score("go go go", "go")
	require.Equal(t, 80, res.Score)
}
