// Package langdetect classifies text as Korean or English by script ratio.
package langdetect

import "unicode"

// Language codes handled by the assistant.
const (
	Korean  = "ko"
	English = "en"
)

// hangulThreshold is the Korean-character ratio above which (strictly) text
// is classified as Korean. A ratio of exactly 0.3 resolves to English.
const hangulThreshold = 0.3

// Detect returns "ko" when the ratio of Hangul runes to non-whitespace runes
// exceeds the threshold, "en" otherwise. Text with no non-whitespace runes
// is classified as English; empty input is rejected upstream by the request
// validator, so this is only a guard against division by zero.
func Detect(text string) string {
	var hangul, total int
	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		total++
		if unicode.Is(unicode.Hangul, r) {
			hangul++
		}
	}
	if total == 0 {
		return English
	}
	if float64(hangul)/float64(total) > hangulThreshold {
		return Korean
	}
	return English
}

// Opposite returns the counterpart language code.
func Opposite(lang string) string {
	if lang == Korean {
		return English
	}
	return Korean
}
