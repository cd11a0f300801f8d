package model

// TranslationRequest is one incoming translation request. ProfileID defaults
// to the "natural" built-in when empty.
type TranslationRequest struct {
	Text        string   `json:"text"`
	ProfileID   string   `json:"profileId"`
	CustomRules []string `json:"customRules,omitempty"`
}

// AccuracyScore estimates how much meaning survived the round trip
// original -> translation -> back-translation.
type AccuracyScore struct {
	Score       int    `json:"score"`
	Explanation string `json:"explanation"`
}

// TranslationResult is the outcome of one pipeline run. It is constructed
// fresh per request and never mutated after being returned.
type TranslationResult struct {
	Original              string        `json:"original"`
	SourceLanguage        string        `json:"sourceLanguage"`
	TargetLanguage        string        `json:"targetLanguage"`
	Translation           string        `json:"translation"`
	TranslationConfidence float64       `json:"translationConfidence"`
	TranslationNotes      string        `json:"translationNotes"`
	ReTranslation         string        `json:"reTranslation"`
	ReTranslationNotes    string        `json:"reTranslationNotes"`
	AccuracyScore         AccuracyScore `json:"accuracyScore"`
	ProfileUsed           string        `json:"profileUsed"`
	TransformedText       *string       `json:"transformedText"`
}

// VariationResult is an alternate phrasing of an existing translation.
type VariationResult struct {
	Translation string `json:"translation"`
	Difference  string `json:"difference"`
}

// Alternative is one candidate translation for a highlighted word.
type Alternative struct {
	Text   string `json:"text"`
	Nuance string `json:"nuance"`
}
