// Package translation defines the translation provider abstraction and its
// two backends: a formality-aware DeepL client and a generative LLM wrapper.
// The provider is selected once from configuration; the orchestrator never
// branches on backend names.
package translation

import "context"

// Language is a two-letter language code handled by the assistant.
type Language string

const (
	Korean  Language = "ko"
	English Language = "en"
)

// Formality is the coarse three-level style dial accepted by formality-aware
// backends.
type Formality string

const (
	FormalityMore    Formality = "prefer_more"
	FormalityDefault Formality = "default"
	FormalityLess    Formality = "prefer_less"
)

// Style carries the resolved profile parameters for one translate call.
// Description and Rules drive the generative backend; Formality drives the
// formality-aware backend, which has no rule concept.
type Style struct {
	ProfileName string
	Description string
	Rules       []string
	Formality   Formality
}

// Request is a single translate call.
type Request struct {
	Text   string
	Source Language
	Target Language
	Style  Style
}

// Result is the outcome of one translate call.
type Result struct {
	Text       string
	Confidence float64
	Notes      string
}

// Score is a 0-100 accuracy estimate with an explanation.
type Score struct {
	Value       int
	Explanation string
}

// Alternative is one candidate translation for a highlighted word.
type Alternative struct {
	Text   string
	Nuance string
}

// Variation is an alternate phrasing of an existing translation.
type Variation struct {
	Translation string
	Difference  string
}

// Provider translates text between Korean and English.
type Provider interface {
	// Name returns the backend name.
	Name() string
	// SupportsStyleRules reports whether Translate honors Style.Rules
	// natively. Providers without native rule support need the separate
	// rule-transformation pass before translating.
	SupportsStyleRules() bool
	// Translate performs one translation.
	Translate(ctx context.Context, req Request) (*Result, error)
}

// SemanticScorer scores meaning preservation between a text and its
// back-translation. Implemented by the generative provider; the orchestrator
// falls back to the token-overlap scorer otherwise.
type SemanticScorer interface {
	Score(ctx context.Context, original, candidate string) (*Score, error)
}

// AlternativeSource looks up alternative translations for a single word in
// its surrounding sentence.
type AlternativeSource interface {
	Alternatives(ctx context.Context, word, sentence string, source, target Language) ([]Alternative, error)
}

// Rephraser produces a differently-worded translation of the same text.
type Rephraser interface {
	Rephrase(ctx context.Context, original, current string, style Style) (*Variation, error)
}
