package translation

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"hanmal/backend/internal/logger"
	"hanmal/backend/internal/service/llm"
)

const generativeName = "generative"

// Generative is the prompt-driven translation backend. It supports free-form
// style rules, semantic accuracy scoring, word alternatives and rephrasing.
type Generative struct {
	llm llm.Client
}

// NewGenerative wraps a chat client as a translation provider.
func NewGenerative(client llm.Client) *Generative {
	return &Generative{llm: client}
}

// Name returns the backend name.
func (g *Generative) Name() string {
	return generativeName
}

// SupportsStyleRules reports true: rules are embedded in the prompt.
func (g *Generative) SupportsStyleRules() bool {
	return true
}

type translateReply struct {
	Translation string  `json:"translation"`
	Confidence  float64 `json:"confidence"`
	Notes       string  `json:"notes"`
}

// Translate asks the model for a strict-JSON reply. A malformed reply is not
// an error: the raw text becomes the translation with a default confidence.
func (g *Generative) Translate(ctx context.Context, req Request) (*Result, error) {
	raw, err := g.llm.Complete(ctx, GetTranslatePrompt(req.Style, req.Source, req.Target), req.Text)
	if err != nil {
		return nil, &ProviderError{Provider: generativeName, Message: "translate", Cause: err}
	}

	fallback := translateReply{Translation: stripFences(raw), Confidence: 0.8}
	reply := decodeOrDefault(raw, fallback)
	if strings.TrimSpace(reply.Translation) == "" {
		reply = fallback
	}
	return &Result{Text: reply.Translation, Confidence: reply.Confidence, Notes: reply.Notes}, nil
}

type scoreReply struct {
	Score       int    `json:"score"`
	Explanation string `json:"explanation"`
}

// Score compares a text with its back-translation via a semantic comparison
// prompt.
func (g *Generative) Score(ctx context.Context, original, candidate string) (*Score, error) {
	content := fmt.Sprintf("<original>%s</original>\n<back_translation>%s</back_translation>", original, candidate)
	raw, err := g.llm.Complete(ctx, GetScorePrompt(), content)
	if err != nil {
		return nil, &ProviderError{Provider: generativeName, Message: "score", Cause: err}
	}

	reply := decodeOrDefault(raw, scoreReply{Score: 75, Explanation: "Unable to calculate precise score"})
	if reply.Score < 0 {
		reply.Score = 0
	}
	if reply.Score > 100 {
		reply.Score = 100
	}
	return &Score{Value: reply.Score, Explanation: reply.Explanation}, nil
}

type alternativeReply struct {
	Text   string `json:"text"`
	Nuance string `json:"nuance"`
}

// Alternatives looks up other ways to translate a highlighted word. A
// malformed reply degrades to a single-element list carrying the word itself.
func (g *Generative) Alternatives(ctx context.Context, word, sentence string, source, target Language) ([]Alternative, error) {
	content := fmt.Sprintf("<word>%s</word>\n<context>%s</context>", word, sentence)
	raw, err := g.llm.Complete(ctx, GetAlternativesPrompt(source, target), content)
	if err != nil {
		return nil, &ProviderError{Provider: generativeName, Message: "alternatives", Cause: err}
	}

	replies := decodeOrDefault(raw, []alternativeReply(nil))
	out := make([]Alternative, 0, len(replies))
	for _, r := range replies {
		if strings.TrimSpace(r.Text) == "" {
			continue
		}
		out = append(out, Alternative{Text: r.Text, Nuance: r.Nuance})
	}
	if len(out) == 0 {
		return []Alternative{{Text: word, Nuance: "No alternatives found"}}, nil
	}
	return out, nil
}

type variationReply struct {
	Translation string `json:"translation"`
	Difference  string `json:"difference"`
}

// Rephrase asks the model for a differently-worded translation of the same
// text.
func (g *Generative) Rephrase(ctx context.Context, original, current string, style Style) (*Variation, error) {
	content := fmt.Sprintf("<original>%s</original>\n<current_translation>%s</current_translation>", original, current)
	raw, err := g.llm.Complete(ctx, GetVariationPrompt(style), content)
	if err != nil {
		return nil, &ProviderError{Provider: generativeName, Message: "variation", Cause: err}
	}

	reply := decodeOrDefault(raw, variationReply{Translation: current, Difference: "Could not generate variation"})
	if strings.TrimSpace(reply.Translation) == "" {
		reply = variationReply{Translation: current, Difference: "Could not generate variation"}
	}
	return &Variation{Translation: reply.Translation, Difference: reply.Difference}, nil
}

// decodeOrDefault attempts a strict JSON decode of a model reply and returns
// the fallback value when the reply is not the expected shape. Parse failures
// never escape this boundary.
func decodeOrDefault[T any](raw string, fallback T) T {
	cleaned := stripFences(raw)
	var v T
	if err := json.Unmarshal([]byte(cleaned), &v); err != nil {
		logger.Debug("llm reply is not the expected json shape, using fallback",
			"module", "translation", "action", "decode", "resource", "llm", "result", "fallback",
			"error", err)
		return fallback
	}
	return v
}

// stripFences removes a wrapping markdown code fence, which models add even
// when told not to.
func stripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
