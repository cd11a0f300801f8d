package translation

import (
	"context"
	"strings"

	"hanmal/backend/internal/logger"
	"hanmal/backend/internal/service/llm"
)

// RuleTransformer rewrites text in its own language according to custom style
// rules. It exists for the formality-aware backend, which has no native rule
// concept: the rewrite happens before translation, in the source language.
type RuleTransformer struct {
	llm llm.Client
}

// NewRuleTransformer creates a transformer backed by a chat client.
func NewRuleTransformer(client llm.Client) *RuleTransformer {
	return &RuleTransformer{llm: client}
}

// ApplyRules returns the rewritten text and the rules that were applied.
// Backend failure is non-fatal by contract: the original text comes back
// untouched with no applied rules, and the error is returned for the
// caller's notes only.
func (t *RuleTransformer) ApplyRules(ctx context.Context, text string, rules []string, source Language) (string, []string, error) {
	if t == nil || t.llm == nil || len(rules) == 0 {
		return text, nil, nil
	}

	raw, err := t.llm.Complete(ctx, GetRuleTransformPrompt(rules, source), text)
	if err != nil {
		logger.Warn("rule transformation failed, keeping original text",
			"module", "translation", "action", "transform", "resource", "llm", "result", "degraded",
			"error", err)
		return text, nil, &ProviderError{Provider: t.llm.Name(), Message: "rule transformation", Cause: err}
	}

	transformed := strings.Trim(strings.TrimSpace(stripFences(raw)), `"'“”‘’`)
	if transformed == "" {
		return text, nil, nil
	}
	return transformed, rules, nil
}
