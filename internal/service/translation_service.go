package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"hanmal/backend/internal/langdetect"
	"hanmal/backend/internal/logger"
	"hanmal/backend/internal/model"
	"hanmal/backend/internal/similarity"
	"hanmal/backend/internal/service/translation"
)

// DefaultCallTimeout bounds each outbound provider call.
const DefaultCallTimeout = 30 * time.Second

// TranslationService runs the translate, back-translate and score pipeline.
type TranslationService interface {
	// Translate runs the full pipeline for one request.
	Translate(ctx context.Context, req model.TranslationRequest) (*model.TranslationResult, error)
	// Alternatives looks up other translations for a highlighted word.
	Alternatives(ctx context.Context, word, sentence, source, target string) ([]model.Alternative, error)
	// Variation produces an alternate phrasing of an existing translation.
	Variation(ctx context.Context, original, current, profileID string, customRules []string) (*model.VariationResult, error)
}

type translationService struct {
	provider    translation.Provider
	transformer *translation.RuleTransformer
	profiles    ProfileService
	limiter     *translation.RateLimiter
	callTimeout time.Duration
}

// NewTranslationService wires the pipeline. The provider is constructed once
// at startup and injected; transformer may be nil when no generative backend
// is configured, in which case custom rules are skipped on the
// formality-aware path.
func NewTranslationService(
	provider translation.Provider,
	transformer *translation.RuleTransformer,
	profiles ProfileService,
	limiter *translation.RateLimiter,
	callTimeout time.Duration,
) TranslationService {
	if callTimeout <= 0 {
		callTimeout = DefaultCallTimeout
	}
	return &translationService{
		provider:    provider,
		transformer: transformer,
		profiles:    profiles,
		limiter:     limiter,
		callTimeout: callTimeout,
	}
}

func (s *translationService) Translate(ctx context.Context, req model.TranslationRequest) (*model.TranslationResult, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, fmt.Errorf("%w: text is required", ErrInvalid)
	}

	source := langdetect.Detect(text)
	target := langdetect.Opposite(source)

	effective := s.profiles.Resolve(ctx, req.ProfileID, req.CustomRules)

	// Custom rules on the formality-aware path go through a separate
	// intra-language rewrite before translating, since that backend has no
	// rule concept. Failure here degrades, it never kills the request.
	inputText := text
	var transformedText *string
	var transformNote string
	if len(effective.CustomRules) > 0 && !s.provider.SupportsStyleRules() {
		callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
		transformed, applied, err := s.transformer.ApplyRules(callCtx, text, effective.CustomRules, translation.Language(source))
		cancel()
		switch {
		case err != nil:
			transformNote = fmt.Sprintf("Custom rules skipped: %v", err)
		case len(applied) > 0:
			inputText = transformed
			transformedText = &transformed
			transformNote = "Applied custom rules: " + strings.Join(applied, "; ")
		}
	}

	primary, err := s.translate(ctx, translation.Request{
		Text:   inputText,
		Source: translation.Language(source),
		Target: translation.Language(target),
		Style:  effective.Style(),
	})
	if err != nil {
		return nil, fmt.Errorf("translate: %w", err)
	}

	// Back-translation always runs under the literal profile, so the
	// accuracy check measures drift against a neutral baseline instead of
	// re-applying the original style and masking it.
	literal := s.profiles.Resolve(ctx, LiteralProfileID, nil)
	back, err := s.translate(ctx, translation.Request{
		Text:   primary.Text,
		Source: translation.Language(target),
		Target: translation.Language(source),
		Style:  literal.Style(),
	})
	if err != nil {
		return nil, fmt.Errorf("back-translate: %w", err)
	}

	accuracy := s.scoreRoundTrip(ctx, inputText, back.Text)

	notes := primary.Notes
	if transformNote != "" {
		if notes != "" {
			notes += " | "
		}
		notes += transformNote
	}

	logger.Info("translation pipeline completed",
		"module", "service", "action", "translate", "resource", "translation", "result", "ok",
		"provider", s.provider.Name(), "source", source, "target", target,
		"profile", effective.Profile.ID, "accuracy", accuracy.Score)

	return &model.TranslationResult{
		Original:              text,
		SourceLanguage:        source,
		TargetLanguage:        target,
		Translation:           primary.Text,
		TranslationConfidence: primary.Confidence,
		TranslationNotes:      notes,
		ReTranslation:         back.Text,
		ReTranslationNotes:    back.Notes,
		AccuracyScore:         accuracy,
		ProfileUsed:           effective.Profile.ID,
		TransformedText:       transformedText,
	}, nil
}

func (s *translationService) Alternatives(ctx context.Context, word, sentence, source, target string) ([]model.Alternative, error) {
	word = strings.TrimSpace(word)
	if word == "" {
		return nil, fmt.Errorf("%w: word is required", ErrInvalid)
	}
	if source == "" {
		source = langdetect.Detect(word)
	}
	if target == "" {
		target = langdetect.Opposite(source)
	}

	src, ok := s.provider.(translation.AlternativeSource)
	if !ok {
		// The formality-aware backend cannot enumerate nuanced
		// alternatives.
		return []model.Alternative{{Text: word, Nuance: "No alternatives available"}}, nil
	}

	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()
	if err := s.wait(callCtx); err != nil {
		return nil, err
	}

	alts, err := src.Alternatives(callCtx, word, sentence, translation.Language(source), translation.Language(target))
	if err != nil {
		return nil, fmt.Errorf("alternatives: %w", err)
	}
	out := make([]model.Alternative, 0, len(alts))
	for _, a := range alts {
		out = append(out, model.Alternative{Text: a.Text, Nuance: a.Nuance})
	}
	return out, nil
}

func (s *translationService) Variation(ctx context.Context, original, current, profileID string, customRules []string) (*model.VariationResult, error) {
	original = strings.TrimSpace(original)
	current = strings.TrimSpace(current)
	if original == "" || current == "" {
		return nil, fmt.Errorf("%w: original text and current translation are required", ErrInvalid)
	}

	effective := s.profiles.Resolve(ctx, profileID, customRules)

	if rephraser, ok := s.provider.(translation.Rephraser); ok {
		callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
		defer cancel()
		if err := s.wait(callCtx); err != nil {
			return unavailableVariation(current, err), nil
		}
		v, err := rephraser.Rephrase(callCtx, original, current, effective.Style())
		if err != nil {
			logger.Warn("variation generation failed",
				"module", "service", "action", "variation", "resource", "translation", "result", "degraded",
				"error", err)
			return unavailableVariation(current, err), nil
		}
		return &model.VariationResult{Translation: v.Translation, Difference: v.Difference}, nil
	}

	return s.formalityVariation(ctx, original, current, effective), nil
}

// formalityVariation reissues the translation through the formality levels
// the profile did not use. The first pick between the two candidates is
// random; an identical result triggers one retry with the last level before
// reporting the current translation as already optimal.
func (s *translationService) formalityVariation(ctx context.Context, original, current string, effective EffectiveProfile) *model.VariationResult {
	source := langdetect.Detect(original)
	target := langdetect.Opposite(source)

	levels := remainingFormalities(effective.Formality)
	rand.Shuffle(len(levels), func(i, j int) { levels[i], levels[j] = levels[j], levels[i] })

	style := effective.Style()
	for _, level := range levels {
		style.Formality = level
		res, err := s.translate(ctx, translation.Request{
			Text:   original,
			Source: translation.Language(source),
			Target: translation.Language(target),
			Style:  style,
		})
		if err != nil {
			logger.Warn("variation translate failed",
				"module", "service", "action", "variation", "resource", "translation", "result", "degraded",
				"formality", string(level), "error", err)
			return unavailableVariation(current, err)
		}
		if res.Text != current {
			return &model.VariationResult{
				Translation: res.Text,
				Difference:  fmt.Sprintf("Retranslated with %s formality", formalityLabel(level)),
			}
		}
	}

	return &model.VariationResult{
		Translation: current,
		Difference:  "Current translation is already optimal",
	}
}

// translate wraps one outbound provider call with the rate limiter and the
// per-call timeout. A timeout counts as a provider failure.
func (s *translationService) translate(ctx context.Context, req translation.Request) (*translation.Result, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()
	if err := s.wait(callCtx); err != nil {
		return nil, err
	}
	return s.provider.Translate(callCtx, req)
}

func (s *translationService) wait(ctx context.Context) error {
	if s.limiter == nil {
		return nil
	}
	if err := s.limiter.Wait(ctx); err != nil {
		return &translation.ProviderError{Provider: s.provider.Name(), Message: "rate limit", Cause: err}
	}
	return nil
}

// scoreRoundTrip computes the accuracy score. The generative provider scores
// semantically; otherwise the deterministic token-overlap scorer is used.
// Scoring failure never fails the request.
func (s *translationService) scoreRoundTrip(ctx context.Context, original, back string) model.AccuracyScore {
	scorer, ok := s.provider.(translation.SemanticScorer)
	if !ok {
		res := similarity.Score(original, back)
		return model.AccuracyScore{Score: res.Score, Explanation: res.Explanation}
	}

	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()
	if err := s.wait(callCtx); err != nil {
		logger.Warn("accuracy scoring skipped",
			"module", "service", "action", "score", "resource", "translation", "result", "degraded",
			"error", err)
		return model.AccuracyScore{Score: 0, Explanation: "Scoring temporarily unavailable"}
	}
	score, err := scorer.Score(callCtx, original, back)
	if err != nil {
		logger.Warn("accuracy scoring failed",
			"module", "service", "action", "score", "resource", "translation", "result", "degraded",
			"error", err)
		return model.AccuracyScore{Score: 0, Explanation: "Scoring temporarily unavailable"}
	}
	return model.AccuracyScore{Score: score.Value, Explanation: score.Explanation}
}

func unavailableVariation(current string, err error) *model.VariationResult {
	return &model.VariationResult{
		Translation: current,
		Difference:  fmt.Sprintf("Variation unavailable: %v", err),
	}
}

func remainingFormalities(used translation.Formality) []translation.Formality {
	all := []translation.Formality{
		translation.FormalityMore,
		translation.FormalityDefault,
		translation.FormalityLess,
	}
	out := make([]translation.Formality, 0, 2)
	for _, f := range all {
		if f != used {
			out = append(out, f)
		}
	}
	return out
}

func formalityLabel(f translation.Formality) string {
	switch f {
	case translation.FormalityMore:
		return "more formal"
	case translation.FormalityLess:
		return "less formal"
	default:
		return "default"
	}
}
