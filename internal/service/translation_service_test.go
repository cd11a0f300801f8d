package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"hanmal/backend/internal/model"
	"hanmal/backend/internal/service"
	"hanmal/backend/internal/service/translation"
)

// stubProvider implements only the base Provider interface, like the
// formality-aware backend.
type stubProvider struct {
	name          string
	supportsRules bool
	translate     func(req translation.Request) (*translation.Result, error)
	requests      []translation.Request
}

func (p *stubProvider) Name() string             { return p.name }
func (p *stubProvider) SupportsStyleRules() bool { return p.supportsRules }

func (p *stubProvider) Translate(_ context.Context, req translation.Request) (*translation.Result, error) {
	p.requests = append(p.requests, req)
	return p.translate(req)
}

// stubFullProvider adds the scoring, alternatives and rephrasing capabilities
// of the generative backend.
type stubFullProvider struct {
	stubProvider
	score        func(original, candidate string) (*translation.Score, error)
	alternatives func(word string) ([]translation.Alternative, error)
	rephrase     func(original, current string) (*translation.Variation, error)
}

func (p *stubFullProvider) Score(_ context.Context, original, candidate string) (*translation.Score, error) {
	return p.score(original, candidate)
}

func (p *stubFullProvider) Alternatives(_ context.Context, word, _ string, _, _ translation.Language) ([]translation.Alternative, error) {
	return p.alternatives(word)
}

func (p *stubFullProvider) Rephrase(_ context.Context, original, current string, _ translation.Style) (*translation.Variation, error) {
	return p.rephrase(original, current)
}

type transformLLMStub struct {
	reply string
	err   error
}

func (s *transformLLMStub) Name() string { return "stub" }
func (s *transformLLMStub) Complete(_ context.Context, _, _ string) (string, error) {
	return s.reply, s.err
}
func (s *transformLLMStub) Test(_ context.Context) (string, error) { return s.reply, s.err }

func newProfiles(t *testing.T) service.ProfileService {
	t.Helper()
	return service.NewProfileService(newProfileRepoStub())
}

func echoProvider() func(req translation.Request) (*translation.Result, error) {
	// Maps the happy-path round trip: en -> ko -> en.
	canned := map[string]string{
		"Hello world": "안녕 세상",
		"안녕 세상":        "Hello world",
	}
	return func(req translation.Request) (*translation.Result, error) {
		if out, ok := canned[req.Text]; ok {
			return &translation.Result{Text: out, Confidence: 0.9}, nil
		}
		return &translation.Result{Text: "?" + req.Text, Confidence: 0.5}, nil
	}
}

func TestTranslationService_Translate_EmptyText(t *testing.T) {
	provider := &stubProvider{name: "fake", translate: echoProvider()}
	svc := service.NewTranslationService(provider, nil, newProfiles(t), nil, time.Second)

	_, err := svc.Translate(context.Background(), model.TranslationRequest{Text: "   "})
	require.ErrorIs(t, err, service.ErrInvalid)
}

func TestTranslationService_Translate_FullPipeline(t *testing.T) {
	provider := &stubFullProvider{
		stubProvider: stubProvider{name: "fake", supportsRules: true, translate: echoProvider()},
		score: func(original, candidate string) (*translation.Score, error) {
			return &translation.Score{Value: 95, Explanation: "meaning preserved"}, nil
		},
	}
	svc := service.NewTranslationService(provider, nil, newProfiles(t), nil, time.Second)

	res, err := svc.Translate(context.Background(), model.TranslationRequest{Text: "Hello world"})
	require.NoError(t, err)
	require.Equal(t, "en", res.SourceLanguage)
	require.Equal(t, "ko", res.TargetLanguage)
	require.Equal(t, "안녕 세상", res.Translation)
	require.Equal(t, "Hello world", res.ReTranslation)
	require.Equal(t, 95, res.AccuracyScore.Score)
	require.Equal(t, "natural", res.ProfileUsed)
	require.Nil(t, res.TransformedText)

	// The back-translation must run under the literal profile, not the
	// requested one.
	require.Len(t, provider.requests, 2)
	require.Equal(t, "Natural", provider.requests[0].Style.ProfileName)
	require.Equal(t, "Direct", provider.requests[1].Style.ProfileName)
	require.Equal(t, translation.Korean, provider.requests[1].Source)
	require.Equal(t, translation.English, provider.requests[1].Target)
}

func TestTranslationService_Translate_KoreanDetection(t *testing.T) {
	provider := &stubProvider{name: "fake", translate: func(req translation.Request) (*translation.Result, error) {
		return &translation.Result{Text: "x", Confidence: 1}, nil
	}}
	svc := service.NewTranslationService(provider, nil, newProfiles(t), nil, time.Second)

	res, err := svc.Translate(context.Background(), model.TranslationRequest{Text: "숙제 다 하셨어요?"})
	require.NoError(t, err)
	require.Equal(t, "ko", res.SourceLanguage)
	require.Equal(t, "en", res.TargetLanguage)
}

func TestTranslationService_Translate_BackTranslationFailureIsFatal(t *testing.T) {
	call := 0
	provider := &stubProvider{name: "fake", translate: func(req translation.Request) (*translation.Result, error) {
		call++
		if call == 2 {
			return nil, &translation.ProviderError{Provider: "fake", Message: "boom"}
		}
		return &translation.Result{Text: "ok"}, nil
	}}
	svc := service.NewTranslationService(provider, nil, newProfiles(t), nil, time.Second)

	_, err := svc.Translate(context.Background(), model.TranslationRequest{Text: "Hello"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "back-translate")
}

func TestTranslationService_Translate_ScoringFailureDegrades(t *testing.T) {
	provider := &stubFullProvider{
		stubProvider: stubProvider{name: "fake", supportsRules: true, translate: echoProvider()},
		score: func(original, candidate string) (*translation.Score, error) {
			return nil, errors.New("model overloaded")
		},
	}
	svc := service.NewTranslationService(provider, nil, newProfiles(t), nil, time.Second)

	res, err := svc.Translate(context.Background(), model.TranslationRequest{Text: "Hello world"})
	require.NoError(t, err, "scoring failure must not fail the request")
	require.Equal(t, 0, res.AccuracyScore.Score)
	require.Equal(t, "Scoring temporarily unavailable", res.AccuracyScore.Explanation)
}

func TestTranslationService_Translate_TokenScorerWithoutCapability(t *testing.T) {
	// A provider without semantic scoring falls back to the deterministic
	// token-overlap scorer. A perfect round trip scores 100.
	provider := &stubProvider{name: "fake", translate: echoProvider()}
	svc := service.NewTranslationService(provider, nil, newProfiles(t), nil, time.Second)

	res, err := svc.Translate(context.Background(), model.TranslationRequest{Text: "Hello world"})
	require.NoError(t, err)
	require.Equal(t, 100, res.AccuracyScore.Score)
}

func TestTranslationService_Translate_CustomRulesTransformBeforeFormalityBackend(t *testing.T) {
	provider := &stubProvider{name: "fake", translate: echoProvider()}
	transformer := translation.NewRuleTransformer(&transformLLMStub{reply: "Hello world"})
	svc := service.NewTranslationService(provider, transformer, newProfiles(t), nil, time.Second)

	res, err := svc.Translate(context.Background(), model.TranslationRequest{
		Text:        "Hello there world",
		CustomRules: []string{"Drop filler words"},
	})
	require.NoError(t, err)
	require.NotNil(t, res.TransformedText)
	require.Equal(t, "Hello world", *res.TransformedText)
	require.Contains(t, res.TranslationNotes, "Applied custom rules: Drop filler words")
	require.Equal(t, "Hello world", provider.requests[0].Text, "transformed text feeds the translation")
	require.Equal(t, "Hello there world", res.Original, "original input is reported unchanged")
}

func TestTranslationService_Translate_TransformFailureDegrades(t *testing.T) {
	provider := &stubProvider{name: "fake", translate: echoProvider()}
	transformer := translation.NewRuleTransformer(&transformLLMStub{err: errors.New("timeout")})
	svc := service.NewTranslationService(provider, transformer, newProfiles(t), nil, time.Second)

	res, err := svc.Translate(context.Background(), model.TranslationRequest{
		Text:        "Hello world",
		CustomRules: []string{"Drop filler words"},
	})
	require.NoError(t, err, "transform failure must not fail the request")
	require.Nil(t, res.TransformedText)
	require.Contains(t, res.TranslationNotes, "Custom rules skipped")
	require.Equal(t, "Hello world", provider.requests[0].Text)
}

func TestTranslationService_Alternatives(t *testing.T) {
	provider := &stubFullProvider{
		stubProvider: stubProvider{name: "fake", supportsRules: true, translate: echoProvider()},
		alternatives: func(word string) ([]translation.Alternative, error) {
			return []translation.Alternative{{Text: "집", Nuance: "the building"}}, nil
		},
	}
	svc := service.NewTranslationService(provider, nil, newProfiles(t), nil, time.Second)

	alts, err := svc.Alternatives(context.Background(), "home", "I miss home", "en", "ko")
	require.NoError(t, err)
	require.Len(t, alts, 1)
	require.Equal(t, "집", alts[0].Text)

	_, err = svc.Alternatives(context.Background(), "  ", "", "", "")
	require.ErrorIs(t, err, service.ErrInvalid)
}

func TestTranslationService_Alternatives_WithoutCapability(t *testing.T) {
	provider := &stubProvider{name: "fake", translate: echoProvider()}
	svc := service.NewTranslationService(provider, nil, newProfiles(t), nil, time.Second)

	alts, err := svc.Alternatives(context.Background(), "home", "", "en", "ko")
	require.NoError(t, err)
	require.Len(t, alts, 1)
	require.Equal(t, "home", alts[0].Text)
	require.Equal(t, "No alternatives available", alts[0].Nuance)
}

func TestTranslationService_Variation_Rephraser(t *testing.T) {
	provider := &stubFullProvider{
		stubProvider: stubProvider{name: "fake", supportsRules: true, translate: echoProvider()},
		rephrase: func(original, current string) (*translation.Variation, error) {
			return &translation.Variation{Translation: "안녕하세요 세상", Difference: "more formal greeting"}, nil
		},
	}
	svc := service.NewTranslationService(provider, nil, newProfiles(t), nil, time.Second)

	v, err := svc.Variation(context.Background(), "Hello world", "안녕 세상", "", nil)
	require.NoError(t, err)
	require.Equal(t, "안녕하세요 세상", v.Translation)
	require.Equal(t, "more formal greeting", v.Difference)
}

func TestTranslationService_Variation_RephraseFailureDegrades(t *testing.T) {
	provider := &stubFullProvider{
		stubProvider: stubProvider{name: "fake", supportsRules: true, translate: echoProvider()},
		rephrase: func(original, current string) (*translation.Variation, error) {
			return nil, errors.New("model overloaded")
		},
	}
	svc := service.NewTranslationService(provider, nil, newProfiles(t), nil, time.Second)

	v, err := svc.Variation(context.Background(), "Hello world", "안녕 세상", "", nil)
	require.NoError(t, err, "variation failure must not fail the request")
	require.Equal(t, "안녕 세상", v.Translation)
	require.Contains(t, v.Difference, "Variation unavailable")
}

func TestTranslationService_Variation_FormalityCycling(t *testing.T) {
	provider := &stubProvider{name: "fake", translate: func(req translation.Request) (*translation.Result, error) {
		if req.Style.Formality == translation.FormalityLess {
			return &translation.Result{Text: "Hey world"}, nil
		}
		return &translation.Result{Text: "Hello world"}, nil
	}}
	svc := service.NewTranslationService(provider, nil, newProfiles(t), nil, time.Second)

	// The natural profile uses prefer_more, so the variation retranslates
	// with the remaining levels and must return a different wording.
	v, err := svc.Variation(context.Background(), "안녕 세상", "Hello world", "natural", nil)
	require.NoError(t, err)
	require.Equal(t, "Hey world", v.Translation)
	require.Contains(t, v.Difference, "formality")
}

func TestTranslationService_Variation_AlreadyOptimal(t *testing.T) {
	provider := &stubProvider{name: "fake", translate: func(req translation.Request) (*translation.Result, error) {
		return &translation.Result{Text: "Hello world"}, nil
	}}
	svc := service.NewTranslationService(provider, nil, newProfiles(t), nil, time.Second)

	v, err := svc.Variation(context.Background(), "안녕 세상", "Hello world", "natural", nil)
	require.NoError(t, err)
	require.Equal(t, "Hello world", v.Translation)
	require.Equal(t, "Current translation is already optimal", v.Difference)
	require.Len(t, provider.requests, 2, "both remaining formality levels are tried")
}

func TestTranslationService_Variation_EmptyInput(t *testing.T) {
	provider := &stubProvider{name: "fake", translate: echoProvider()}
	svc := service.NewTranslationService(provider, nil, newProfiles(t), nil, time.Second)

	_, err := svc.Variation(context.Background(), "", "Hello", "", nil)
	require.ErrorIs(t, err, service.ErrInvalid)

	_, err = svc.Variation(context.Background(), "안녕", "", "", nil)
	require.ErrorIs(t, err, service.ErrInvalid)
}
