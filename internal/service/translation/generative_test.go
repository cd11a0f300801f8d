package translation_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"hanmal/backend/internal/service/translation"
)

type llmStub struct {
	reply string
	err   error
	// captured from the last Complete call
	lastSystem  string
	lastContent string
}

func (s *llmStub) Name() string { return "stub" }

func (s *llmStub) Complete(_ context.Context, systemPrompt, content string) (string, error) {
	s.lastSystem = systemPrompt
	s.lastContent = content
	return s.reply, s.err
}

func (s *llmStub) Test(_ context.Context) (string, error) { return s.reply, s.err }

func TestGenerative_Translate_ParsesJSON(t *testing.T) {
	stub := &llmStub{reply: `{"translation": "안녕하세요", "confidence": 0.95, "notes": "formal greeting"}`}
	g := translation.NewGenerative(stub)

	res, err := g.Translate(context.Background(), translation.Request{
		Text:   "Hello",
		Source: translation.English,
		Target: translation.Korean,
	})
	require.NoError(t, err)
	require.Equal(t, "안녕하세요", res.Text)
	require.Equal(t, 0.95, res.Confidence)
	require.Equal(t, "formal greeting", res.Notes)
}

func TestGenerative_Translate_StripsCodeFence(t *testing.T) {
	stub := &llmStub{reply: "```json\n{\"translation\": \"hi\", \"confidence\": 0.9, \"notes\": \"\"}\n```"}
	g := translation.NewGenerative(stub)

	res, err := g.Translate(context.Background(), translation.Request{Text: "안녕", Source: translation.Korean, Target: translation.English})
	require.NoError(t, err)
	require.Equal(t, "hi", res.Text)
}

func TestGenerative_Translate_MalformedReplyFallsBack(t *testing.T) {
	stub := &llmStub{reply: "Sure! The translation is: hello there"}
	g := translation.NewGenerative(stub)

	res, err := g.Translate(context.Background(), translation.Request{Text: "안녕", Source: translation.Korean, Target: translation.English})
	require.NoError(t, err, "malformed reply must degrade, not fail")
	require.Equal(t, "Sure! The translation is: hello there", res.Text)
	require.Equal(t, 0.8, res.Confidence)
}

func TestGenerative_Translate_BackendError(t *testing.T) {
	stub := &llmStub{err: errors.New("connection refused")}
	g := translation.NewGenerative(stub)

	_, err := g.Translate(context.Background(), translation.Request{Text: "hi", Source: translation.English, Target: translation.Korean})
	require.Error(t, err)

	var provErr *translation.ProviderError
	require.ErrorAs(t, err, &provErr)
	require.Equal(t, "generative", provErr.Provider)
}

func TestGenerative_Translate_PromptCarriesStyle(t *testing.T) {
	stub := &llmStub{reply: `{"translation": "x", "confidence": 1, "notes": ""}`}
	g := translation.NewGenerative(stub)

	_, err := g.Translate(context.Background(), translation.Request{
		Text:   "hi",
		Source: translation.English,
		Target: translation.Korean,
		Style: translation.Style{
			ProfileName: "Parent Talk",
			Description: "Warm tone",
			Rules:       []string{"Use respectful speech levels"},
		},
	})
	require.NoError(t, err)
	require.Contains(t, stub.lastSystem, "Parent Talk")
	require.Contains(t, stub.lastSystem, "1. Use respectful speech levels")
	require.Equal(t, "hi", stub.lastContent)
}

func TestGenerative_Score_ClampsRange(t *testing.T) {
	stub := &llmStub{reply: `{"score": 150, "explanation": "perfect"}`}
	g := translation.NewGenerative(stub)

	score, err := g.Score(context.Background(), "hello", "hello")
	require.NoError(t, err)
	require.Equal(t, 100, score.Value)

	stub.reply = `{"score": -10, "explanation": "lost"}`
	score, err = g.Score(context.Background(), "hello", "goodbye")
	require.NoError(t, err)
	require.Equal(t, 0, score.Value)
}

func TestGenerative_Score_MalformedReplyFallsBack(t *testing.T) {
	stub := &llmStub{reply: "I'd rate this about 80 out of 100"}
	g := translation.NewGenerative(stub)

	score, err := g.Score(context.Background(), "a", "b")
	require.NoError(t, err)
	require.Equal(t, 75, score.Value)
	require.Equal(t, "Unable to calculate precise score", score.Explanation)
}

func TestGenerative_Alternatives_ParsesArray(t *testing.T) {
	stub := &llmStub{reply: `[{"text": "집", "nuance": "house, the building"}, {"text": "가정", "nuance": "home, the family unit"}]`}
	g := translation.NewGenerative(stub)

	alts, err := g.Alternatives(context.Background(), "home", "I miss home", translation.English, translation.Korean)
	require.NoError(t, err)
	require.Len(t, alts, 2)
	require.Equal(t, "집", alts[0].Text)
	require.Equal(t, "home, the family unit", alts[1].Nuance)
}

func TestGenerative_Alternatives_MalformedReplyFallsBack(t *testing.T) {
	stub := &llmStub{reply: "no json here"}
	g := translation.NewGenerative(stub)

	alts, err := g.Alternatives(context.Background(), "home", "", translation.English, translation.Korean)
	require.NoError(t, err)
	require.Len(t, alts, 1)
	require.Equal(t, "home", alts[0].Text)
	require.Equal(t, "No alternatives found", alts[0].Nuance)
}

func TestGenerative_Rephrase_EmptyTranslationFallsBack(t *testing.T) {
	stub := &llmStub{reply: `{"translation": "", "difference": "nothing"}`}
	g := translation.NewGenerative(stub)

	v, err := g.Rephrase(context.Background(), "hello", "안녕하세요", translation.Style{ProfileName: "Natural"})
	require.NoError(t, err)
	require.Equal(t, "안녕하세요", v.Translation)
	require.Equal(t, "Could not generate variation", v.Difference)
}
