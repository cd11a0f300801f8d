package translation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"hanmal/backend/internal/logger"
)

const (
	deeplName           = "deepl"
	deeplDefaultBaseURL = "https://api-free.deepl.com"
	deeplMaxBody        = 1 << 20
)

// DeepL is the formality-aware translation backend. It is deterministic,
// produces no explanations, and supports the three-level formality dial for
// target languages that accept it.
type DeepL struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewDeepL builds the client. A missing key is logged, not rejected: the
// process can start without credentials and the first API call reports the
// real authentication failure.
func NewDeepL(apiKey, baseURL string) *DeepL {
	if baseURL == "" {
		baseURL = deeplDefaultBaseURL
	}
	if apiKey == "" {
		logger.Warn("deepl api key missing, calls will fail until configured",
			"module", "translation", "action", "init", "resource", "deepl", "result", "degraded")
	}
	return &DeepL{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Name returns the backend name.
func (d *DeepL) Name() string {
	return deeplName
}

// SupportsStyleRules reports false: DeepL has no rule concept, custom rules
// go through the rule-transformation pass instead.
func (d *DeepL) SupportsStyleRules() bool {
	return false
}

type deeplRequest struct {
	Text       []string `json:"text"`
	SourceLang string   `json:"source_lang,omitempty"`
	TargetLang string   `json:"target_lang"`
	Formality  string   `json:"formality,omitempty"`
}

type deeplResponse struct {
	Translations []struct {
		DetectedSourceLanguage string `json:"detected_source_language"`
		Text                   string `json:"text"`
	} `json:"translations"`
}

type deeplErrorBody struct {
	Message string `json:"message"`
}

// Translate sends the text with the requested formality hint first; when the
// backend rejects the hint for the language pair it retries once without it.
// The retry is required behavior, not an error to surface.
func (d *DeepL) Translate(ctx context.Context, req Request) (*Result, error) {
	formality := string(req.Style.Formality)
	if formality == string(FormalityDefault) {
		// DeepL's default, nothing to send.
		formality = ""
	}

	text, err := d.call(ctx, req, formality)
	if errors.Is(err, ErrFormalityUnsupported) {
		logger.Warn("deepl rejected formality hint, retrying without it",
			"module", "translation", "action", "translate", "resource", "deepl", "result", "retry",
			"target", string(req.Target), "formality", formality)
		text, err = d.call(ctx, req, "")
	}
	if err != nil {
		return nil, err
	}
	return &Result{Text: text, Confidence: 1.0}, nil
}

func (d *DeepL) call(ctx context.Context, req Request, formality string) (string, error) {
	body, err := json.Marshal(deeplRequest{
		Text:       []string{req.Text},
		SourceLang: strings.ToUpper(string(req.Source)),
		TargetLang: wireTarget(req.Target),
		Formality:  formality,
	})
	if err != nil {
		return "", &ProviderError{Provider: deeplName, Message: "encode request", Cause: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, d.baseURL+"/v2/translate", bytes.NewReader(body))
	if err != nil {
		return "", &ProviderError{Provider: deeplName, Message: "build request", Cause: err}
	}
	httpReq.Header.Set("Authorization", "DeepL-Auth-Key "+d.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(httpReq)
	if err != nil {
		return "", &ProviderError{Provider: deeplName, Message: "request failed", Cause: err}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, deeplMaxBody))
	if err != nil {
		return "", &ProviderError{Provider: deeplName, Message: "read response", Cause: err}
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr deeplErrorBody
		_ = json.Unmarshal(payload, &apiErr)
		if resp.StatusCode == http.StatusBadRequest && formality != "" &&
			strings.Contains(strings.ToLower(apiErr.Message), "formality") {
			return "", ErrFormalityUnsupported
		}
		msg := apiErr.Message
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return "", &ProviderError{Provider: deeplName, Message: fmt.Sprintf("status %d: %s", resp.StatusCode, msg)}
	}

	var decoded deeplResponse
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return "", &ProviderError{Provider: deeplName, Message: "decode response", Cause: err}
	}
	if len(decoded.Translations) == 0 {
		return "", &ProviderError{Provider: deeplName, Message: "empty response"}
	}
	return decoded.Translations[0].Text, nil
}

// wireTarget maps a two-letter code to the regional variant DeepL expects on
// the wire. Results always report the plain two-letter code regardless.
func wireTarget(lang Language) string {
	switch lang {
	case English:
		return "EN-US"
	case Korean:
		return "KO"
	default:
		return strings.ToUpper(string(lang))
	}
}
