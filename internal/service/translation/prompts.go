package translation

import (
	"fmt"
	"strings"
)

func languageName(lang Language) string {
	switch lang {
	case Korean:
		return "Korean"
	case English:
		return "English"
	default:
		return string(lang)
	}
}

func enumerateRules(rules []string) string {
	if len(rules) == 0 {
		return "(none)\n"
	}
	var b strings.Builder
	for i, rule := range rules {
		fmt.Fprintf(&b, "%d. %s\n", i+1, rule)
	}
	return b.String()
}

// GetTranslatePrompt returns the system prompt for profile-driven translation.
func GetTranslatePrompt(style Style, source, target Language) string {
	return fmt.Sprintf(`You are an expert %s-%s translator.

<style_profile>
<name>%s</name>
<description>%s</description>
<rules>
%s</rules>
</style_profile>

<instructions>
1. Translate the user text from %s into %s
2. Apply the style profile above to the translation
3. Respond with STRICT JSON only. NEVER wrap it in markdown code blocks, NEVER add commentary
4. JSON shape: {"translation": string, "confidence": number between 0 and 1, "notes": string}
5. "notes" briefly names nuance choices worth knowing about, or is empty
</instructions>`,
		languageName(source), languageName(target),
		style.ProfileName, style.Description, enumerateRules(style.Rules),
		languageName(source), languageName(target))
}

// GetScorePrompt returns the system prompt for semantic round-trip scoring.
func GetScorePrompt() string {
	return `You are an expert translation evaluator. Compare an original text with its back-translation and judge how much meaning was preserved.

<instructions>
1. Score semantic preservation from 0 (meaning lost) to 100 (meaning fully preserved)
2. Ignore word order, synonyms and register differences that keep the meaning intact
3. Respond with STRICT JSON only. NEVER wrap it in markdown code blocks
4. JSON shape: {"score": integer 0-100, "explanation": string, one short sentence}
</instructions>`
}

// GetAlternativesPrompt returns the system prompt for word-alternative lookup.
func GetAlternativesPrompt(source, target Language) string {
	return fmt.Sprintf(`You are an expert %s-%s translator. The user highlights one word inside a sentence and wants other ways to translate that word.

<instructions>
1. Give exactly 5 alternative %s translations of the highlighted word, fitting the sentence context
2. For each, explain the nuance difference in one short phrase
3. Respond with STRICT JSON only: a JSON array, no markdown code blocks
4. Array element shape: {"text": string, "nuance": string}
</instructions>`,
		languageName(source), languageName(target), languageName(target))
}

// GetVariationPrompt returns the system prompt for rephrasing an existing
// translation.
func GetVariationPrompt(style Style) string {
	return fmt.Sprintf(`You are an expert Korean-English translator. The user has a translation and wants it worded differently while keeping the same meaning.

<style_profile>
<name>%s</name>
<description>%s</description>
</style_profile>

<instructions>
1. Produce a DIFFERENT wording of the translation, same meaning, same target language
2. Prefer idiomatic, colloquial phrasing where the profile allows it
3. NEVER return the current translation unchanged
4. Respond with STRICT JSON only, no markdown code blocks
5. JSON shape: {"translation": string, "difference": string, one short sentence on what changed}
</instructions>`,
		style.ProfileName, style.Description)
}

// GetRuleTransformPrompt returns the system prompt for the intra-language
// rule rewrite used on the formality-aware path.
func GetRuleTransformPrompt(rules []string, source Language) string {
	return fmt.Sprintf(`You are an expert %s editor. Rewrite the user text applying the style rules below.

<rules>
%s</rules>

<instructions>
1. The rewrite MUST stay in %s. Do NOT translate
2. Apply every rule; keep the meaning unchanged
3. Output ONLY the rewritten text, nothing else
4. NO quotes around the output, NO explanations, NO markdown
</instructions>`,
		languageName(source), enumerateRules(rules), languageName(source))
}
