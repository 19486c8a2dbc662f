package translator

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/valpere/xcstran/internal/langcode"
	"github.com/valpere/xcstran/internal/placeholder"
)

const systemInstruction = `You are a professional software localizer translating user interface strings of an Apple application.
The user message is a JSON object with the fields "sourceLanguage", "targetLanguage", "text" and an optional "context" describing where the string appears.
Translate "text" from the source language into the target language.
Rules:
- Keep every placeholder and format specifier (%@, %d, %lld, %1$@, %.2f, %#@name@, {name}) exactly as written; you may move them where the target grammar requires.
- Technical terms and acronyms (URL, API, iCloud, Wi-Fi, PDF, ...) are case-sensitive and stay untranslated.
- Keep leading and trailing punctuation, line breaks and markup.
- Respond with the translated text only: no quotes, no JSON, no notes, no explanations.`

// BuildSystemPrompt returns the system instruction for req, extended with
// the target language name, the format specifiers of the text and any
// glossary terms.
func BuildSystemPrompt(req TranslateRequest) string {
	var sb strings.Builder
	sb.WriteString(systemInstruction)
	sb.WriteString(fmt.Sprintf("\n\nTarget language: %s.", langcode.Describe(req.TargetLang)))

	if hint := placeholder.InstructionHint(req.Text); hint != "" {
		sb.WriteString("\n")
		sb.WriteString(hint)
		sb.WriteString(".")
	}

	if len(req.Glossary) > 0 {
		terms := make([]string, 0, len(req.Glossary))
		for src := range req.Glossary {
			terms = append(terms, src)
		}
		sort.Strings(terms)

		sb.WriteString("\n\nTERMINOLOGY (use these exact translations):\n")
		for _, src := range terms {
			sb.WriteString(fmt.Sprintf("  %s → %s\n", src, req.Glossary[src]))
		}
	}

	return sb.String()
}

// BuildUserPayload returns the JSON request payload sent as the user message.
func BuildUserPayload(req TranslateRequest) (string, error) {
	payload := struct {
		SourceLanguage string `json:"sourceLanguage"`
		TargetLanguage string `json:"targetLanguage"`
		Text           string `json:"text"`
		Context        string `json:"context,omitempty"`
	}{
		SourceLanguage: req.SourceLang,
		TargetLanguage: req.TargetLang,
		Text:           req.Text,
		Context:        req.Context,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal payload: %w", err)
	}
	return string(data), nil
}
