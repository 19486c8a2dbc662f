package translator

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestBuildSystemPrompt(t *testing.T) {
	prompt := BuildSystemPrompt(TranslateRequest{
		Text:       "Delete %lld files from %@?",
		SourceLang: "en",
		TargetLang: "fr",
		Glossary:   map[string]string{"file": "fichier", "delete": "supprimer"},
	})

	for _, want := range []string{"French (fr)", "%lld", "%@", "TERMINOLOGY", "delete → supprimer", "file → fichier"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("expected prompt to contain %q", want)
		}
	}
	if strings.Index(prompt, "delete →") > strings.Index(prompt, "file →") {
		t.Error("expected glossary terms in sorted order")
	}
}

func TestBuildSystemPrompt_NoGlossary(t *testing.T) {
	prompt := BuildSystemPrompt(TranslateRequest{Text: "Hello", SourceLang: "en", TargetLang: "de"})
	if strings.Contains(prompt, "TERMINOLOGY") {
		t.Error("unexpected glossary block")
	}
	if !strings.Contains(prompt, "German (de)") {
		t.Errorf("expected target language name in prompt")
	}
}

func TestBuildUserPayload(t *testing.T) {
	payload, err := BuildUserPayload(TranslateRequest{Text: "Hello", SourceLang: "en", TargetLang: "fr"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got map[string]string
	if err := json.Unmarshal([]byte(payload), &got); err != nil {
		t.Fatalf("payload is not JSON: %v", err)
	}
	if got["sourceLanguage"] != "en" || got["targetLanguage"] != "fr" || got["text"] != "Hello" {
		t.Errorf("unexpected payload %v", got)
	}
	if _, ok := got["context"]; ok {
		t.Error("expected context to be omitted when empty")
	}
}
