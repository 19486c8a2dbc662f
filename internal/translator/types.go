package translator

import (
	"context"
	"time"
)

// ServiceConfig carries the resolved provider settings. Values set here
// override the ones a service was constructed with.
type ServiceConfig struct {
	APIKey  string        `mapstructure:"api_key" json:"api_key"`
	Model   string        `mapstructure:"model" json:"model"`
	BaseURL string        `mapstructure:"host" json:"host"`
	Timeout time.Duration `mapstructure:"timeout" json:"timeout"`
}

// TranslateRequest is one (entry, target language) translation.
type TranslateRequest struct {
	Text       string `json:"text"`
	SourceLang string `json:"sourceLanguage"`
	TargetLang string `json:"targetLanguage"`
	// Context is the catalog comment for the entry, if any.
	Context string `json:"context,omitempty"`
	// Glossary maps source terms to their required translations.
	Glossary map[string]string `json:"-"`
}

type ServiceResult struct {
	ServiceName    string            `json:"service_name"`
	TranslatedText string            `json:"translated_text"`
	Metadata       map[string]string `json:"metadata"`
	Latency        time.Duration     `json:"latency"`
	Cached         bool              `json:"cached"`
	Error          string            `json:"error,omitempty"`
}

// TranslationService is a text-generation provider able to translate one
// string per call.
type TranslationService interface {
	Name() string
	Translate(ctx context.Context, cfg ServiceConfig, req TranslateRequest) (*ServiceResult, error)
	IsAvailable(ctx context.Context) error
}
