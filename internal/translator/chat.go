package translator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/valpere/xcstran/internal/postprocess"
)

const (
	DefaultChatBaseURL = "https://api.openai.com/v1"
	DefaultChatModel   = "gpt-4o-mini"
)

// ChatService talks to any OpenAI-compatible /chat/completions endpoint
// (OpenAI, OpenRouter, Groq, LM Studio, ...).
type ChatService struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

func NewChatService(apiKey, baseURL, model string) *ChatService {
	if baseURL == "" {
		baseURL = DefaultChatBaseURL
	}
	if model == "" {
		model = DefaultChatModel
	}
	return &ChatService{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		client:  &http.Client{Timeout: 120 * time.Second},
	}
}

func (s *ChatService) Name() string {
	return "chat"
}

func (s *ChatService) Model() string {
	return s.model
}

func (s *ChatService) Translate(ctx context.Context, cfg ServiceConfig, req TranslateRequest) (*ServiceResult, error) {
	result := &ServiceResult{ServiceName: s.Name()}
	start := time.Now()
	defer func() { result.Latency = time.Since(start) }()

	apiKey := s.apiKey
	if cfg.APIKey != "" {
		apiKey = cfg.APIKey
	}
	if apiKey == "" {
		result.Error = "API key required"
		return result, fmt.Errorf("API key required")
	}

	model := s.model
	if cfg.Model != "" {
		model = cfg.Model
	}
	baseURL := s.baseURL
	if cfg.BaseURL != "" {
		baseURL = strings.TrimRight(cfg.BaseURL, "/")
	}

	userPayload, err := BuildUserPayload(req)
	if err != nil {
		result.Error = err.Error()
		return result, err
	}

	chatReq := map[string]interface{}{
		"model": model,
		"messages": []map[string]string{
			{"role": "system", "content": BuildSystemPrompt(req)},
			{"role": "user", "content": userPayload},
		},
		"temperature": 0.2,
	}

	jsonData, err := json.Marshal(chatReq)
	if err != nil {
		result.Error = fmt.Sprintf("failed to marshal request: %v", err)
		return result, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		result.Error = fmt.Sprintf("failed to create request: %v", err)
		return result, err
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+apiKey)
	httpReq.Header.Set("X-Title", "xcstran")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		result.Error = fmt.Sprintf("request failed: %v", err)
		return result, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errResp struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&errResp)
		result.Error = fmt.Sprintf("API returned status %d: %s", resp.StatusCode, errResp.Error.Message)
		return result, fmt.Errorf("API returned status %d: %s", resp.StatusCode, errResp.Error.Message)
	}

	var chatResp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
		Usage struct {
			PromptTokens     int `json:"prompt_tokens"`
			CompletionTokens int `json:"completion_tokens"`
		} `json:"usage"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		result.Error = fmt.Sprintf("failed to decode response: %v", err)
		return result, err
	}

	if len(chatResp.Choices) == 0 {
		result.Error = "empty response from API"
		return result, fmt.Errorf("empty response from API")
	}

	text := postprocess.Clean(req.Text, chatResp.Choices[0].Message.Content)
	if text == "" {
		result.Error = "empty translation in response"
		return result, fmt.Errorf("empty translation in response")
	}

	result.TranslatedText = text
	result.Metadata = map[string]string{
		"model":             model,
		"prompt_tokens":     fmt.Sprintf("%d", chatResp.Usage.PromptTokens),
		"completion_tokens": fmt.Sprintf("%d", chatResp.Usage.CompletionTokens),
	}

	return result, nil
}

func (s *ChatService) IsAvailable(ctx context.Context) error {
	if s.apiKey == "" {
		return fmt.Errorf("API key not configured")
	}
	return nil
}
