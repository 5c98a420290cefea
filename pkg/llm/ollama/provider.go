package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"os-help-bot/pkg/llm"
)

// DefaultBaseURL is where a local ollama daemon listens.
const DefaultBaseURL = "http://localhost:11434"

var _ llm.LLMProvider = &OllamaProvider{}

// OllamaProvider talks to a self-hosted ollama daemon. Generate uses the
// completion endpoint; Chat uses the chat endpoint.
type OllamaProvider struct {
	baseURL string
	model   string
	client  *http.Client
}

type modelOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type generateRequest struct {
	Model   string       `json:"model"`
	Prompt  string       `json:"prompt"`
	Stream  bool         `json:"stream"`
	Options modelOptions `json:"options"`
}

type generateResponse struct {
	Response string `json:"response"`
	Error    string `json:"error,omitempty"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []llm.Message `json:"messages"`
	Stream   bool          `json:"stream"`
	Options  modelOptions  `json:"options"`
}

type chatResponse struct {
	Message llm.Message `json:"message"`
	Error   string      `json:"error,omitempty"`
}

func NewOllamaProvider(baseURL, model string) *OllamaProvider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &OllamaProvider{
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{Timeout: 2 * time.Minute},
	}
}

// BaseURL reports the daemon address requests go to.
func (p *OllamaProvider) BaseURL() string {
	return p.baseURL
}

func (p *OllamaProvider) options(options []llm.Option) llm.Options {
	return llm.ApplyOptions(llm.Options{
		Model:     p.model,
		MaxTokens: 500,
	}, options...)
}

func (p *OllamaProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	opts := p.options(options)

	var out generateResponse
	err := p.post(ctx, "/api/generate", generateRequest{
		Model:   opts.Model,
		Prompt:  prompt,
		Options: modelOptions{Temperature: opts.Temperature, NumPredict: opts.MaxTokens},
	}, &out)
	if err != nil {
		return "", err
	}
	if out.Error != "" {
		return "", fmt.Errorf("ollama returned error: %s", out.Error)
	}
	return out.Response, nil
}

func (p *OllamaProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	opts := p.options(options)

	messages := make([]llm.Message, len(history))
	for i, m := range history {
		messages[i] = m
		// ollama has no "model" role
		if m.Role == "model" {
			messages[i].Role = "assistant"
		}
	}

	var out chatResponse
	err := p.post(ctx, "/api/chat", chatRequest{
		Model:    opts.Model,
		Messages: messages,
		Options:  modelOptions{Temperature: opts.Temperature, NumPredict: opts.MaxTokens},
	}, &out)
	if err != nil {
		return "", err
	}
	if out.Error != "" {
		return "", fmt.Errorf("ollama returned error: %s", out.Error)
	}
	return out.Message.Content, nil
}

func (p *OllamaProvider) post(ctx context.Context, path string, body, out interface{}) error {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ollama api error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}
	if err := json.Unmarshal(bodyBytes, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
