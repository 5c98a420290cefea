package factory

import (
	"fmt"

	"os-help-bot/pkg/llm"
	"os-help-bot/pkg/llm/huggingface"
	"os-help-bot/pkg/llm/ollama"
	"os-help-bot/pkg/llm/openai"
)

// ProviderConfig selects and configures the generative backend.
type ProviderConfig struct {
	Provider string // "huggingface", "ollama", "openai"
	Model    string
	BaseURL  string
	APIKey   string
}

func NewLLMProvider(cfg ProviderConfig) (llm.LLMProvider, error) {
	switch cfg.Provider {
	case "ollama":
		return ollama.NewOllamaProvider(cfg.BaseURL, cfg.Model), nil
	case "huggingface", "":
		return huggingface.NewHuggingFaceProvider(cfg.APIKey, cfg.BaseURL, cfg.Model), nil
	case "openai":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("openai provider requires an API key")
		}
		return openai.NewOpenAIProvider(cfg.APIKey, cfg.BaseURL, cfg.Model), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}

// NewQuestionAnswerer builds the extractive QA engine. Only the HuggingFace
// inference task is supported.
func NewQuestionAnswerer(apiKey, baseURL, model string) llm.QuestionAnswerer {
	return huggingface.NewQAProvider(apiKey, baseURL, model)
}
