package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"os-help-bot/pkg/llm"
)

var _ llm.QuestionAnswerer = &QAProvider{}

// QAProvider calls the Inference API "question-answering" task
// (e.g. distilbert-base-cased-distilled-squad).
type QAProvider struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

type qaRequest struct {
	Inputs qaInputs `json:"inputs"`
}

type qaInputs struct {
	Question string `json:"question"`
	Context  string `json:"context"`
}

type qaResponse struct {
	Answer string   `json:"answer"`
	Score  *float64 `json:"score"`
	Start  int      `json:"start"`
	End    int      `json:"end"`
}

type qaError struct {
	Error string `json:"error"`
}

func NewQAProvider(apiKey, baseURL, model string) *QAProvider {
	if baseURL == "" {
		baseURL = "https://router.huggingface.co/hf-inference/models"
	}
	return &QAProvider{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		client:  &http.Client{},
	}
}

func (p *QAProvider) Answer(ctx context.Context, question, passage string) (llm.Answer, error) {
	jsonData, err := json.Marshal(qaRequest{Inputs: qaInputs{Question: question, Context: passage}})
	if err != nil {
		return llm.Answer{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/%s", p.baseURL, p.model)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return llm.Answer{}, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", p.apiKey))
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return llm.Answer{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return llm.Answer{}, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr qaError
		if json.Unmarshal(bodyBytes, &apiErr) == nil && apiErr.Error != "" {
			return llm.Answer{}, fmt.Errorf("huggingface qa error (status %d): %s", resp.StatusCode, apiErr.Error)
		}
		return llm.Answer{}, fmt.Errorf("huggingface qa error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	return decodeQAResponse(bodyBytes)
}

// decodeQAResponse accepts both the single-object and the top-k list shape.
func decodeQAResponse(body []byte) (llm.Answer, error) {
	trimmed := bytes.TrimSpace(body)
	var parsed qaResponse

	if len(trimmed) > 0 && trimmed[0] == '[' {
		var list []qaResponse
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return llm.Answer{}, fmt.Errorf("failed to decode response: %w", err)
		}
		if len(list) == 0 {
			return llm.Answer{}, fmt.Errorf("empty answer list from huggingface qa")
		}
		parsed = list[0]
	} else if err := json.Unmarshal(trimmed, &parsed); err != nil {
		return llm.Answer{}, fmt.Errorf("failed to decode response: %w", err)
	}

	if parsed.Score == nil {
		return llm.Answer{}, fmt.Errorf("malformed qa response: missing score")
	}

	return llm.Answer{Text: parsed.Answer, Score: *parsed.Score}, nil
}
