package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"os-help-bot/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateUsesCompletionEndpoint(t *testing.T) {
	var got generateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"response":"Restart the adapter.","done":true}`))
	}))
	defer srv.Close()

	out, err := NewOllamaProvider(srv.URL, "llama3").Generate(context.Background(), "rephrase: x",
		llm.WithTemperature(0.2), llm.WithMaxTokens(150))

	require.NoError(t, err)
	assert.Equal(t, "Restart the adapter.", out)
	assert.Equal(t, "llama3", got.Model)
	assert.Equal(t, "rephrase: x", got.Prompt)
	assert.False(t, got.Stream)
	assert.Equal(t, 150, got.Options.NumPredict)
	assert.Equal(t, 0.2, got.Options.Temperature)
}

func TestChatMapsRolesAndModel(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"message":{"role":"assistant","content":"ok"},"done":true}`))
	}))
	defer srv.Close()

	history := []llm.Message{{Role: "model", Content: "earlier"}, {Role: "user", Content: "now"}}
	out, err := NewOllamaProvider(srv.URL, "llama3").Chat(context.Background(), history, llm.WithModel("mistral"))

	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.Equal(t, "mistral", got.Model)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "assistant", got.Messages[0].Role)
	assert.Equal(t, "model", history[0].Role)
	assert.Equal(t, 500, got.Options.NumPredict)
}

func TestProviderErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "http status", status: http.StatusNotFound, body: `{"error":"model not found"}`},
		{name: "error field", status: http.StatusOK, body: `{"error":"out of memory"}`},
		{name: "garbled body", status: http.StatusOK, body: `{"response":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			p := NewOllamaProvider(srv.URL, "llama3")
			_, err := p.Generate(context.Background(), "x")
			assert.Error(t, err)
			_, err = p.Chat(context.Background(), []llm.Message{{Role: "user", Content: "x"}})
			assert.Error(t, err)
		})
	}
}

func TestDefaultBaseURL(t *testing.T) {
	assert.Equal(t, DefaultBaseURL, NewOllamaProvider("", "llama3").BaseURL())
}
