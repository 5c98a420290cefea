package refine

import (
	"context"
	"strings"
	"time"

	"os-help-bot/internal/pkg/logger"
	"os-help-bot/pkg/llm"
)

const rephrasePrompt = "Rephrase this to be more user-friendly:\n"

// Config encapsulates generation parameters
type Config struct {
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

// DefaultConfig returns default refine configuration
func DefaultConfig() Config {
	return Config{
		MaxTokens:   150,
		Temperature: 0.7,
		Timeout:     30 * time.Second,
	}
}

// Refiner rewrites answer text with a generative model. Any engine failure
// leaves the text unchanged.
type Refiner struct {
	provider llm.LLMProvider
	config   Config
	logger   logger.ILogger
}

// NewRefiner accepts a nil provider, which makes Refine the identity.
func NewRefiner(provider llm.LLMProvider, config Config, logger logger.ILogger) *Refiner {
	return &Refiner{provider: provider, config: config, logger: logger}
}

func (r *Refiner) Disabled() bool {
	return r.provider == nil
}

func (r *Refiner) Refine(ctx context.Context, text string) string {
	if r.Disabled() {
		return text
	}

	if r.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.config.Timeout)
		defer cancel()
	}

	start := time.Now()
	out, err := r.provider.Generate(ctx, rephrasePrompt+text,
		llm.WithMaxTokens(r.config.MaxTokens),
		llm.WithTemperature(r.config.Temperature),
	)
	if err != nil {
		r.logger.Warn("REFINE", "Generative engine unavailable, using original text", map[string]interface{}{
			"error":       err.Error(),
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return text
	}

	refined := strings.ReplaceAll(strings.TrimSpace(out), "\n", " ")
	if refined == "" {
		r.logger.Warn("REFINE", "Empty rewrite, using original text", nil)
		return text
	}

	r.logger.Debug("REFINE", "Text refined", map[string]interface{}{
		"input_len":   len(text),
		"output_len":  len(refined),
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return refined
}
