package extractive

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"os-help-bot/internal/pkg/logger"
	"os-help-bot/pkg/llm"
	"os-help-bot/pkg/outcome"
)

// Minimum model confidence for an answer to be used.
const DefaultThreshold = 0.30

var (
	ErrLowConfidence = errors.New("answer below confidence threshold")
	ErrEmptyAnswer   = errors.New("engine returned empty answer")
)

// Answerer asks an extractive QA engine for a span of the support context.
type Answerer struct {
	engine    llm.QuestionAnswerer
	threshold float64
	timeout   time.Duration
	logger    logger.ILogger
}

func NewAnswerer(engine llm.QuestionAnswerer, threshold float64, timeout time.Duration, logger logger.ILogger) *Answerer {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Answerer{
		engine:    engine,
		threshold: threshold,
		timeout:   timeout,
		logger:    logger,
	}
}

// Answer never returns an error; every engine problem becomes a Failure.
func (a *Answerer) Answer(ctx context.Context, question, passage string) outcome.Outcome[string] {
	if a.engine == nil {
		return outcome.Failure[string](errors.New("no question answering engine configured"))
	}

	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	start := time.Now()
	ans, err := a.engine.Answer(ctx, question, passage)
	if err != nil {
		a.logger.Warn("QA", "Question answering engine unavailable", map[string]interface{}{
			"error":       err.Error(),
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return outcome.Failure[string](fmt.Errorf("qa engine: %w", err))
	}

	text := strings.TrimSpace(ans.Text)
	switch {
	case text == "":
		a.logger.Debug("QA", "Empty answer", nil)
		return outcome.Failure[string](ErrEmptyAnswer)
	case ans.Score < a.threshold:
		a.logger.Debug("QA", "Answer below threshold", map[string]interface{}{
			"score":     ans.Score,
			"threshold": a.threshold,
		})
		return outcome.Failure[string](ErrLowConfidence)
	}

	a.logger.Info("QA", "Answer accepted", map[string]interface{}{
		"score":       ans.Score,
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return outcome.Success(text)
}
