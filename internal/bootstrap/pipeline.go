package bootstrap

import (
	"fmt"
	"log"

	"os-help-bot/internal/config"
	"os-help-bot/internal/pkg/logger"
	"os-help-bot/internal/repository/memory"
	"os-help-bot/pkg/knowledge"
	"os-help-bot/pkg/llm"
	"os-help-bot/pkg/llm/factory"
	"os-help-bot/pkg/rag/executor"
	"os-help-bot/pkg/rag/extractive"
	"os-help-bot/pkg/rag/intent"
	"os-help-bot/pkg/rag/refine"
	"os-help-bot/pkg/rag/search"
	"os-help-bot/pkg/rag/session"
	"os-help-bot/pkg/rag/state"

	"github.com/redis/go-redis/v9"
)

// NewPipeline builds the answer pipeline on a fresh in-memory session store.
// rdb may be nil; the search cache is then skipped. LLM_PROVIDER=none turns
// refinement off.
func NewPipeline(cfg *config.Config, rdb *redis.Client, sysLogger logger.ILogger) (*executor.Orchestrator, *session.Manager, error) {
	qaEngine := factory.NewQuestionAnswerer(cfg.Keys.HuggingFace, cfg.Ai.QABaseURL, cfg.Ai.QAModel)

	var refineProvider llm.LLMProvider
	if cfg.Ai.LLMProvider != "none" {
		p, err := factory.NewLLMProvider(factory.ProviderConfig{
			Provider: cfg.Ai.LLMProvider,
			Model:    cfg.Ai.LLMModel,
			BaseURL:  llmBaseURL(cfg),
			APIKey:   llmAPIKey(cfg),
		})
		if err != nil {
			return nil, nil, fmt.Errorf("llm provider: %w", err)
		}
		refineProvider = p
		log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)
	} else {
		log.Printf("[INFO] Refinement disabled")
	}

	retriever := search.NewRetriever(
		search.NewDuckDuckGoSearcher(search.DefaultDuckDuckGoURL, cfg.Search.UserAgent),
		search.NewHTMLPageFetcher(cfg.Search.UserAgent),
		search.Config{
			TopK:          cfg.Search.TopK,
			SearchTimeout: cfg.Search.Timeout,
			FetchTimeout:  cfg.Search.FetchTimeout,
			CacheTTL:      cfg.Search.CacheTTL,
		},
		sysLogger,
	)
	if rdb != nil && cfg.Search.CacheTTL > 0 {
		retriever.WithCache(search.NewRedisCache(rdb, sysLogger))
	}

	sessions := session.NewManager(memory.NewSessionRepository(), sysLogger)
	orchestrator := executor.NewOrchestrator(executor.Dependencies{
		Sessions:   sessions,
		Onboarding: state.NewManager(sysLogger),
		Intents:    intent.NewResolver(),
		Knowledge:  knowledge.Default(),
		Answerer:   extractive.NewAnswerer(qaEngine, cfg.Pipeline.QAThreshold, cfg.Pipeline.QATimeout, sysLogger),
		Retriever:  retriever,
		Refiner: refine.NewRefiner(refineProvider, refine.Config{
			MaxTokens:   cfg.Pipeline.RefineMaxTokens,
			Temperature: cfg.Pipeline.RefineTemp,
			Timeout:     cfg.Pipeline.RefineTimeout,
		}, sysLogger),
	}, executor.Config{
		TopK:             cfg.Search.TopK,
		RetrievalTimeout: cfg.Pipeline.RetrievalTimeout,
		SupportContext:   knowledge.SupportContext,
	}, sysLogger)

	return orchestrator, sessions, nil
}

func llmBaseURL(cfg *config.Config) string {
	if cfg.Ai.LLMProvider == "ollama" && cfg.Ai.LLMBaseURL == "" {
		return cfg.Ai.OllamaBaseURL
	}
	return cfg.Ai.LLMBaseURL
}

func llmAPIKey(cfg *config.Config) string {
	if cfg.Ai.LLMProvider == "openai" {
		return cfg.Keys.OpenAI
	}
	return cfg.Keys.HuggingFace
}
