package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Keys     APIKeys
	Ai       AIConfig
	Search   SearchConfig
	Pipeline PipelineConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	EventTopic         string // In-process topic for resolved turns
}

type DatabaseConfig struct {
	Connection string // Empty disables the transcript store
}

type APIKeys struct {
	HuggingFace string
	OpenAI      string
}

type AIConfig struct {
	QABaseURL     string // HuggingFace inference endpoint for question-answering
	QAModel       string // e.g. "distilbert/distilbert-base-cased-distilled-squad"
	LLMProvider   string // "huggingface", "ollama", "openai"
	LLMModel      string
	LLMBaseURL    string
	OllamaBaseURL string
}

type SearchConfig struct {
	TopK         int
	Timeout      time.Duration // Search provider call
	FetchTimeout time.Duration // Per-URL page fetch
	UserAgent    string
	CacheTTL     time.Duration // Redis result cache; 0 disables
}

type PipelineConfig struct {
	QAThreshold      float64
	QATimeout        time.Duration
	RefineMaxTokens  int
	RefineTemp       float64
	RefineTimeout    time.Duration
	RetrievalTimeout time.Duration // Whole web retrieval step
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", ""),
			EventTopic:         getEnv("SUPPORT_EVENT_TOPIC", "SUPPORT_TURN_RESOLVED"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Keys: APIKeys{
			HuggingFace: getEnv("HUGGINGFACE_API_KEY", ""),
			OpenAI:      getEnv("OPENAI_API_KEY", ""),
		},
		Ai: AIConfig{
			QABaseURL:     getEnv("QA_BASE_URL", "https://router.huggingface.co/hf-inference/models"),
			QAModel:       getEnv("QA_MODEL", "distilbert/distilbert-base-cased-distilled-squad"),
			LLMProvider:   getEnv("LLM_PROVIDER", "huggingface"),
			LLMModel:      getEnv("LLM_MODEL", "meta-llama/Llama-3.1-8B-Instruct"),
			LLMBaseURL:    getEnv("LLM_BASE_URL", ""),
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
		},
		Search: SearchConfig{
			TopK:         getEnvAsInt("SEARCH_TOP_K", 3),
			Timeout:      getEnvAsDuration("SEARCH_TIMEOUT", 10*time.Second),
			FetchTimeout: getEnvAsDuration("SEARCH_FETCH_TIMEOUT", 8*time.Second),
			UserAgent:    getEnv("SEARCH_USER_AGENT", "Mozilla/5.0 (compatible; OSHelpBot/1.0)"),
			CacheTTL:     getEnvAsDuration("SEARCH_CACHE_TTL", 15*time.Minute),
		},
		Pipeline: PipelineConfig{
			QAThreshold:      getEnvAsFloat("QA_CONFIDENCE_THRESHOLD", 0.30),
			QATimeout:        getEnvAsDuration("QA_TIMEOUT", 15*time.Second),
			RefineMaxTokens:  getEnvAsInt("REFINE_MAX_TOKENS", 150),
			RefineTemp:       getEnvAsFloat("REFINE_TEMPERATURE", 0.7),
			RefineTimeout:    getEnvAsDuration("REFINE_TIMEOUT", 30*time.Second),
			RetrievalTimeout: getEnvAsDuration("RETRIEVAL_TIMEOUT", 25*time.Second),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

// getEnvAsDuration accepts Go duration strings ("10s", "1m30s").
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
