package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DatabaseURL string

	Provider        string
	Model           string
	OpenAIAPIKey    string
	OpenAIBaseURL   string
	AnthropicAPIKey string

	PineconeAPIKey    string
	PineconeIndexName string

	Workers     int
	MaxAttempts int
	MinBackoff  time.Duration
	MaxBackoff  time.Duration
	Temperature float64
	MaxTokens   int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("[INFO] No .env file found, using environment variables")
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: os.Getenv("DB_URL"),

		Provider:        getEnv("LLM_PROVIDER", "openai"),
		Model:           getEnv("LLM_MODEL", "gpt-4o-mini"),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:   os.Getenv("OPENAI_BASE_URL"),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),

		PineconeAPIKey:    os.Getenv("PINECONE_API_KEY"),
		PineconeIndexName: getEnv("PINECONE_INDEX_NAME", "unitmapper-categories"),

		Workers:     getEnvInt("CLASSIFY_WORKERS", 4),
		MaxAttempts: getEnvInt("CLASSIFY_MAX_ATTEMPTS", 3),
		MinBackoff:  getEnvDuration("CLASSIFY_MIN_BACKOFF", time.Second),
		MaxBackoff:  getEnvDuration("CLASSIFY_MAX_BACKOFF", 30*time.Second),
		Temperature: getEnvFloat("CLASSIFY_TEMPERATURE", 0.0),
		MaxTokens:   getEnvInt("CLASSIFY_MAX_TOKENS", 256),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("[WARN] Invalid value for %s: %q, using default %d", key, value, fallback)
		return fallback
	}
	return parsed
}

func getEnvFloat(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Printf("[WARN] Invalid value for %s: %q, using default %g", key, value, fallback)
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("[WARN] Invalid value for %s: %q, using default %s", key, value, fallback)
		return fallback
	}
	return parsed
}
