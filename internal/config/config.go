package config

import (
	"os"
	"strconv"
	"time"
)

// Environment names controlling provider selection.
const (
	EnvLocal      = "local"
	EnvProduction = "production"
)

// Config holds all runtime configuration. It is built from environment
// variables on every Load call and passed into components explicitly;
// nothing in the application reads the environment after startup.
type Config struct {
	Env string

	Database  DatabaseConfig
	Meili     MeiliConfig
	LLM       LLMConfig
	Embedding EmbeddingConfig
	Server    ServerConfig
	Worker    WorkerConfig
}

// DatabaseConfig holds PostgreSQL connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// MeiliConfig holds the search engine connection settings
type MeiliConfig struct {
	Host   string
	APIKey string
}

// LLMConfig selects the completion provider. OpenRouter is used in every
// environment so local development depends on exactly one external service;
// a local OpenAI-compatible backend can be opted into for offline work.
type LLMConfig struct {
	Provider string // "openrouter" or "local"
	BaseURL  string
	Model    string
	APIKey   string
}

// EmbeddingConfig selects the embedding backend.
type EmbeddingConfig struct {
	BaseURL    string
	Model      string
	APIKey     string
	Dimensions int
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port          string
	AdminPassword string
}

// WorkerConfig holds background worker intervals
type WorkerConfig struct {
	EnrichInterval    time.Duration
	IndexSyncInterval time.Duration
	EnrichBatchSize   int
}

// Load resolves the full configuration from environment variables with
// explicit defaults. It memoizes nothing: calling it again picks up any
// changed variables, which keeps provider selection testable.
func Load() *Config {
	env := getEnv("APP_ENV", EnvLocal)
	return &Config{
		Env: env,
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "lanka_news"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Meili: MeiliConfig{
			Host:   getEnv("MEILI_HOST", "http://localhost:7700"),
			APIKey: getEnv("MEILI_API_KEY", ""),
		},
		LLM:       loadLLM(),
		Embedding: loadEmbedding(env),
		Server: ServerConfig{
			Port:          getEnv("PORT", "8080"),
			AdminPassword: getEnv("ADMIN_PASSWORD", "admin123"),
		},
		Worker: WorkerConfig{
			EnrichInterval:    getDuration("ENRICH_INTERVAL", 5*time.Minute),
			IndexSyncInterval: getDuration("INDEX_SYNC_INTERVAL", 2*time.Minute),
			EnrichBatchSize:   getInt("ENRICH_BATCH_SIZE", 10),
		},
	}
}

func loadLLM() LLMConfig {
	if getEnv("LLM_PROVIDER", "openrouter") == "local" {
		return LLMConfig{
			Provider: "local",
			BaseURL:  getEnv("LOCAL_LLM_BASE_URL", "http://localhost:1234/v1"),
			Model:    getEnv("LOCAL_LLM_MODEL", "qwen3-4b"),
			APIKey:   getEnv("LOCAL_LLM_API_KEY", ""),
		}
	}
	return LLMConfig{
		Provider: "openrouter",
		BaseURL:  getEnv("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
		Model:    getEnv("OPENROUTER_MODEL", "openai/gpt-4o-mini"),
		APIKey:   getEnv("OPENROUTER_API_KEY", ""),
	}
}

// loadEmbedding picks the embedding backend per environment. Local mode
// defaults to LM Studio (no credential); "localai" needs a key and keeps a
// placeholder default. Production is OpenAI with a fixed dimensionality.
func loadEmbedding(env string) EmbeddingConfig {
	if env == EnvProduction {
		return EmbeddingConfig{
			BaseURL:    "https://api.openai.com/v1",
			Model:      "text-embedding-3-small",
			APIKey:     getEnv("OPENAI_API_KEY", ""),
			Dimensions: 1536,
		}
	}
	if getEnv("EMBEDDING_PROVIDER", "lmstudio") == "localai" {
		return EmbeddingConfig{
			BaseURL:    getEnv("LOCALAI_BASE_URL", "http://localhost:8081/v1"),
			Model:      getEnv("LOCALAI_EMBEDDING_MODEL", "bert-embeddings"),
			APIKey:     getEnv("LOCALAI_API_KEY", "sk-localai"),
			Dimensions: getInt("EMBEDDING_DIMENSIONS", 768),
		}
	}
	return EmbeddingConfig{
		BaseURL:    getEnv("LMSTUDIO_BASE_URL", "http://localhost:1234/v1"),
		Model:      getEnv("LMSTUDIO_EMBEDDING_MODEL", "text-embedding-nomic-embed-text-v1.5"),
		APIKey:     "",
		Dimensions: getInt("EMBEDDING_DIMENSIONS", 768),
	}
}

// getEnv returns environment variable value or default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
