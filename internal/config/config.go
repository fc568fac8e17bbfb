package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	GitHubToken string

	LLMBaseURL string
	LLMAPIKey  string
	LLMModel   string

	Port      string
	StaticDir string

	HistoryPath string
	SurrealURL  string
	SurrealNS   string
	SurrealDB   string
	SurrealUser string
	SurrealPass string

	LogLevel  string
	LogFormat string
}

func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		GitHubToken: os.Getenv("GITHUB_TOKEN"),

		LLMBaseURL: os.Getenv("LLM_BASE_URL"),
		LLMAPIKey:  envOrDefault("LLM_API_KEY", os.Getenv("DEEPSEEK_API_KEY")),
		LLMModel:   os.Getenv("LLM_MODEL"),

		Port:      envOrDefault("PORT", "3000"),
		StaticDir: os.Getenv("STATIC_DIR"),

		HistoryPath: os.Getenv("HISTORY_PATH"),
		SurrealURL:  os.Getenv("SURREAL_URL"),
		SurrealNS:   envOrDefault("SURREAL_NS", "trend_digest"),
		SurrealDB:   envOrDefault("SURREAL_DB", "history"),
		SurrealUser: os.Getenv("SURREAL_USER"),
		SurrealPass: os.Getenv("SURREAL_PASS"),

		LogLevel:  envOrDefault("LOG_LEVEL", "info"),
		LogFormat: envOrDefault("LOG_FORMAT", "text"),
	}

	// The SDK appends /rpc automatically
	cfg.SurrealURL = strings.TrimSuffix(cfg.SurrealURL, "/rpc")
	cfg.SurrealURL = strings.TrimSuffix(cfg.SurrealURL, "/")

	if cfg.LLMBaseURL == "" {
		cfg.LLMBaseURL = "https://api.deepseek.com/v1"
	}
	if cfg.LLMModel == "" {
		cfg.LLMModel = "deepseek-chat"
	}
	if cfg.HistoryPath == "" {
		cfg.HistoryPath = defaultHistoryPath()
	}

	return cfg
}

func defaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".trend-digest", "history.json")
	}
	return filepath.Join(home, ".trend-digest", "history.json")
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
