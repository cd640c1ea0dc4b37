// Package config provides configuration management for versebot.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Limits holds the posting and reading quotas imposed by the platform tier.
type Limits struct {
	MonthlyPosts       int
	MonthlyReads       int
	DailyPosts         int
	DailyReads         int
	PostsPerThread     int
	MaxInteractionsDay int
}

// Config holds all application configuration. Read once at process start,
// immutable thereafter.
type Config struct {
	// X API settings
	XBearerToken string

	// Ollama settings
	OllamaEndpoint string
	OllamaModel    string

	// Bible API settings
	BibleAPIBase       string
	ChineseTranslation string

	// Market data settings
	CoinID string

	// MongoDB settings
	MongoURI string
	MongoDB  string

	// Quota limits
	Limits Limits

	// Server settings
	HTTPAddr string
	Debug    bool

	// Run lock TTL for one-shot invocations
	RunLockTTL time.Duration
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	cfg := &Config{
		// X API
		XBearerToken: getEnv("X_BEARER_TOKEN", ""),

		// Ollama (OpenAI-compatible endpoint)
		OllamaEndpoint: getEnv("OLLAMA_ENDPOINT", "http://localhost:11434/v1"),
		OllamaModel:    getEnv("OLLAMA_MODEL", "llama3"),

		// Bible API
		BibleAPIBase:       getEnv("BIBLE_API_BASE", "https://bible-api.com"),
		ChineseTranslation: getEnv("BIBLE_ZH_TRANSLATION", "cuv"),

		// Market data
		CoinID: getEnv("COIN_ID", "binancecoin"),

		// MongoDB
		MongoURI: getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:  getEnv("MONGO_DB", "versebot"),

		// X free tier: 500 posts and 100 reads per month
		Limits: Limits{
			MonthlyPosts:       getEnvInt("MONTHLY_POST_LIMIT", 500),
			MonthlyReads:       getEnvInt("MONTHLY_READ_LIMIT", 100),
			DailyPosts:         getEnvInt("DAILY_POST_LIMIT", 17),
			DailyReads:         getEnvInt("DAILY_READ_LIMIT", 4),
			PostsPerThread:     getEnvInt("POSTS_PER_THREAD", 2),
			MaxInteractionsDay: getEnvInt("MAX_INTERACTIONS_PER_DAY", 3),
		},

		// Server
		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),
		Debug:    getEnvBool("DEBUG", false),

		RunLockTTL: getEnvDuration("RUN_LOCK_TTL", 15*time.Minute),
	}

	return cfg, nil
}

// Validate checks if required configuration is present.
func (c *Config) Validate() error {
	if c.XBearerToken == "" {
		return fmt.Errorf("X_BEARER_TOKEN is required")
	}
	if c.Limits.PostsPerThread < 1 {
		return fmt.Errorf("POSTS_PER_THREAD must be at least 1")
	}
	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
