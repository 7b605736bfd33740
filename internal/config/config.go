package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds all application configuration.
type Config struct {
	APIBaseURL     string   // market data endpoint
	APIKey         string   // optional market data API key
	Symbols        []string // watchlist of coin ids
	VsCurrency     string   // quote currency for snapshots
	RegimePolicy   string   // "band" (canonical) or "trend"
	LogLevel       string
	RequestTimeout int // seconds
	RequestsPerSec int
	WatchCron      string // cron spec for the monitor loop

	TelegramToken  string
	TelegramChatID int64

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
}

// Load initializes configuration from environment variables, reading a
// .env file first when present. Every field has a default so the binaries
// run with an empty environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, relying on actual environment variables")
	}

	cfg := &Config{
		APIBaseURL:     getEnvWithDefault("API_BASE_URL", "https://api.coingecko.com/api/v3"),
		APIKey:         os.Getenv("API_KEY"),
		Symbols:        getEnvListWithDefault("SYMBOLS", []string{"bitcoin"}),
		VsCurrency:     getEnvWithDefault("VS_CURRENCY", "usd"),
		RegimePolicy:   getEnvWithDefault("REGIME_POLICY", "band"),
		LogLevel:       getEnvWithDefault("LOG_LEVEL", "info"),
		RequestTimeout: getEnvIntWithDefault("REQUEST_TIMEOUT", 30),
		RequestsPerSec: getEnvIntWithDefault("REQUESTS_PER_SEC", 5),
		WatchCron:      getEnvWithDefault("WATCH_CRON", "0 */15 * * * *"),

		TelegramToken:  os.Getenv("TELEGRAM_TOKEN"),
		TelegramChatID: getEnvInt64WithDefault("TELEGRAM_CHAT_ID", 0),

		DBHost:     getEnvWithDefault("DB_HOST", ""),
		DBPort:     getEnvWithDefault("DB_PORT", "5432"),
		DBUser:     getEnvWithDefault("DB_USER", "postgres"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     getEnvWithDefault("DB_NAME", "coinsight"),
		DBSSLMode:  getEnvWithDefault("DB_SSLMODE", "disable"),
	}
	return cfg, nil
}

// AlertsEnabled reports whether Telegram delivery is configured.
func (c *Config) AlertsEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChatID != 0
}

// PersistenceEnabled reports whether a Postgres recorder is configured.
func (c *Config) PersistenceEnabled() bool {
	return c.DBHost != ""
}

// Helper functions for environment variable handling
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64WithDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvListWithDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
