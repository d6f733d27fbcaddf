package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	CatalogSourceCSV      = "csv"
	CatalogSourcePostgres = "postgres"
)

type Config struct {
	Server      ServerConfig
	Catalog     CatalogConfig
	Database    DatabaseConfig
	Submissions SubmissionsConfig
	Redis       RedisConfig
	Assistant   AssistantConfig
	App         AppConfig
}

type ServerConfig struct {
	Port           string
	AllowedOrigins []string
}

type CatalogConfig struct {
	Path       string
	Source     string
	ReloadCron string
}

type DatabaseConfig struct {
	DSN      string
	MaxConns int // 0 keeps the pgxpool default
}

type SubmissionsConfig struct {
	DSN string
}

type RedisConfig struct {
	Addr       string
	Password   string
	DB         int
	SessionTTL time.Duration
}

type AssistantConfig struct {
	APIKey      string
	APIKeyFile  string
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
	RatePerSec  float64
}

type AppConfig struct {
	Environment string
	LogLevel    string
	Version     string
	AdminAPIKey string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		},
		Catalog: CatalogConfig{
			Path:       getEnv("CATALOG_PATH", "projects.csv"),
			Source:     strings.ToLower(getEnv("CATALOG_SOURCE", CatalogSourceCSV)),
			ReloadCron: getEnv("CATALOG_RELOAD_CRON", ""),
		},
		Database: DatabaseConfig{
			DSN:      getEnv("DB_DSN", ""),
			MaxConns: getEnvAsInt("DB_MAX_CONNS", 10),
		},
		Submissions: SubmissionsConfig{
			DSN: getEnv("SUBMISSIONS_DSN", ""),
		},
		Redis: RedisConfig{
			Addr:       getEnv("REDIS_ADDR", ""),
			Password:   getEnv("REDIS_PASSWORD", ""),
			DB:         getEnvAsInt("REDIS_DB", 0),
			SessionTTL: getEnvAsDuration("SESSION_TTL", 24*time.Hour),
		},
		Assistant: AssistantConfig{
			APIKey:      getEnv("OPENAI_API_KEY", ""),
			APIKeyFile:  getEnv("OPENAI_API_KEY_FILE", "API.txt"),
			BaseURL:     getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			Model:       getEnv("OPENAI_MODEL", "gpt-3.5-turbo"),
			MaxTokens:   getEnvAsInt("ASSISTANT_MAX_TOKENS", 150),
			Temperature: getEnvAsFloat("ASSISTANT_TEMPERATURE", 0.7),
			Timeout:     getEnvAsDuration("ASSISTANT_TIMEOUT", 30*time.Second),
			RatePerSec:  getEnvAsFloat("ASSISTANT_RATE_PER_SEC", 2),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			AdminAPIKey: getEnv("ADMIN_API_KEY", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	switch c.Catalog.Source {
	case CatalogSourceCSV:
	case CatalogSourcePostgres:
		if c.Database.DSN == "" {
			return fmt.Errorf("DB_DSN is required when CATALOG_SOURCE=postgres")
		}
	default:
		return fmt.Errorf("unknown CATALOG_SOURCE %q", c.Catalog.Source)
	}

	if c.Database.MaxConns < 0 {
		return fmt.Errorf("DB_MAX_CONNS must not be negative")
	}

	if c.Redis.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid number for %s, using default: %g", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration for %s, using default: %s", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
