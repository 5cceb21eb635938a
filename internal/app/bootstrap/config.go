package bootstrap

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Config is the resolved runtime configuration.
// It merges file defaults and environment overrides to support both local and deployed runs.
type Config struct {
	ServiceID string
	HTTPPort  int

	DatabaseURL  string
	RedisURL     string
	KafkaBrokers []string

	ModelURL          string
	ModelMaxNewTokens int
	ModelTemperature  float64
	ModelLoadTimeout  time.Duration
	GenerationTimeout time.Duration

	OrderTotalCeiling decimal.Decimal

	ChatRateLimit  int
	ChatRateWindow time.Duration

	MaxDBConns int
}

// configFile mirrors the YAML schema used by configs/default.yaml.
// It is intentionally separate from Config so runtime-only fields stay internal.
type configFile struct {
	Service struct {
		ID       string `yaml:"id"`
		HTTPPort int    `yaml:"http_port"`
	} `yaml:"service"`
	Dependencies struct {
		PostgresURL  string   `yaml:"postgres_url"`
		RedisURL     string   `yaml:"redis_url"`
		KafkaBrokers []string `yaml:"kafka_brokers"`
		ModelURL     string   `yaml:"model_url"`
	} `yaml:"dependencies"`
	Orders struct {
		TotalCeiling string `yaml:"total_ceiling"`
	} `yaml:"orders"`
	Chat struct {
		RateLimit         int `yaml:"rate_limit"`
		RateWindowSeconds int `yaml:"rate_window_seconds"`
		GenerationTimeout int `yaml:"generation_timeout_seconds"`
		ModelLoadTimeout  int `yaml:"model_load_timeout_seconds"`
		ModelMaxNewTokens int `yaml:"model_max_new_tokens"`
	} `yaml:"chat"`
}

// LoadConfig resolves configuration in priority order: defaults -> file -> env.
// This order keeps local bootstrap simple while allowing environment-specific overrides.
func LoadConfig(path string) (Config, error) {
	cfg := Config{
		ServiceID:         "pizza-delivery-api",
		HTTPPort:          8080,
		ModelMaxNewTokens: 100,
		ModelTemperature:  0.7,
		ModelLoadTimeout:  2 * time.Minute,
		GenerationTimeout: 5 * time.Second,
		OrderTotalCeiling: decimal.NewFromInt(500),
		ChatRateLimit:     20,
		ChatRateWindow:    time.Minute,
		MaxDBConns:        20,
	}

	raw, err := os.ReadFile(path)
	if err == nil {
		var f configFile
		if unmarshalErr := yaml.Unmarshal(raw, &f); unmarshalErr != nil {
			return Config{}, fmt.Errorf("parse config file: %w", unmarshalErr)
		}
		if f.Service.ID != "" {
			cfg.ServiceID = f.Service.ID
		}
		if f.Service.HTTPPort > 0 {
			cfg.HTTPPort = f.Service.HTTPPort
		}
		if f.Dependencies.PostgresURL != "" {
			cfg.DatabaseURL = f.Dependencies.PostgresURL
		}
		if f.Dependencies.RedisURL != "" {
			cfg.RedisURL = f.Dependencies.RedisURL
		}
		if len(f.Dependencies.KafkaBrokers) > 0 {
			cfg.KafkaBrokers = f.Dependencies.KafkaBrokers
		}
		if f.Dependencies.ModelURL != "" {
			cfg.ModelURL = f.Dependencies.ModelURL
		}
		if f.Orders.TotalCeiling != "" {
			ceiling, parseErr := decimal.NewFromString(f.Orders.TotalCeiling)
			if parseErr != nil {
				return Config{}, fmt.Errorf("parse orders.total_ceiling: %w", parseErr)
			}
			cfg.OrderTotalCeiling = ceiling
		}
		if f.Chat.RateLimit > 0 {
			cfg.ChatRateLimit = f.Chat.RateLimit
		}
		if f.Chat.RateWindowSeconds > 0 {
			cfg.ChatRateWindow = time.Duration(f.Chat.RateWindowSeconds) * time.Second
		}
		if f.Chat.GenerationTimeout > 0 {
			cfg.GenerationTimeout = time.Duration(f.Chat.GenerationTimeout) * time.Second
		}
		if f.Chat.ModelLoadTimeout > 0 {
			cfg.ModelLoadTimeout = time.Duration(f.Chat.ModelLoadTimeout) * time.Second
		}
		if f.Chat.ModelMaxNewTokens > 0 {
			cfg.ModelMaxNewTokens = f.Chat.ModelMaxNewTokens
		}
	}

	cfg.DatabaseURL = envOrDefault("DB_URL", envOrDefault("POSTGRES_URL", cfg.DatabaseURL))
	cfg.RedisURL = envOrDefault("REDIS_URL", cfg.RedisURL)
	cfg.KafkaBrokers = envCSV("KAFKA_BROKERS", cfg.KafkaBrokers)
	cfg.ModelURL = envOrDefault("MODEL_URL", cfg.ModelURL)
	cfg.HTTPPort = envInt("HTTP_PORT", cfg.HTTPPort)
	cfg.MaxDBConns = envInt("DB_MAX_CONNS", cfg.MaxDBConns)
	cfg.ChatRateLimit = envInt("CHAT_RATE_LIMIT", cfg.ChatRateLimit)
	cfg.ChatRateWindow = time.Duration(envInt("CHAT_RATE_WINDOW_SECONDS", int(cfg.ChatRateWindow.Seconds()))) * time.Second
	cfg.GenerationTimeout = time.Duration(envInt("GENERATION_TIMEOUT_SECONDS", int(cfg.GenerationTimeout.Seconds()))) * time.Second
	cfg.ModelLoadTimeout = time.Duration(envInt("MODEL_LOAD_TIMEOUT_SECONDS", int(cfg.ModelLoadTimeout.Seconds()))) * time.Second
	if raw := os.Getenv("ORDER_TOTAL_CEILING"); raw != "" {
		ceiling, parseErr := decimal.NewFromString(raw)
		if parseErr != nil {
			return Config{}, fmt.Errorf("parse ORDER_TOTAL_CEILING: %w", parseErr)
		}
		cfg.OrderTotalCeiling = ceiling
	}

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("missing DB_URL/POSTGRES_URL")
	}

	return cfg, nil
}

// envOrDefault returns an env var when present, otherwise the provided fallback.
func envOrDefault(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}

// envInt parses integer env vars with safe fallback on empty/invalid values.
func envInt(name string, fallback int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

// envCSV splits a comma-separated env var, keeping the fallback when unset.
func envCSV(name string, fallback []string) []string {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
