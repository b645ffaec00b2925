package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Supported values for llm.provider.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Supported values for http.rateLimit.store.
const (
	RateLimitStoreMemory = "memory"
	RateLimitStoreValkey = "valkey"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	LLM      LLMConfig      `yaml:"llm"`
	Outfit   OutfitConfig   `yaml:"outfit"`
	Outcomes OutcomesConfig `yaml:"outcomes"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string          `yaml:"address"`
	ReadTimeout    time.Duration   `yaml:"readTimeout"`
	WriteTimeout   time.Duration   `yaml:"writeTimeout"`
	StaticDir      string          `yaml:"staticDir"`
	AllowedOrigins []string        `yaml:"allowedOrigins"`
	RateLimit      RateLimitConfig `yaml:"rateLimit"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool   `yaml:"enabled"`
	RequestsPerMinute int    `yaml:"requestsPerMinute"`
	Burst             int    `yaml:"burst"`
	Store             string `yaml:"store"`
	ValkeyAddr        string `yaml:"valkeyAddr"`
}

// LLMConfig selects and configures the generation provider.
type LLMConfig struct {
	Provider    string  `yaml:"provider"`
	APIKey      string  `yaml:"apiKey"`
	BaseURL     string  `yaml:"baseUrl"`
	Model       string  `yaml:"model"`
	Temperature float32 `yaml:"temperature"`
}

// OutfitConfig tunes the recommendation pipeline.
type OutfitConfig struct {
	GenerationTimeout time.Duration `yaml:"generationTimeout"`
	RecordTimeout     time.Duration `yaml:"recordTimeout"`
}

// OutcomesConfig controls where generation telemetry is stored. An empty DSN
// keeps counters in memory.
type OutcomesConfig struct {
	Postgres PostgresConfig `yaml:"postgres"`
}

// PostgresConfig contains DSN and pooling settings.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// Load reads configuration from a YAML file, .env and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	// A missing .env is normal outside local development.
	_ = godotenv.Load()
	applyEnvOverrides(cfg)
	applyProviderDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_STATIC_DIR"); v != "" {
		cfg.HTTP.StaticDir = v
	}
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = parseBool(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_STORE"); v != "" {
		cfg.HTTP.RateLimit.Store = strings.ToLower(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_VALKEY_ADDR"); v != "" {
		cfg.HTTP.RateLimit.ValkeyAddr = v
	}
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		cfg.LLM.Provider = strings.ToLower(v)
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" && cfg.LLM.Provider == ProviderGemini && cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("LLM_TEMPERATURE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil {
			cfg.LLM.Temperature = float32(parsed)
		}
	}
	if v := os.Getenv("OUTFIT_GENERATION_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Outfit.GenerationTimeout = parsed
		}
	}
	if v := os.Getenv("OUTFIT_RECORD_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Outfit.RecordTimeout = parsed
		}
	}
	if v := os.Getenv("OUTCOMES_POSTGRES_DSN"); v != "" {
		cfg.Outcomes.Postgres.DSN = v
	}
	if v := os.Getenv("OUTCOMES_POSTGRES_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Outcomes.Postgres.MaxConns = int32(parsed)
		}
	}
	if v := os.Getenv("OUTCOMES_POSTGRES_MIN_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Outcomes.Postgres.MinConns = int32(parsed)
		}
	}
}

// applyProviderDefaults fills the model when none was configured.
func applyProviderDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.LLM.Model) != "" {
		return
	}
	switch cfg.LLM.Provider {
	case ProviderGemini:
		cfg.LLM.Model = "gemini-2.5-flash"
	case ProviderOpenAI:
		cfg.LLM.Model = "gpt-4o-mini"
	}
}

func parseBool(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8000",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 45 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled:           false,
				RequestsPerMinute: 60,
				Burst:             20,
				Store:             RateLimitStoreMemory,
			},
		},
		LLM: LLMConfig{
			Provider:    ProviderGemini,
			Temperature: 0.7,
		},
		Outfit: OutfitConfig{
			GenerationTimeout: 30 * time.Second,
			RecordTimeout:     2 * time.Second,
		},
		Outcomes: OutcomesConfig{
			Postgres: PostgresConfig{
				MaxConns: 4,
				MinConns: 0,
			},
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
		switch c.HTTP.RateLimit.Store {
		case RateLimitStoreMemory:
		case RateLimitStoreValkey:
			if strings.TrimSpace(c.HTTP.RateLimit.ValkeyAddr) == "" {
				return errors.New("http.rateLimit.valkeyAddr cannot be empty when store is valkey")
			}
		default:
			return fmt.Errorf("http.rateLimit.store %q is not supported", c.HTTP.RateLimit.Store)
		}
	}
	switch c.LLM.Provider {
	case ProviderGemini, ProviderOpenAI:
	default:
		return fmt.Errorf("llm.provider %q is not supported", c.LLM.Provider)
	}
	if strings.TrimSpace(c.LLM.Model) == "" {
		return errors.New("llm.model cannot be empty")
	}
	if c.Outfit.GenerationTimeout <= 0 {
		return errors.New("outfit.generationTimeout must be positive")
	}
	if c.HTTP.WriteTimeout > 0 && c.Outfit.GenerationTimeout >= c.HTTP.WriteTimeout {
		return fmt.Errorf("outfit.generationTimeout (%s) must be shorter than http.writeTimeout (%s)", c.Outfit.GenerationTimeout, c.HTTP.WriteTimeout)
	}
	if c.Outfit.RecordTimeout <= 0 {
		return errors.New("outfit.recordTimeout must be positive")
	}
	if c.Outcomes.Postgres.MaxConns < 0 || c.Outcomes.Postgres.MinConns < 0 {
		return errors.New("outcomes.postgres pool sizes cannot be negative")
	}
	return nil
}
