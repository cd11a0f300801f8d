package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const envPrefix = "HANMAL"

// Backend names for the primary translation provider.
const (
	BackendDeepL = "deepl"
	BackendLLM   = "llm"
)

type Config struct {
	Addr     string `envconfig:"ADDR" default:":8080"`
	DataDir  string `envconfig:"DATA_DIR" default:"./data"`
	DBPath   string `envconfig:"DB_PATH" default:""`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Backend selects the primary translation provider: deepl or llm.
	Backend string `envconfig:"BACKEND" default:"llm"`

	DeepLAPIKey  string `envconfig:"DEEPL_API_KEY" default:""`
	DeepLBaseURL string `envconfig:"DEEPL_BASE_URL" default:""`

	LLMBackend string `envconfig:"LLM_BACKEND" default:"openai"`
	LLMAPIKey  string `envconfig:"LLM_API_KEY" default:""`
	LLMBaseURL string `envconfig:"LLM_BASE_URL" default:""`
	LLMModel   string `envconfig:"LLM_MODEL" default:"gpt-4o-mini"`

	ProviderTimeoutSeconds int `envconfig:"PROVIDER_TIMEOUT_SECONDS" default:"30"`
	RateLimitQPS           int `envconfig:"RATE_LIMIT_QPS" default:"5"`
}

// Load reads configuration from the environment, with a .env file as an
// optional overlay for local development.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, err
	}
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(cfg.DataDir, "hanmal.db")
	}
	cfg.DBPath = filepath.Clean(cfg.DBPath)
	cfg.DataDir = filepath.Clean(cfg.DataDir)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Backend {
	case BackendDeepL, BackendLLM:
	default:
		return fmt.Errorf("HANMAL_BACKEND must be %q or %q", BackendDeepL, BackendLLM)
	}
	if c.ProviderTimeoutSeconds < 1 {
		return fmt.Errorf("HANMAL_PROVIDER_TIMEOUT_SECONDS must be >= 1")
	}
	if c.RateLimitQPS < 1 {
		return fmt.Errorf("HANMAL_RATE_LIMIT_QPS must be >= 1")
	}
	return nil
}

// ProviderTimeout returns the per-call timeout for outbound provider calls.
func (c *Config) ProviderTimeout() time.Duration {
	return time.Duration(c.ProviderTimeoutSeconds) * time.Second
}
