package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	// groqBaseURL is the default OpenAI-compatible endpoint, as in the
	// original deployment.
	groqBaseURL  = "https://api.groq.com/openai/v1"
	defaultModel = "llama3-70b-8192"
)

var validate = validator.New()

// LLMConfig selects and configures the assistant backend.
type LLMConfig struct {
	Provider    string  `yaml:"provider" validate:"required,oneof=openai anthropic"`
	APIKey      string  `yaml:"api_key"`
	BaseURL     string  `yaml:"base_url"`
	Model       string  `yaml:"model" validate:"required"`
	Temperature float32 `yaml:"temperature" validate:"gte=0,lte=2"`
	MaxTokens   int     `yaml:"max_tokens" validate:"gte=0"`
}

// Config is the process configuration, read once at startup. Missing
// credentials are not load errors: the chat service degrades to unavailable
// instead of partially functioning.
type Config struct {
	LLM               LLMConfig     `yaml:"llm"`
	OpenWeatherAPIKey string        `yaml:"openweather_api_key"`
	Port              string        `yaml:"port" validate:"required"`
	HTTPTimeout       time.Duration `yaml:"http_timeout" validate:"gt=0"`
}

func defaults() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:    "openai",
			BaseURL:     groqBaseURL,
			Model:       defaultModel,
			Temperature: 0.7,
			MaxTokens:   1024,
		},
		Port:        "8000",
		HTTPTimeout: 10 * time.Second,
	}
}

// Load reads configuration from an optional YAML file and the environment.
// Environment variables override file values.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(".env.local"); err != nil {
		logrus.WithError(err).Debug("no .env.local loaded")
	}

	cfg := defaults()

	if path != "" {
		bs, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(bs, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	applyEnv(cfg)

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	switch cfg.LLM.Provider {
	case "anthropic":
		if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" {
			cfg.LLM.APIKey = v
		}
	default:
		if v := os.Getenv("GROQ_API_KEY"); v != "" {
			cfg.LLM.APIKey = v
		} else if v := os.Getenv("OPENAI_API_KEY"); v != "" {
			cfg.LLM.APIKey = v
		}
	}
	if v := os.Getenv("OPENWEATHER_API_KEY"); v != "" {
		cfg.OpenWeatherAPIKey = v
	}
	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}
}
