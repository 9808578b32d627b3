package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Default values applied before any file or environment source.
const (
	DefaultPort              = 8080
	DefaultLogLevel          = "info"
	DefaultModelName         = "gemini-2.5-flash-preview-09-2025"
	DefaultBaseURL           = "https://generativelanguage.googleapis.com/v1beta"
	DefaultMaxRetries        = 3
	DefaultInitialDelayMs    = 1000
	DefaultBackoffMultiplier = 2.0
	DefaultAttemptTimeoutMs  = 30000
	DefaultPersonaName       = "Ashish"
)

// DefaultPersonaContext is the biography interpolated into "ask me" prompts.
const DefaultPersonaContext = `I am Ashish, a Full-Stack Digital Marketer & Creative Technologist with 10+ years of experience.
My history:
- 2025-Present: Design Director at WHQ.
- 2020-2025: Senior Designer/Design Director at TangoSquared.
- 2018-2020: MA Graphic Design at SUNY Oswego.
- 2016-2018: Brand Designer at Various Clients.
- 2014-2016: Graphic Designer at MOV Communication.
- 2010-2014: Graphic Designer at AiO Studio.

My Philosophies:
- Design should be at the strategy table.
- First impressions matter.
- I get things done the right way.
- I keep things easy for everyone.
- I'm curious and love learning.
- I'm all about typography.

My Tools:
- Design: Figma, Adobe CC, Spline, Protopie.
- Code: HTML/CSS, JS, React, Tailwind.
- Growth: GA4, SEMrush, Meta Ads, HubSpot.
- Automation: n8n, Zapier, OpenAI API, Make.com.`

// envPrefix is prepended to every environment variable, e.g. SPARK_SERVER_PORT.
const envPrefix = "SPARK"

// keys lists every configuration key so that AutomaticEnv can bind them
// during Unmarshal even when no config file sets them.
var keys = []string{
	"server.port",
	"server.log_level",
	"server.shutdown_timeout_seconds",
	"llm.gemini_api_key",
	"llm.model_name",
	"llm.base_url",
	"retry.max_retries",
	"retry.initial_delay_ms",
	"retry.backoff_multiplier",
	"retry.attempt_timeout_ms",
	"persona.name",
	"persona.context",
	"session.idle_ttl_minutes",
}

// Load configuration from environment variables and optionally a config.yaml
// in the working directory. Environment variables take precedence over values
// from the config file. Returns a populated Config struct or an error if
// loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the struct tags of cfg.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", DefaultPort)
	v.SetDefault("server.log_level", DefaultLogLevel)
	v.SetDefault("server.shutdown_timeout_seconds", 10)
	v.SetDefault("llm.model_name", DefaultModelName)
	v.SetDefault("llm.base_url", DefaultBaseURL)
	v.SetDefault("retry.max_retries", DefaultMaxRetries)
	v.SetDefault("retry.initial_delay_ms", DefaultInitialDelayMs)
	v.SetDefault("retry.backoff_multiplier", DefaultBackoffMultiplier)
	v.SetDefault("retry.attempt_timeout_ms", DefaultAttemptTimeoutMs)
	v.SetDefault("persona.name", DefaultPersonaName)
	v.SetDefault("persona.context", DefaultPersonaContext)
	v.SetDefault("session.idle_ttl_minutes", 30)
}
