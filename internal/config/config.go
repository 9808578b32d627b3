package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server  ServerConfig  `mapstructure:"server" validate:"required"`
	LLM     LLMConfig     `mapstructure:"llm" validate:"required"`
	Retry   RetryConfig   `mapstructure:"retry" validate:"required"`
	Persona PersonaConfig `mapstructure:"persona" validate:"required"`
	Session SessionConfig `mapstructure:"session" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// ShutdownTimeoutSeconds bounds graceful shutdown of in-flight requests.
	ShutdownTimeoutSeconds int `mapstructure:"shutdown_timeout_seconds" validate:"gte=1"`
}

// ShutdownTimeout returns the graceful shutdown budget as a duration.
func (c ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}

// LLMConfig contains all LLM integration related settings.
type LLMConfig struct {
	GeminiAPIKey string `mapstructure:"gemini_api_key" validate:"required"`
	ModelName    string `mapstructure:"model_name" validate:"required"`
	BaseURL      string `mapstructure:"base_url" validate:"required,url"`
}

// RetryConfig controls the backoff envelope around every generateContent call.
type RetryConfig struct {
	MaxRetries        int     `mapstructure:"max_retries" validate:"gte=0,lte=10"`
	InitialDelayMs    int     `mapstructure:"initial_delay_ms" validate:"gt=0"`
	BackoffMultiplier float64 `mapstructure:"backoff_multiplier" validate:"gt=1"`
	AttemptTimeoutMs  int     `mapstructure:"attempt_timeout_ms" validate:"gt=0"`
}

// InitialDelay returns the configured first backoff delay as a duration.
func (c RetryConfig) InitialDelay() time.Duration {
	return time.Duration(c.InitialDelayMs) * time.Millisecond
}

// AttemptTimeout returns the configured per-attempt timeout as a duration.
func (c RetryConfig) AttemptTimeout() time.Duration {
	return time.Duration(c.AttemptTimeoutMs) * time.Millisecond
}

// PersonaConfig is the static biography used by the "ask me" generation mode.
type PersonaConfig struct {
	Name    string `mapstructure:"name" validate:"required"`
	Context string `mapstructure:"context" validate:"required"`
}

// SessionConfig controls how long idle visitor sessions are kept in memory.
type SessionConfig struct {
	IdleTTLMinutes int `mapstructure:"idle_ttl_minutes" validate:"gt=0"`
}

// IdleTTL returns the session idle timeout as a duration.
func (c SessionConfig) IdleTTL() time.Duration {
	return time.Duration(c.IdleTTLMinutes) * time.Minute
}
