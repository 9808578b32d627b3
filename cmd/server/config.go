package main

import (
	"fmt"
	"log/slog"

	"github.com/phrazzld/spark-api/internal/config"
)

// loadAppConfig loads the application configuration from environment variables or config file.
func loadAppConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// logAppConfig logs the loaded configuration. Secrets are reported only as present or absent.
func logAppConfig(logger *slog.Logger, cfg *config.Config) {
	logger.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	logger.Debug("LLM configuration",
		"model", cfg.LLM.ModelName,
		"base_url", cfg.LLM.BaseURL,
		"api_key_present", cfg.LLM.GeminiAPIKey != "")

	logger.Debug("Retry configuration",
		"max_retries", cfg.Retry.MaxRetries,
		"initial_delay_ms", cfg.Retry.InitialDelayMs,
		"backoff_multiplier", cfg.Retry.BackoffMultiplier,
		"attempt_timeout_ms", cfg.Retry.AttemptTimeoutMs)
}
