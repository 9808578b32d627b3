package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupEnv sets up environment variables for testing
func setupEnv(t *testing.T, envVars map[string]string) func() {
	// Save current environment values
	originalValues := make(map[string]string)
	for name := range envVars {
		originalValues[name] = os.Getenv(name)
	}

	// Set new environment variables
	for name, value := range envVars {
		err := os.Setenv(name, value)
		require.NoError(t, err, "Failed to set environment variable %s", name)
	}

	// Return cleanup function
	return func() {
		for name, value := range originalValues {
			if value == "" {
				os.Unsetenv(name)
			} else {
				os.Setenv(name, value)
			}
		}
	}
}

// TestLoadDefaults verifies that Load applies defaults when only the API key is set.
func TestLoadDefaults(t *testing.T) {
	cleanup := setupEnv(t, map[string]string{
		"SPARK_LLM_GEMINI_API_KEY": "test-api-key",
		"SPARK_SERVER_PORT":        "",
		"SPARK_SERVER_LOG_LEVEL":   "",
	})
	defer cleanup()

	cfg, err := Load()

	require.NoError(t, err, "Load() should not return an error with default values")
	require.NotNil(t, cfg)
	assert.Equal(t, 8080, cfg.Server.Port, "Default server port should be 8080")
	assert.Equal(t, "info", cfg.Server.LogLevel, "Default log level should be 'info'")
	assert.Equal(t, DefaultModelName, cfg.LLM.ModelName)
	assert.Equal(t, DefaultBaseURL, cfg.LLM.BaseURL)
	assert.Equal(t, 3, cfg.Retry.MaxRetries)
	assert.Equal(t, time.Second, cfg.Retry.InitialDelay())
	assert.InDelta(t, 2.0, cfg.Retry.BackoffMultiplier, 0.0001)
	assert.Equal(t, 30*time.Second, cfg.Retry.AttemptTimeout())
	assert.Equal(t, "Ashish", cfg.Persona.Name)
	assert.Contains(t, cfg.Persona.Context, "Design Director at WHQ")
	assert.Equal(t, 30*time.Minute, cfg.Session.IdleTTL())
}

// TestLoadFromEnv verifies that the Load function correctly reads values from environment variables.
func TestLoadFromEnv(t *testing.T) {
	cleanup := setupEnv(t, map[string]string{
		"SPARK_SERVER_PORT":              "9090",
		"SPARK_SERVER_LOG_LEVEL":         "debug",
		"SPARK_LLM_GEMINI_API_KEY":       "test-api-key",
		"SPARK_LLM_MODEL_NAME":           "gemini-test",
		"SPARK_RETRY_MAX_RETRIES":        "5",
		"SPARK_RETRY_INITIAL_DELAY_MS":   "250",
		"SPARK_RETRY_BACKOFF_MULTIPLIER": "1.5",
		"SPARK_PERSONA_NAME":             "Robin",
	})
	defer cleanup()

	cfg, err := Load()

	require.NoError(t, err, "Load() should not return an error with valid environment variables")
	require.NotNil(t, cfg)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, "test-api-key", cfg.LLM.GeminiAPIKey)
	assert.Equal(t, "gemini-test", cfg.LLM.ModelName)
	assert.Equal(t, 5, cfg.Retry.MaxRetries)
	assert.Equal(t, 250*time.Millisecond, cfg.Retry.InitialDelay())
	assert.InDelta(t, 1.5, cfg.Retry.BackoffMultiplier, 0.0001)
	assert.Equal(t, "Robin", cfg.Persona.Name)
}

// TestLoadValidationErrors verifies that the Load function correctly validates the configuration.
func TestLoadValidationErrors(t *testing.T) {
	testCases := []struct {
		name    string
		envVars map[string]string
	}{
		{
			name: "Missing API key",
			envVars: map[string]string{
				"SPARK_SERVER_PORT":        "9090",
				"SPARK_LLM_GEMINI_API_KEY": "",
			},
		},
		{
			name: "Invalid port number",
			envVars: map[string]string{
				"SPARK_SERVER_PORT":        "999999",
				"SPARK_LLM_GEMINI_API_KEY": "test-api-key",
			},
		},
		{
			name: "Invalid log level",
			envVars: map[string]string{
				"SPARK_SERVER_LOG_LEVEL":   "invalid-level",
				"SPARK_LLM_GEMINI_API_KEY": "test-api-key",
			},
		},
		{
			name: "Backoff multiplier not above one",
			envVars: map[string]string{
				"SPARK_RETRY_BACKOFF_MULTIPLIER": "1",
				"SPARK_LLM_GEMINI_API_KEY":       "test-api-key",
			},
		},
		{
			name: "Negative retries",
			envVars: map[string]string{
				"SPARK_RETRY_MAX_RETRIES":  "-1",
				"SPARK_LLM_GEMINI_API_KEY": "test-api-key",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cleanup := setupEnv(t, tc.envVars)
			defer cleanup()

			cfg, err := Load()

			require.Error(t, err, "Load() should return an error with invalid configuration")
			assert.Contains(t, err.Error(), "validation failed")
			assert.Nil(t, cfg, "Config should be nil when an error occurs")
		})
	}
}
