package generation

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/phrazzld/spark-api/internal/config"
	"github.com/phrazzld/spark-api/internal/redact"
	"github.com/phrazzld/spark-api/internal/retry"
)

// Endpoint identifies the generateContent method of one model.
type Endpoint struct {
	BaseURL string
	Model   string
	APIKey  string
}

// EndpointFromConfig builds an Endpoint from the LLM section of the config.
func EndpointFromConfig(cfg config.LLMConfig) Endpoint {
	return Endpoint{
		BaseURL: cfg.BaseURL,
		Model:   cfg.ModelName,
		APIKey:  cfg.GeminiAPIKey,
	}
}

// Validate reports a missing field.
func (e Endpoint) Validate() error {
	switch {
	case e.BaseURL == "":
		return fmt.Errorf("%w: base URL cannot be empty", ErrInvalidConfig)
	case e.Model == "":
		return fmt.Errorf("%w: model name cannot be empty", ErrInvalidConfig)
	case e.APIKey == "":
		return fmt.Errorf("%w: gemini API key cannot be empty", ErrInvalidConfig)
	}
	return nil
}

// URL returns the full request URL, including the API key.
func (e Endpoint) URL() string {
	return fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		strings.TrimRight(e.BaseURL, "/"),
		url.PathEscape(e.Model),
		url.QueryEscape(e.APIKey))
}

// String returns the URL with the key redacted.
func (e Endpoint) String() string {
	return redact.String(e.URL())
}

// LogValue keeps the API key out of structured logs.
func (e Endpoint) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("base_url", e.BaseURL),
		slog.String("model", e.Model),
		slog.Bool("api_key_present", e.APIKey != ""),
	)
}

// Request builds the POST request carrying body.
func (e Endpoint) Request(body []byte) retry.Request {
	return retry.Request{
		Method: http.MethodPost,
		URL:    e.URL(),
		Header: http.Header{"Content-Type": []string{"application/json"}},
		Body:   body,
	}
}
