package generation

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"testing"

	"github.com/phrazzld/spark-api/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestEndpointURL(t *testing.T) {
	t.Parallel()

	e := Endpoint{
		BaseURL: "https://generativelanguage.googleapis.com/v1beta/",
		Model:   "gemini-2.5-flash-preview-09-2025",
		APIKey:  "abc+/=",
	}

	assert.Equal(t,
		"https://generativelanguage.googleapis.com/v1beta/models/gemini-2.5-flash-preview-09-2025:generateContent?key=abc%2B%2F%3D",
		e.URL())
	assert.NotContains(t, e.String(), "abc")
}

func TestEndpointRequest(t *testing.T) {
	t.Parallel()

	req := testEndpoint.Request([]byte(`{}`))

	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, testEndpoint.URL(), req.URL)
	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
	assert.Equal(t, []byte(`{}`), req.Body)
}

func TestEndpointLogValueHidesKey(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := slog.New(slog.NewJSONHandler(&buf, nil))
	l.Info("calling", "endpoint", testEndpoint)

	assert.NotContains(t, buf.String(), testEndpoint.APIKey)
	assert.Contains(t, buf.String(), `"api_key_present":true`)
	assert.Contains(t, buf.String(), testEndpoint.Model)
}

func TestEndpointFromConfig(t *testing.T) {
	t.Parallel()

	e := EndpointFromConfig(config.LLMConfig{GeminiAPIKey: "k", ModelName: "m", BaseURL: "https://x.test"})
	assert.NoError(t, e.Validate())
	assert.Equal(t, Endpoint{BaseURL: "https://x.test", Model: "m", APIKey: "k"}, e)

	e.APIKey = ""
	assert.True(t, errors.Is(e.Validate(), ErrInvalidConfig))
}
