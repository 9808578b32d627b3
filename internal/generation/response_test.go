package generation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractText(t *testing.T) {
	t.Parallel()

	text, err := ExtractText([]byte(`{"candidates":[{"content":{"parts":[{"text":"first"},{"text":"second"}]}}]}`))
	require.NoError(t, err)
	assert.Equal(t, "first", text)
}

func TestExtractText_Unusable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		wantErr error
	}{
		{"empty object", `{}`, ErrNoCandidate},
		{"empty candidates", `{"candidates":[]}`, ErrNoCandidate},
		{"candidate without content", `{"candidates":[{}]}`, ErrMalformedResponse},
		{"content without parts", `{"candidates":[{"content":{"parts":[]}}]}`, ErrMalformedResponse},
		{"part without text", `{"candidates":[{"content":{"parts":[{}]}}]}`, ErrMalformedResponse},
		{"not JSON", `<html>Bad Gateway</html>`, ErrMalformedResponse},
		{"empty body", ``, ErrMalformedResponse},
		{"wrong shape", `{"candidates":"none"}`, ErrMalformedResponse},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			text, err := ExtractText([]byte(tc.body))
			assert.Empty(t, text)
			assert.True(t, errors.Is(err, tc.wantErr), "expected %v, got %v", tc.wantErr, err)
		})
	}
}
