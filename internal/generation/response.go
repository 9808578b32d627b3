package generation

import (
	"encoding/json"
	"fmt"

	"google.golang.org/genai"
)

// FallbackText is shown when the API answered but no text could be extracted.
const FallbackText = "No creative spark found. Try again."

// ExtractText returns candidates[0].content.parts[0].text from a
// generateContent response body.
//
// It returns ErrNoCandidate when the body decodes but has no candidates, and
// ErrMalformedResponse for an undecodable body or a candidate without text.
func ExtractText(body []byte) (string, error) {
	var resp genai.GenerateContentResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("%w: failed to decode response: %v", ErrMalformedResponse, err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return "", ErrNoCandidate
	}

	content := resp.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 || content.Parts[0] == nil {
		return "", fmt.Errorf("%w: candidate has no content parts", ErrMalformedResponse)
	}

	text := content.Parts[0].Text
	if text == "" {
		return "", fmt.Errorf("%w: first part has no text", ErrMalformedResponse)
	}

	return text, nil
}
