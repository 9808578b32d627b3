// Package redact provides utilities for redacting sensitive information from strings
// before they are logged or returned in error responses. Its main job in this
// service is keeping the Gemini API key out of log lines: transport errors from
// net/http embed the full request URL, and that URL carries the key as a query
// parameter.
package redact

import (
	"regexp"
)

// Constants for redaction placeholders
const (
	RedactionPlaceholder          = "[REDACTED]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
)

type rule struct {
	pattern     *regexp.Regexp
	replacement string
}

// rules are applied in order; earlier, more specific rules win.
var rules = []rule{
	// ?key=... or &api_key=... in a URL; keeps the parameter name.
	{
		pattern:     regexp.MustCompile(`(?i)([?&](?:key|api_key|apikey)=)[^&\s"']+`),
		replacement: "${1}" + RedactedKeyPlaceholder,
	},
	// x-goog-api-key header dumps.
	{
		pattern:     regexp.MustCompile(`(?i)(x-goog-api-key["']?\s*[:=]\s*["']?)[^\s"',}]+`),
		replacement: "${1}" + RedactedKeyPlaceholder,
	},
	// Bare Google API keys.
	{
		pattern:     regexp.MustCompile(`AIza[0-9A-Za-z_\-]{35}`),
		replacement: RedactedKeyPlaceholder,
	},
	// Generic "api_key=..." / "token: ..." style assignments.
	{
		pattern: regexp.MustCompile(
			`(?i)\b(api[_-]?key|token|secret)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`,
		),
		replacement: RedactedKeyPlaceholder,
	},
	// Bearer credentials.
	{
		pattern:     regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9_\-.~+/]+=*`),
		replacement: "Bearer " + RedactedCredentialPlaceholder,
	},
}

// String redacts sensitive information from the input string
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.replacement)
	}

	return result
}

// Error redacts sensitive information from an error's Error() output
func Error(err error) string {
	if err == nil {
		return ""
	}

	return String(err.Error())
}
