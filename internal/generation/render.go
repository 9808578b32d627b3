package generation

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

var (
	lineBreakPattern = regexp.MustCompile(`\r?\n`)
	boldPattern      = regexp.MustCompile(`\*\*(.*?)\*\*`)
)

// Formatter turns generated plain text into the small HTML subset the page
// renders: line breaks become <br> and **bold** becomes <strong>bold</strong>.
// Everything else the model produces is escaped or stripped.
type Formatter struct {
	policy *bluemonday.Policy
}

// NewFormatter creates a Formatter whose sanitizer only allows br and strong.
func NewFormatter() *Formatter {
	policy := bluemonday.NewPolicy()
	policy.AllowElements("br", "strong")
	return &Formatter{policy: policy}
}

// Format applies the line-break and bold transforms, then sanitizes.
func (f *Formatter) Format(text string) string {
	html := lineBreakPattern.ReplaceAllString(text, "<br>")
	html = boldPattern.ReplaceAllString(html, "<strong>$1</strong>")
	return f.policy.Sanitize(html)
}
