package generation

// Severity classifies a toast message.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// UI is the presentation surface a Workflow reports to. Implementations must
// be safe to call from the goroutine running the workflow.
type UI interface {
	// SetLoading shows or hides the loading indicator.
	SetLoading(loading bool)
	// SetOutputHTML replaces the output area.
	SetOutputHTML(html string)
	// ShowToast displays a transient notification.
	ShowToast(message string, severity Severity)
}

// User-facing messages.
const (
	MessageInputRequired = "Please enter a brand, topic, or question!"
	MessageUnavailable   = "AI is taking a nap. Try again later."
	MessageCanceled      = "Generation canceled."
	MessageUnknownMode   = "Unknown generation mode."

	// ErrorPlaceholderHTML replaces the output area when generation fails.
	ErrorPlaceholderHTML = `<div class="ai-placeholder">Error generating content.</div>`
)
