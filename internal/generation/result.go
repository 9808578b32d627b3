package generation

// ResultKind tags a Result.
type ResultKind string

const (
	// ResultText carries rendered HTML.
	ResultText ResultKind = "text"
	// ResultInputRequired means the input was empty and nothing was sent.
	ResultInputRequired ResultKind = "input_required"
	// ResultFailed means the request pipeline gave up; Message is user-safe.
	ResultFailed ResultKind = "failed"
)

// Result is what a Workflow hands back to the UI layer.
type Result struct {
	Kind    ResultKind `json:"kind"`
	HTML    string     `json:"html,omitempty"`
	Message string     `json:"message,omitempty"`
}

// TextResult wraps rendered HTML.
func TextResult(html string) Result {
	return Result{Kind: ResultText, HTML: html}
}

// InputRequiredResult reports an empty input.
func InputRequiredResult() Result {
	return Result{Kind: ResultInputRequired, Message: MessageInputRequired}
}

// FailedResult reports a failed generation with a user-safe message.
func FailedResult(message string) Result {
	return Result{Kind: ResultFailed, Message: message}
}
