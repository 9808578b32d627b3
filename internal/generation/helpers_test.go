package generation

import (
	"context"
	"sync"

	"github.com/phrazzld/spark-api/internal/retry"
)

// toast records one ShowToast call.
type toast struct {
	Message  string
	Severity Severity
}

// recordingUI implements UI and records every call.
type recordingUI struct {
	mu         sync.Mutex
	loadingOn  int
	loadingOff int
	loading    bool
	outputs    []string
	toasts     []toast
}

func (u *recordingUI) SetLoading(loading bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if loading {
		u.loadingOn++
	} else {
		u.loadingOff++
	}
	u.loading = loading
}

func (u *recordingUI) SetOutputHTML(html string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.outputs = append(u.outputs, html)
}

func (u *recordingUI) ShowToast(message string, severity Severity) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.toasts = append(u.toasts, toast{Message: message, Severity: severity})
}

func (u *recordingUI) output() string {
	u.mu.Lock()
	defer u.mu.Unlock()
	if len(u.outputs) == 0 {
		return ""
	}
	return u.outputs[len(u.outputs)-1]
}

// MockExecutor implements Executor with a function field.
type MockExecutor struct {
	mu        sync.Mutex
	requests  []retry.Request
	ExecuteFn func(ctx context.Context, req retry.Request) (*retry.Response, error)
}

func (m *MockExecutor) Execute(ctx context.Context, req retry.Request) (*retry.Response, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()
	if m.ExecuteFn != nil {
		return m.ExecuteFn(ctx, req)
	}
	return &retry.Response{StatusCode: 200, Body: []byte(`{}`), Attempts: 1}, nil
}

func (m *MockExecutor) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

// respondWith returns an ExecuteFn answering every call with body.
func respondWith(body string) func(context.Context, retry.Request) (*retry.Response, error) {
	return func(context.Context, retry.Request) (*retry.Response, error) {
		return &retry.Response{StatusCode: 200, Body: []byte(body), Attempts: 1}, nil
	}
}

var testPersona = Persona{
	Name:    "Ashish",
	Context: "I am Ashish, a Design Director at WHQ who is all about typography.",
}

var testEndpoint = Endpoint{
	BaseURL: "https://generativelanguage.example.test/v1beta",
	Model:   "gemini-test",
	APIKey:  "secret-test-key",
}
