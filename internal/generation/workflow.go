package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/spark-api/internal/events"
	"github.com/phrazzld/spark-api/internal/redact"
	"github.com/phrazzld/spark-api/internal/retry"
)

// Executor performs a request with retries. *retry.Executor satisfies it.
type Executor interface {
	Execute(ctx context.Context, req retry.Request) (*retry.Response, error)
}

// Runner runs one generation against a UI. *Workflow satisfies it.
type Runner interface {
	Run(ctx context.Context, ui UI, mode Mode, rawInput string) Result
}

// Workflow builds a generateContent request from visitor input, drives the
// executor and reconciles the outcome with a UI.
type Workflow struct {
	executor  Executor
	endpoint  Endpoint
	prompts   *PromptBuilder
	formatter *Formatter
	emitter   events.EventEmitter
	logger    *slog.Logger
}

// NewWorkflow creates a Workflow with the provided dependencies.
//
// Parameters:
//   - executor: Performs the HTTP call with retries
//   - endpoint: Target model and API key; the key is never logged
//   - persona: Static biography for the persona answer mode
//   - emitter: Receives generation events; may be nil
//   - logger: A structured logger for operation logging
//
// Returns:
//   - A ready Workflow, or an error wrapping ErrInvalidConfig
func NewWorkflow(
	executor Executor,
	endpoint Endpoint,
	persona Persona,
	emitter events.EventEmitter,
	logger *slog.Logger,
) (*Workflow, error) {
	if executor == nil {
		return nil, fmt.Errorf("%w: executor cannot be nil", ErrInvalidConfig)
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if err := endpoint.Validate(); err != nil {
		return nil, err
	}

	prompts, err := NewPromptBuilder(persona)
	if err != nil {
		return nil, err
	}

	return &Workflow{
		executor:  executor,
		endpoint:  endpoint,
		prompts:   prompts,
		formatter: NewFormatter(),
		emitter:   emitter,
		logger:    logger,
	}, nil
}

// Run generates copy for mode from rawInput and reports progress to ui.
//
// Empty input is rejected with a toast before anything else happens. Every
// other path sets loading on exactly once and off exactly once. Only a failed
// or cancelled request produces ResultFailed; a response without usable text
// is shown as FallbackText.
func (w *Workflow) Run(ctx context.Context, ui UI, mode Mode, rawInput string) Result {
	input := strings.TrimSpace(rawInput)
	if input == "" {
		w.logger.DebugContext(ctx, "rejecting empty generation input", "mode", mode)
		ui.ShowToast(MessageInputRequired, SeverityError)
		return InputRequiredResult()
	}

	ui.SetLoading(true)
	defer ui.SetLoading(false)
	ui.SetOutputHTML("")

	return w.generate(ctx, ui, Request{Mode: mode, RawInput: input})
}

func (w *Workflow) generate(ctx context.Context, ui UI, req Request) Result {
	log := w.logger.With("mode", req.Mode)

	payload, err := w.prompts.Build(req)
	if err != nil {
		log.ErrorContext(ctx, "failed to build generation payload", "error", err)
		if errors.Is(err, ErrUnknownMode) {
			return w.fail(ctx, ui, req, err, MessageUnknownMode)
		}
		return w.fail(ctx, ui, req, err, MessageUnavailable)
	}

	log.DebugContext(ctx, "sending generation request",
		"endpoint", w.endpoint,
		"prompt_length", len(payload.Prompt),
		"input_length", len(req.RawInput))

	resp, err := w.executor.Execute(ctx, w.endpoint.Request(payload.Body))
	if err != nil {
		if errors.Is(err, retry.ErrCanceled) {
			log.InfoContext(ctx, "generation canceled")
			return FailedResult(MessageCanceled)
		}
		log.ErrorContext(ctx, "generation request failed", "error", redact.Error(err))
		return w.fail(ctx, ui, req, err, MessageUnavailable)
	}

	text, err := ExtractText(resp.Body)
	if err != nil {
		// Shown to the visitor as the fallback text; kept visible here.
		log.WarnContext(ctx, "using fallback text for unusable response",
			"error", err,
			"no_candidate", errors.Is(err, ErrNoCandidate),
			"attempts", resp.Attempts)
		w.emit(ctx, events.TypeMalformedResponse, eventPayload{
			Mode:     req.Mode,
			Attempts: resp.Attempts,
			Reason:   err.Error(),
		})
		text = FallbackText
	}

	html := w.formatter.Format(text)
	ui.SetOutputHTML(html)

	log.InfoContext(ctx, "generation completed",
		"attempts", resp.Attempts,
		"html_length", len(html))
	w.emit(ctx, events.TypeGenerationCompleted, eventPayload{
		Mode:     req.Mode,
		Attempts: resp.Attempts,
	})

	return TextResult(html)
}

func (w *Workflow) fail(ctx context.Context, ui UI, req Request, err error, message string) Result {
	ui.ShowToast(message, SeverityError)
	ui.SetOutputHTML(ErrorPlaceholderHTML)

	payload := eventPayload{Mode: req.Mode, Reason: redact.Error(err)}
	var execErr *retry.Error
	if errors.As(err, &execErr) {
		payload.Attempts = execErr.Attempts
		payload.StatusCode = execErr.StatusCode
	}
	w.emit(ctx, events.TypeGenerationFailed, payload)

	return FailedResult(message)
}

// eventPayload is the JSON payload of every generation event.
type eventPayload struct {
	Mode       Mode   `json:"mode"`
	Attempts   int    `json:"attempts,omitempty"`
	StatusCode int    `json:"status_code,omitempty"`
	Reason     string `json:"reason,omitempty"`
}

func (w *Workflow) emit(ctx context.Context, eventType string, payload eventPayload) {
	if w.emitter == nil {
		return
	}

	event, err := events.NewGenerationEvent(eventType, payload)
	if err != nil {
		w.logger.ErrorContext(ctx, "failed to create event", "event_type", eventType, "error", err)
		return
	}

	if err := w.emitter.EmitEvent(ctx, event); err != nil {
		w.logger.WarnContext(ctx, "failed to emit event", "event_type", eventType, "error", err)
	}
}
