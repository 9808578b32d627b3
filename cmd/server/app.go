package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/spark-api/internal/config"
	"github.com/phrazzld/spark-api/internal/events"
	"github.com/phrazzld/spark-api/internal/generation"
	"github.com/phrazzld/spark-api/internal/retry"
	"github.com/phrazzld/spark-api/internal/session"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	executor *retry.Executor
	workflow *generation.Workflow
	sessions *session.Store

	// Event system
	eventEmitter *events.InMemoryEventEmitter
	eventCounter *events.Counter
}

// newApplication creates a new application instance with all dependencies initialized.
//
// Parameters:
//   - cfg: Validated application configuration
//   - logger: Root structured logger
//   - client: Performs single HTTP attempts against the Gemini API
//
// Returns:
//   - The wired application, or an error naming the component that failed
func newApplication(cfg *config.Config, logger *slog.Logger, client retry.Doer) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	var err error
	app.executor, err = retry.NewExecutor(
		client,
		retry.PolicyFromConfig(cfg.Retry),
		logger.With("component", "retry_executor"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create retry executor: %w", err)
	}

	app.eventEmitter = events.NewInMemoryEventEmitter(logger.With("component", "event_emitter"))
	app.eventCounter = events.NewCounter()
	app.eventEmitter.RegisterHandler(app.eventCounter)

	app.workflow, err = generation.NewWorkflow(
		app.executor,
		generation.EndpointFromConfig(cfg.LLM),
		generation.Persona{Name: cfg.Persona.Name, Context: cfg.Persona.Context},
		app.eventEmitter,
		logger.With("component", "generation_workflow"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create generation workflow: %w", err)
	}

	app.sessions = session.NewStore(app.workflow, cfg.Session.IdleTTL(), logger)

	logger.Info("Application initialized successfully",
		"max_elapsed_backoff", app.executor.Policy().MaxElapsed())
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	app.logger.Info("Application shutdown completed",
		"sessions", app.sessions.Len(),
		"events", app.eventCounter.Snapshot())
}
