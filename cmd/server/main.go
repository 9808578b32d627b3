// Package main implements the entry point for the Spark API server, which
// turns a brand, topic or question into short creative copy through the
// Gemini generateContent API.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
)

func main() {
	if err := run(context.Background()); err != nil {
		log.Fatalf("Spark API server failed: %v", err)
	}
}

// run loads configuration, sets up logging, wires the application and serves
// HTTP until a shutdown signal arrives.
func run(ctx context.Context) error {
	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}

	logger, err := setupAppLogger(cfg)
	if err != nil {
		return err
	}
	logAppConfig(logger, cfg)

	// No client-wide timeout: every attempt is bounded by the retry policy.
	app, err := newApplication(cfg, logger, &http.Client{})
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}
