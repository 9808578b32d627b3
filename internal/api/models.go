package api

import (
	"github.com/google/uuid"
	"github.com/phrazzld/spark-api/internal/generation"
	"github.com/phrazzld/spark-api/internal/session"
)

// MaxInputLength bounds the visitor input accepted by the generate endpoint.
const MaxInputLength = 2000

// GenerateRequest defines the payload for the generate endpoint. An empty
// Input is accepted here and answered with an input_required result.
type GenerateRequest struct {
	Mode      string `json:"mode"                 validate:"required,oneof=slogans elevator social ask_me"`
	Input     string `json:"input"                validate:"max=2000"`
	SessionID string `json:"session_id,omitempty" validate:"omitempty,uuid"`
}

// GenerateResponse is returned by the generate endpoint for every outcome of
// the workflow, including input_required, failed and superseded runs.
type GenerateResponse struct {
	SessionID uuid.UUID         `json:"session_id"`
	Result    generation.Result `json:"result"`
	State     session.State     `json:"state"`
}

// SessionResponse is returned by the session state endpoint.
type SessionResponse struct {
	SessionID uuid.UUID     `json:"session_id"`
	State     session.State `json:"state"`
}

// StatsResponse is returned by the stats endpoint.
type StatsResponse struct {
	Events   map[string]int64 `json:"events"`
	Sessions int              `json:"sessions"`
}
