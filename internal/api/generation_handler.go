package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/spark-api/internal/api/shared"
	"github.com/phrazzld/spark-api/internal/generation"
	"github.com/phrazzld/spark-api/internal/session"
)

// SessionStore is the subset of *session.Store used by the handlers.
type SessionStore interface {
	GetOrCreate(id uuid.UUID) *session.Session
	Get(id uuid.UUID) (*session.Session, error)
	Len() int
}

// GenerationHandler serves the generate and session state endpoints.
type GenerationHandler struct {
	sessions SessionStore
	logger   *slog.Logger
}

// NewGenerationHandler creates a GenerationHandler.
//
// Parameters:
//   - sessions: Store holding per-visitor UI state and coordinators
//   - logger: Logger for request handling; a component attribute is added
//
// Returns:
//   - A GenerationHandler ready to be mounted on a router
func NewGenerationHandler(sessions SessionStore, logger *slog.Logger) *GenerationHandler {
	return &GenerationHandler{
		sessions: sessions,
		logger:   logger.With("component", "generation_handler"),
	}
}

// Generate handles POST /api/generate requests.
//
// The response always carries the run's Result and the session's UI state.
// The status code reflects the result kind: 200 for text, 422 for an empty
// input, 502 for a failed generation and 409 when a newer request from the
// same session superseded this one.
func (h *GenerationHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}
	req.Mode = strings.ToLower(strings.TrimSpace(req.Mode))

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	mode, err := generation.ParseMode(req.Mode)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	sessionID := uuid.Nil
	if req.SessionID != "" {
		// Already validated as a UUID.
		sessionID = uuid.MustParse(req.SessionID)
	}
	sess := h.sessions.GetOrCreate(sessionID)

	result, err := sess.Generate(r.Context(), mode, req.Input)
	status := statusForResult(result, err)

	h.logger.InfoContext(r.Context(), "generation request handled",
		"trace_id", shared.GetTraceID(r.Context()),
		"session_id", sess.ID,
		"mode", mode,
		"result_kind", result.Kind,
		"status_code", status)

	shared.RespondWithJSON(w, r, status, GenerateResponse{
		SessionID: sess.ID,
		Result:    result,
		State:     sess.Snapshot(),
	})
}

// GetSession handles GET /api/sessions/{id} requests.
func (h *GenerationHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	sess, err := h.sessions.Get(id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, SessionResponse{
		SessionID: sess.ID,
		State:     sess.Snapshot(),
	})
}

func statusForResult(result generation.Result, err error) int {
	if errors.Is(err, generation.ErrSuperseded) {
		return http.StatusConflict
	}
	switch result.Kind {
	case generation.ResultText:
		return http.StatusOK
	case generation.ResultInputRequired:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadGateway
	}
}
