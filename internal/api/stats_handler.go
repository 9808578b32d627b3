package api

import (
	"net/http"

	"github.com/phrazzld/spark-api/internal/api/shared"
)

// EventCounter reports event totals by type. *events.Counter satisfies it.
type EventCounter interface {
	Snapshot() map[string]int64
}

// StatsHandler serves GET /api/stats.
type StatsHandler struct {
	counter  EventCounter
	sessions SessionStore
}

// NewStatsHandler creates a StatsHandler.
func NewStatsHandler(counter EventCounter, sessions SessionStore) *StatsHandler {
	return &StatsHandler{counter: counter, sessions: sessions}
}

// GetStats reports generation event totals and the live session count.
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, StatsResponse{
		Events:   h.counter.Snapshot(),
		Sessions: h.sessions.Len(),
	})
}
