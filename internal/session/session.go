package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/spark-api/internal/generation"
)

// Toast is the last notification shown to the visitor.
type Toast struct {
	Message  string              `json:"message"`
	Severity generation.Severity `json:"severity"`
	ShownAt  time.Time           `json:"shown_at"`
}

// State is a point-in-time copy of a session's UI state.
type State struct {
	Loading    bool   `json:"loading"`
	OutputHTML string `json:"output_html"`
	Toast      *Toast `json:"toast,omitempty"`
}

// Session holds one visitor's UI state and generation coordinator.
type Session struct {
	ID uuid.UUID

	mu         sync.RWMutex
	state      State
	lastActive time.Time
	now        func() time.Time

	coordinator *generation.Coordinator
}

func newSession(id uuid.UUID, runner generation.Runner, now func() time.Time) *Session {
	s := &Session{ID: id, now: now, lastActive: now()}
	s.coordinator = generation.NewCoordinator(runner, s)
	return s
}

// Generate runs a generation for this session, superseding any run in flight.
func (s *Session) Generate(ctx context.Context, mode generation.Mode, input string) (generation.Result, error) {
	s.touch()
	return s.coordinator.Run(ctx, mode, input)
}

// Snapshot returns a copy of the current UI state.
func (s *Session) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state := s.state
	if state.Toast != nil {
		toast := *state.Toast
		state.Toast = &toast
	}
	return state
}

// SetLoading implements generation.UI.
func (s *Session) SetLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Loading = loading
}

// SetOutputHTML implements generation.UI.
func (s *Session) SetOutputHTML(html string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.OutputHTML = html
}

// ShowToast implements generation.UI.
func (s *Session) ShowToast(message string, severity generation.Severity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Toast = &Toast{Message: message, Severity: severity, ShownAt: s.now()}
}

func (s *Session) touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = s.now()
}

// idleSince reports whether the session has been inactive since before cutoff
// and has no generation in flight.
func (s *Session) idleSince(cutoff time.Time) bool {
	s.mu.RLock()
	lastActive := s.lastActive
	s.mu.RUnlock()
	return lastActive.Before(cutoff) && !s.coordinator.InFlight()
}
