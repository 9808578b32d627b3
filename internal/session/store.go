package session

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/spark-api/internal/generation"
)

// ErrNotFound is returned when a session id is unknown or expired.
var ErrNotFound = errors.New("session not found")

// Store keeps sessions in memory, keyed by id.
type Store struct {
	runner  generation.Runner
	idleTTL time.Duration
	logger  *slog.Logger
	now     func() time.Time

	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
}

// NewStore creates a Store whose sessions run generations through runner and
// are evicted after idleTTL without activity.
func NewStore(runner generation.Runner, idleTTL time.Duration, logger *slog.Logger) *Store {
	return &Store{
		runner:   runner,
		idleTTL:  idleTTL,
		logger:   logger.With("component", "session_store"),
		now:      time.Now,
		sessions: make(map[uuid.UUID]*Session),
	}
}

// GetOrCreate returns the session for id, creating a fresh one when id is
// uuid.Nil, unknown or expired.
func (s *Store) GetOrCreate(id uuid.UUID) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictLocked()

	if sess, ok := s.sessions[id]; ok && id != uuid.Nil {
		sess.touch()
		return sess
	}

	sess := newSession(uuid.New(), s.runner, s.now)
	s.sessions[sess.ID] = sess
	s.logger.Debug("created session", "session_id", sess.ID, "session_count", len(s.sessions))
	return sess
}

// Get returns an existing session.
func (s *Store) Get(id uuid.UUID) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictLocked()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return sess, nil
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Store) evictLocked() {
	cutoff := s.now().Add(-s.idleTTL)
	for id, sess := range s.sessions {
		if sess.idleSince(cutoff) {
			delete(s.sessions, id)
			s.logger.Debug("evicted idle session", "session_id", id)
		}
	}
}
