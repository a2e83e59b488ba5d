package server

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// ErrTooManySessions is returned when the session cap is reached.
var ErrTooManySessions = errors.New("server: session limit reached")

// SessionStats is a point-in-time view of the session manager.
type SessionStats struct {
	Active       int
	TotalCreated int64
	TotalClosed  int64
	Peak         int
}

// SessionManager tracks live sessions and persists their snapshots.
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	store       SessionStore
	maxSessions int
	idleTimeout time.Duration
	logger      *slog.Logger

	created int64
	closed  int64
	peak    int
}

// NewSessionManager creates a manager backed by store. maxSessions of
// 0 means unlimited.
func NewSessionManager(store SessionStore, maxSessions int, idleTimeout time.Duration, logger *slog.Logger) *SessionManager {
	return &SessionManager{
		sessions:    make(map[string]*Session),
		store:       store,
		maxSessions: maxSessions,
		idleTimeout: idleTimeout,
		logger:      logger,
	}
}

// newSessionID returns a 128-bit random URL-safe identifier.
func newSessionID() string {
	buf := make([]byte, 16)
	rand.Read(buf)
	return base64.RawURLEncoding.EncodeToString(buf)
}

// Add registers a session, enforcing the session cap.
func (m *SessionManager) Add(s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.maxSessions > 0 && len(m.sessions) >= m.maxSessions {
		return ErrTooManySessions
	}
	m.sessions[s.ID()] = s
	m.created++
	if len(m.sessions) > m.peak {
		m.peak = len(m.sessions)
	}
	return nil
}

// Get returns the session with the given ID.
func (m *SessionManager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Remove drops a session from the manager and persists its snapshot
// for the resume window.
func (m *SessionManager) Remove(id string) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
		m.closed++
	}
	m.mu.Unlock()
	if !ok {
		return
	}

	if m.store != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		expiresAt := time.Now().Add(m.idleTimeout)
		if err := m.store.Save(ctx, id, s.snapshot(), expiresAt); err != nil {
			m.logger.Warn("session snapshot failed", "session", id, "error", err)
		}
	}
}

// Resume loads a persisted snapshot, returning the page path it was
// rendering. ok is false when no resumable snapshot exists.
func (m *SessionManager) Resume(ctx context.Context, id string) (string, bool) {
	if m.store == nil {
		return "", false
	}
	data, err := m.store.Load(ctx, id)
	if err != nil || data == nil {
		return "", false
	}
	var snap sessionSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return "", false
	}
	m.store.Delete(ctx, id)
	return snap.Page, true
}

// Stats returns a snapshot of the manager's counters.
func (m *SessionManager) Stats() SessionStats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return SessionStats{
		Active:       len(m.sessions),
		TotalCreated: m.created,
		TotalClosed:  m.closed,
		Peak:         m.peak,
	}
}

// EvictIdle closes sessions idle past the timeout and returns how many
// it evicted.
func (m *SessionManager) EvictIdle(now time.Time) int {
	m.mu.RLock()
	var idle []*Session
	for _, s := range m.sessions {
		if m.idleTimeout > 0 && now.Sub(s.LastSeen()) > m.idleTimeout {
			idle = append(idle, s)
		}
	}
	m.mu.RUnlock()

	for _, s := range idle {
		m.logger.Info("evicting idle session", "session", s.ID())
		s.Close()
		m.Remove(s.ID())
	}
	return len(idle)
}

// CloseAll closes every session, persisting snapshots on the way out.
func (m *SessionManager) CloseAll() {
	m.mu.RLock()
	all := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		all = append(all, s)
	}
	m.mu.RUnlock()

	for _, s := range all {
		s.Close()
		m.Remove(s.ID())
	}
	if m.store != nil {
		m.store.Close()
	}
}
