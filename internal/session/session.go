// Package session manages multiple concurrently played FreeCell games, each
// with its own undo history and journey progress.
package session

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tristhaus/rslibrecell-go/internal/engine"
	"github.com/tristhaus/rslibrecell-go/internal/handler"
	"github.com/tristhaus/rslibrecell-go/internal/journey"
)

var (
	// ErrSessionNotFound means no session exists with the requested id.
	ErrSessionNotFound = errors.New("session: not found")
	// ErrSessionAlreadyExists means the requested id collides with a live session.
	ErrSessionAlreadyExists = errors.New("session: already exists")
)

// JourneyRepoFactory builds a fresh journey.Repository for a given session
// id, letting callers choose a shared repository (all sessions play the
// same journey) or a per-session one.
type JourneyRepoFactory func(sessionID string) journey.Repository

// Session is one independently playable FreeCell game.
type Session struct {
	ID             string
	Handler        *handler.GameHandler
	Journey        *journey.Tracker
	CreatedAt      time.Time
	LastAccessedAt time.Time
}

// Manager owns a set of concurrently active Sessions.
type Manager struct {
	mu          sync.RWMutex
	sessions    map[string]*Session
	repoFactory JourneyRepoFactory
	persistence Persistence
}

// NewManager creates a Manager. repoFactory builds the journey.Repository
// used by each new session; persistence (optional) additionally persists
// session metadata so sessions survive a process restart.
func NewManager(repoFactory JourneyRepoFactory, persistence Persistence) *Manager {
	return &Manager{
		sessions:    make(map[string]*Session),
		repoFactory: repoFactory,
		persistence: persistence,
	}
}

// Create starts a new session. If id is empty an 8-character hex id is
// generated. If dealID is non-zero that deal is used; otherwise a random
// deal is dealt, excluding known-unsolvable ids.
func (m *Manager) Create(id string, dealID engine.GameId) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if id == "" {
		id = m.generateSessionID()
	}
	if m.sessionExistsLocked(id) {
		return nil, ErrSessionAlreadyExists
	}

	tracker, err := journey.New(m.repoFactory(id))
	if err != nil {
		return nil, fmt.Errorf("session: create journey tracker: %w", err)
	}

	h := handler.New(tracker)
	if dealID != 0 {
		if err := h.GameFromID(dealID); err != nil {
			return nil, fmt.Errorf("session: deal %d: %w", dealID, err)
		}
	} else if err := h.RandomGame(); err != nil {
		return nil, fmt.Errorf("session: random deal: %w", err)
	}

	sess := &Session{
		ID:             id,
		Handler:        h,
		Journey:        tracker,
		CreatedAt:      time.Now(),
		LastAccessedAt: time.Now(),
	}
	m.sessions[strings.ToLower(id)] = sess

	if m.persistence != nil {
		if err := m.persistence.Save(sess); err != nil {
			return nil, fmt.Errorf("session: persist: %w", err)
		}
	}

	return sess, nil
}

// Get retrieves a session by id (case-insensitive), loading it from
// persistence if it is not already resident in memory.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	sess, ok := m.sessions[strings.ToLower(id)]
	m.mu.RUnlock()
	if ok {
		return sess, nil
	}

	if m.persistence == nil {
		return nil, ErrSessionNotFound
	}

	sess, err := m.persistence.Load(id, m.repoFactory(id))
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.sessions[strings.ToLower(id)] = sess
	m.mu.Unlock()

	return sess, nil
}

// GetOrCreate retrieves an existing session or creates one with a random
// deal if it does not exist.
func (m *Manager) GetOrCreate(id string) (*Session, error) {
	sess, err := m.Get(id)
	if err == nil {
		return sess, nil
	}
	if errors.Is(err, ErrSessionNotFound) {
		return m.Create(id, 0)
	}
	return nil, err
}

// List returns every session currently resident in memory.
func (m *Manager) List() []*Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, s)
	}
	return out
}

// Delete removes a session from memory and, if persistence is configured,
// from disk.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	lower := strings.ToLower(id)
	_, existed := m.sessions[lower]
	delete(m.sessions, lower)

	if m.persistence != nil {
		if err := m.persistence.Delete(id); err != nil {
			return fmt.Errorf("session: delete: %w", err)
		}
		return nil
	}

	if !existed {
		return ErrSessionNotFound
	}
	return nil
}

// Touch refreshes a session's LastAccessedAt.
func (m *Manager) Touch(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[strings.ToLower(id)]
	if !ok {
		return ErrSessionNotFound
	}
	sess.LastAccessedAt = time.Now()
	return nil
}

func (m *Manager) sessionExistsLocked(id string) bool {
	_, ok := m.sessions[strings.ToLower(id)]
	return ok
}

func (m *Manager) generateSessionID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}
