package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tristhaus/rslibrecell-go/internal/engine"
	"github.com/tristhaus/rslibrecell-go/internal/handler"
	"github.com/tristhaus/rslibrecell-go/internal/journey"
)

// Persistence persists session metadata (the current Game snapshot) across
// process restarts. It does not persist journey state — that is the
// concern of the journey.Repository passed to JourneyRepoFactory.
type Persistence interface {
	Save(sess *Session) error
	Load(id string, repo journey.Repository) (*Session, error)
	Delete(id string) error
	Exists(id string) bool
}

// persistedSession mirrors the on-disk JSON shape of a session.
type persistedSession struct {
	ID             string      `json:"id"`
	CreatedAt      time.Time   `json:"created_at"`
	LastAccessedAt time.Time   `json:"last_accessed_at"`
	Game           engine.Game `json:"game"`
}

// FilePersistence implements Persistence using one JSON file per session
// under a directory.
type FilePersistence struct {
	dir string
}

// NewFilePersistence creates the sessions directory if needed and returns a
// FilePersistence rooted there.
func NewFilePersistence(dir string) (*FilePersistence, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("session: create sessions directory: %w", err)
	}
	return &FilePersistence{dir: dir}, nil
}

func (fp *FilePersistence) filePath(id string) string {
	return filepath.Join(fp.dir, fmt.Sprintf("%s.json", strings.ToLower(id)))
}

// Save writes sess's current game snapshot to its JSON file.
func (fp *FilePersistence) Save(sess *Session) error {
	game := sess.Handler.Current()
	if game == nil {
		return fmt.Errorf("session: cannot persist session %s with no active game", sess.ID)
	}

	data := persistedSession{
		ID:             sess.ID,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		Game:           *game,
	}

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("session: marshal session data: %w", err)
	}

	if err := os.WriteFile(fp.filePath(sess.ID), jsonData, 0o644); err != nil {
		return fmt.Errorf("session: write session file: %w", err)
	}

	return nil
}

// Load reads a session's JSON file and rehydrates its GameHandler, wiring
// it to a fresh journey.Tracker built from repo.
func (fp *FilePersistence) Load(id string, repo journey.Repository) (*Session, error) {
	if !fp.Exists(id) {
		return nil, ErrSessionNotFound
	}

	raw, err := os.ReadFile(fp.filePath(id))
	if err != nil {
		return nil, fmt.Errorf("session: read session file: %w", err)
	}

	var data persistedSession
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("session: unmarshal session data: %w", err)
	}

	tracker, err := journey.New(repo)
	if err != nil {
		return nil, fmt.Errorf("session: rebuild journey tracker: %w", err)
	}

	h := handler.New(tracker)
	h.Restore(data.Game)

	return &Session{
		ID:             data.ID,
		Handler:        h,
		Journey:        tracker,
		CreatedAt:      data.CreatedAt,
		LastAccessedAt: data.LastAccessedAt,
	}, nil
}

// Delete removes a session's JSON file.
func (fp *FilePersistence) Delete(id string) error {
	if !fp.Exists(id) {
		return ErrSessionNotFound
	}
	if err := os.Remove(fp.filePath(id)); err != nil {
		return fmt.Errorf("session: remove session file: %w", err)
	}
	return nil
}

// Exists reports whether id has a persisted JSON file.
func (fp *FilePersistence) Exists(id string) bool {
	_, err := os.Stat(fp.filePath(id))
	return err == nil
}
