package journey

import "github.com/tristhaus/rslibrecell-go/internal/engine"

// MemRepository is an in-memory Repository, useful for tests and for a
// Tracker that should not touch disk.
type MemRepository struct {
	Next    engine.GameId
	Skipped []engine.GameId

	// Writes records every call to Write, in order, for assertions.
	Writes [][2]any

	// WriteErr, if set, is returned by Write instead of persisting.
	WriteErr error
}

// NewMemRepository returns a repository seeded with the empty journey.
func NewMemRepository() *MemRepository {
	return &MemRepository{Next: engine.MinGameId}
}

func (m *MemRepository) Read() (engine.GameId, []engine.GameId, error) {
	return m.Next, append([]engine.GameId(nil), m.Skipped...), nil
}

func (m *MemRepository) Write(next engine.GameId, skipped []engine.GameId) error {
	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.Next = next
	m.Skipped = append([]engine.GameId(nil), skipped...)
	m.Writes = append(m.Writes, [2]any{next, append([]engine.GameId(nil), skipped...)})
	return nil
}
