// Package journey tracks which of the 64,000 classic deals the player has
// worked through: the next deal to attempt, and any deals explicitly
// skipped along the way.
package journey

import "github.com/tristhaus/rslibrecell-go/internal/engine"

// Repository persists journey state. Read is called once on construction;
// Write is called after every state change and is expected to complete
// before the call returns (see spec.md §5).
type Repository interface {
	Read() (next engine.GameId, skipped []engine.GameId, err error)
	Write(next engine.GameId, skipped []engine.GameId) error
}

// Tracker is the productive implementation of the journey state machine
// described in spec.md §4.6.
type Tracker struct {
	next       engine.GameId
	skipped    []engine.GameId
	repository Repository
}

// New constructs a Tracker, reading its initial state from repository.
func New(repository Repository) (*Tracker, error) {
	next, skipped, err := repository.Read()
	if err != nil {
		return nil, err
	}
	return &Tracker{
		next:       next,
		skipped:    append([]engine.GameId(nil), skipped...),
		repository: repository,
	}, nil
}

// NextGameIds returns a snapshot of (next, skipped). Callers must not
// mutate the returned slice.
func (t *Tracker) NextGameIds() (engine.GameId, []engine.GameId) {
	return t.next, t.skipped
}

// OnWon records that the deal identified by id has been won. Persistence
// failures are surfaced to the caller per spec.md §7 — they are fatal for
// the core, and the recommended handling is to propagate and terminate
// gracefully.
func (t *Tracker) OnWon(id engine.GameId) error {
	if id == t.next {
		t.next++
		return t.persist()
	}

	for i, s := range t.skipped {
		if s == id {
			t.skipped = append(t.skipped[:i], t.skipped[i+1:]...)
			return t.persist()
		}
	}

	return nil
}

// SkipNext defers the current next deal, appending it to skipped and
// advancing next. It is a no-op once next has reached the sentinel.
func (t *Tracker) SkipNext() error {
	if t.next > engine.MaxGameId {
		return nil
	}
	t.skipped = append(t.skipped, t.next)
	t.next++
	return t.persist()
}

func (t *Tracker) persist() error {
	return t.repository.Write(t.next, t.skipped)
}
