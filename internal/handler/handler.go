// Package handler drives a single, current Game through moves, undo, and
// automove saturation, and notifies a Journey tracker when a deal is won.
package handler

import (
	"crypto/rand"
	"errors"
	"math/big"

	"github.com/tristhaus/rslibrecell-go/internal/engine"
)

var (
	// ErrNoActiveGame means no game has been started yet.
	ErrNoActiveGame = errors.New("handler: no active game")
	// ErrAlreadyWon means the current game is already won.
	ErrAlreadyWon = errors.New("handler: game already won")
	// ErrEmptyHistory means there is nothing to revert to.
	ErrEmptyHistory = errors.New("handler: history is empty")
)

// knownUnsolvable lists deal ids that are known never to be winnable, per
// spec.md §6.4. Only 11982 falls within [1,64000] and is excluded by
// RandomGame; the rest are recorded for completeness.
var knownUnsolvable = map[int]bool{
	11982:  true,
	146692: true,
	186216: true,
	455889: true,
	495505: true,
	512118: true,
	517776: true,
	781948: true,
}

// JourneyNotifier receives notice when a deal is won. Implemented by
// *journey.Tracker; kept as a narrow interface here so this package does
// not need to import journey's persistence concerns.
type JourneyNotifier interface {
	OnWon(id engine.GameId) error
}

// GameHandler owns the current Game and its undo history, and drives
// random-deal selection and automove saturation after each accepted move.
type GameHandler struct {
	current *engine.Game
	history []engine.Game
	journey JourneyNotifier
}

// New creates a GameHandler with no active game. journey may be nil, in
// which case win notifications are simply not delivered.
func New(journey JourneyNotifier) *GameHandler {
	return &GameHandler{journey: journey}
}

// Current returns the active game, or nil if none has been started.
func (h *GameHandler) Current() *engine.Game {
	return h.current
}

// Restore installs g as the current game with empty history, without going
// through the deal generator. Used to rehydrate a GameHandler from
// persisted session state.
func (h *GameHandler) Restore(g engine.Game) {
	h.current = &g
	h.history = nil
}

// GameFromID installs the deal for id as the current game and clears history.
func (h *GameHandler) GameFromID(id engine.GameId) error {
	g, err := engine.DealFromID(id)
	if err != nil {
		return err
	}
	h.current = &g
	h.history = nil
	return nil
}

// RandomGame installs a uniformly random deal in [1,64000], excluding the
// known-unsolvable id 11982.
func (h *GameHandler) RandomGame() error {
	for {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(engine.MaxGameId)))
		if err != nil {
			return err
		}
		id := engine.GameId(n.Int64() + 1)
		if knownUnsolvable[int(id)] {
			continue
		}
		return h.GameFromID(id)
	}
}

// MakeMove applies mv to the current game, saturating the result with
// repeated automove, and notifies the journey if the deal becomes won.
func (h *GameHandler) MakeMove(mv engine.Move) error {
	if h.current == nil {
		return ErrNoActiveGame
	}
	if h.current.IsWon() {
		return ErrAlreadyWon
	}

	next, err := engine.Apply(*h.current, mv)
	if err != nil {
		return err
	}

	h.history = append(h.history, h.current.Clone())

	for {
		saturated, ok := engine.Automove(next)
		if !ok {
			break
		}
		next = saturated
	}

	h.current = &next

	if next.IsWon() && h.journey != nil {
		return h.journey.OnWon(next.ID)
	}

	return nil
}

// Revert pops the top of history and installs it as the current game.
func (h *GameHandler) Revert() error {
	if h.current != nil && h.current.IsWon() {
		return ErrAlreadyWon
	}
	if len(h.history) == 0 {
		return ErrEmptyHistory
	}

	last := h.history[len(h.history)-1]
	h.history = h.history[:len(h.history)-1]
	h.current = &last

	return nil
}
