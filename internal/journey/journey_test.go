package journey

import (
	"errors"
	"testing"

	"github.com/tristhaus/rslibrecell-go/internal/engine"
)

var errBoom = errors.New("journey: simulated persistence failure")

func freshTracker(t *testing.T) (*Tracker, *MemRepository) {
	t.Helper()
	repo := NewMemRepository()
	repo.Next = 123
	repo.Skipped = []engine.GameId{117, 118}

	tr, err := New(repo)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return tr, repo
}

func TestOnWonAdvancesNext(t *testing.T) {
	tr, repo := freshTracker(t)

	if err := tr.OnWon(123); err != nil {
		t.Fatalf("OnWon: %v", err)
	}
	next, skipped := tr.NextGameIds()
	if next != 124 {
		t.Errorf("next = %d, want 124", next)
	}
	if len(skipped) != 2 || skipped[0] != 117 || skipped[1] != 118 {
		t.Errorf("skipped = %v, want [117 118]", skipped)
	}
	if len(repo.Writes) != 1 {
		t.Fatalf("expected 1 persisted write, got %d", len(repo.Writes))
	}
}

func TestOnWonRemovesFromSkipped(t *testing.T) {
	tr, repo := freshTracker(t)

	if err := tr.OnWon(117); err != nil {
		t.Fatalf("OnWon: %v", err)
	}
	next, skipped := tr.NextGameIds()
	if next != 123 {
		t.Errorf("next = %d, want 123 (unchanged)", next)
	}
	if len(skipped) != 1 || skipped[0] != 118 {
		t.Errorf("skipped = %v, want [118]", skipped)
	}
	if len(repo.Writes) != 1 {
		t.Fatalf("expected 1 persisted write, got %d", len(repo.Writes))
	}
}

func TestOnWonIgnoresUnknownID(t *testing.T) {
	tr, repo := freshTracker(t)

	if err := tr.OnWon(1); err != nil {
		t.Fatalf("OnWon: %v", err)
	}
	next, skipped := tr.NextGameIds()
	if next != 123 || len(skipped) != 2 {
		t.Errorf("state changed for an id not in next/skipped: next=%d skipped=%v", next, skipped)
	}
	if len(repo.Writes) != 0 {
		t.Fatalf("expected no persisted write, got %d", len(repo.Writes))
	}
}

func TestSkipNextMovesCurrentIntoSkipped(t *testing.T) {
	tr, repo := freshTracker(t)

	if err := tr.SkipNext(); err != nil {
		t.Fatalf("SkipNext: %v", err)
	}
	next, skipped := tr.NextGameIds()
	if next != 124 {
		t.Errorf("next = %d, want 124", next)
	}
	if len(skipped) != 3 || skipped[2] != 123 {
		t.Errorf("skipped = %v, want [117 118 123]", skipped)
	}
	if len(repo.Writes) != 1 {
		t.Fatalf("expected 1 persisted write, got %d", len(repo.Writes))
	}
}

func TestSkipNextIsNoOpPastSentinel(t *testing.T) {
	repo := NewMemRepository()
	repo.Next = engine.NoNextDeal
	tr, err := New(repo)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := tr.SkipNext(); err != nil {
		t.Fatalf("SkipNext: %v", err)
	}
	next, _ := tr.NextGameIds()
	if next != engine.NoNextDeal {
		t.Errorf("next = %d, want sentinel %d", next, engine.NoNextDeal)
	}
	if len(repo.Writes) != 0 {
		t.Fatalf("expected no persisted write past the sentinel, got %d", len(repo.Writes))
	}
}

func TestOnWonPropagatesPersistError(t *testing.T) {
	tr, repo := freshTracker(t)
	repo.WriteErr = errBoom

	if err := tr.OnWon(123); err != errBoom {
		t.Fatalf("OnWon: got %v, want %v", err, errBoom)
	}
}
