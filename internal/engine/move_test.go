package engine

import "testing"

func card(t *testing.T, text string) Card {
	t.Helper()
	c, err := CardFromText(text)
	if err != nil {
		t.Fatalf("CardFromText(%q): %v", text, err)
	}
	return c
}

func TestMoveCellToCell(t *testing.T) {
	var g Game
	qh := card(t, "Q♥")
	tc := card(t, "T♣")
	g.Cells[0] = &tc
	g.Cells[3] = &qh

	next, err := Apply(g, Move{From: CellLocation(3), To: CellLocation(2)})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if next.Cells[2] == nil || next.Cells[2].ToText() != "Q♥" {
		t.Errorf("cell 2 = %v, want Q♥", next.Cells[2])
	}
	if next.Cells[3] != nil {
		t.Errorf("cell 3 = %v, want empty", next.Cells[3])
	}

	if _, err := Apply(g, Move{From: CellLocation(3), To: CellLocation(0)}); err == nil {
		t.Error("expected rejection moving onto an occupied cell")
	}
}

func TestMoveColumnToFoundationRequiresSequential(t *testing.T) {
	var g Game
	g.Columns[0] = []Card{card(t, "A♣")}

	next, err := Apply(g, Move{From: ColumnLocation(0), To: FoundationLocation()})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(next.Foundations[foundationClubs]) != 1 {
		t.Fatalf("clubs foundation has %d cards, want 1", len(next.Foundations[foundationClubs]))
	}

	var g2 Game
	g2.Columns[0] = []Card{card(t, "2♣")}
	if _, err := Apply(g2, Move{From: ColumnLocation(0), To: FoundationLocation()}); err == nil {
		t.Error("expected rejection placing 2 on an empty foundation")
	}
}

func TestMoveColumnToColumnFit(t *testing.T) {
	var g Game
	g.Columns[0] = []Card{card(t, "K♥")}
	g.Columns[1] = []Card{card(t, "Q♣")}

	next, err := Apply(g, Move{From: ColumnLocation(1), To: ColumnLocation(0)})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(next.Columns[0]) != 2 || len(next.Columns[1]) != 0 {
		t.Fatalf("columns after move: 0=%d 1=%d", len(next.Columns[0]), len(next.Columns[1]))
	}

	var bad Game
	bad.Columns[0] = []Card{card(t, "K♥")}
	bad.Columns[1] = []Card{card(t, "Q♥")}
	if _, err := Apply(bad, Move{From: ColumnLocation(1), To: ColumnLocation(0)}); err == nil {
		t.Error("expected rejection for same-color stacking")
	}
}

func TestSupermoveCapacityFormula(t *testing.T) {
	// Two free cells (F=2) and one empty column besides the target (E=1):
	// maxMove = min(13, (F+1)*2^E) = 6. Source column 3 holds a fully
	// valid 10-card run; only its top 6 cards may move in one step.
	var g Game

	dummy := card(t, "5♦")
	g.Cells[2] = &dummy
	g.Cells[3] = &dummy
	// Cells 0 and 1 stay free.

	g.Columns[0] = nil // empty, the move's target
	g.Columns[2] = nil // empty, not the target
	for _, col := range []int{1, 4, 5, 6, 7} {
		g.Columns[col] = []Card{dummy}
	}
	g.Columns[3] = []Card{
		card(t, "Q♣"), card(t, "J♥"), card(t, "T♠"), card(t, "9♥"),
		card(t, "8♣"), card(t, "7♥"), card(t, "6♠"), card(t, "5♥"),
		card(t, "4♣"), card(t, "3♥"),
	}

	next, err := Apply(g, Move{From: ColumnLocation(3), To: ColumnLocation(0)})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(next.Columns[0]) != 6 {
		t.Fatalf("moved %d cards onto the empty column, want 6 (capacity formula)", len(next.Columns[0]))
	}
	if len(next.Columns[3]) != 4 {
		t.Fatalf("source column has %d cards left, want 4", len(next.Columns[3]))
	}
}

func TestMoveRejectsEmptySource(t *testing.T) {
	var g Game
	if _, err := Apply(g, Move{From: CellLocation(0), To: CellLocation(1)}); err == nil {
		t.Error("expected rejection moving from an empty cell")
	}
	if _, err := Apply(g, Move{From: ColumnLocation(0), To: CellLocation(1)}); err == nil {
		t.Error("expected rejection moving from an empty column")
	}
}
