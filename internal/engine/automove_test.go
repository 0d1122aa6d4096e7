package engine

import "testing"

func TestAutomoveFiresForQualifyingCard(t *testing.T) {
	var g Game
	g.Foundations[foundationClubs] = []Card{card(t, "A♣")}
	g.Foundations[foundationHearts] = []Card{card(t, "A♥")}
	g.Foundations[foundationDiamonds] = []Card{card(t, "A♦")}
	two := card(t, "2♣")
	g.Cells[3] = &two

	next, ok := Automove(g)
	if !ok {
		t.Fatal("expected automove to fire")
	}
	if next.Cells[3] != nil {
		t.Error("cell 3 should be empty after automove")
	}
	top := next.Foundations[foundationClubs][len(next.Foundations[foundationClubs])-1]
	if top.ToText() != "2♣" {
		t.Errorf("clubs foundation top = %s, want 2♣", top.ToText())
	}
}

func TestAutomoveDoesNotFireOnEmptyFoundation(t *testing.T) {
	var g Game
	g.Columns[0] = []Card{card(t, "3♣")}

	if _, ok := Automove(g); ok {
		t.Error("3♣ must not automove onto an empty clubs foundation")
	}
}

func TestAutomoveDoesNotFireWhenOppositeColorsLag(t *testing.T) {
	var g Game
	g.Foundations[foundationClubs] = []Card{card(t, "A♣")}
	g.Columns[0] = []Card{card(t, "2♣")}
	// Hearts and diamonds foundations remain empty (below rank Ace).

	if _, ok := Automove(g); ok {
		t.Error("2♣ must not automove while both opposite-color foundations lag by more than one rank")
	}
}

func TestAutomoveNoneOnEmptyGame(t *testing.T) {
	var g Game
	if _, ok := Automove(g); ok {
		t.Error("empty game must not automove")
	}
}
