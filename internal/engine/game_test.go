package engine

import (
	"strings"
	"testing"
)

const deal42ReferenceText = "RustLibreCell                 #42 \n" +
	"\n" +
	" T♣  ..  ..  Q♥ || 2♣  ..  A♥  2♦ \n" +
	"--------------------------------- \n" +
	"  5♠  J♠  K♠  K♦  A♠      5♣  K♣ \n" +
	"  4♦  2♥  7♠  6♣  8♠      4♥  Q♦ \n" +
	"      J♦  Q♠  3♣  3♠          J♣ \n" +
	"      9♠  T♦  8♦  K♥             \n" +
	"      9♦  9♣  7♦  T♥             \n" +
	"      6♥  8♥  6♦  5♦             \n" +
	"      8♣  7♣  Q♣  4♠             \n" +
	"      7♥      J♥  3♦             \n" +
	"      6♠      T♠  2♠             \n" +
	"      5♥      9♥                 \n" +
	"      4♣                         \n" +
	"      3♥                         \n" +
	"                                 \n" +
	"                                 \n" +
	"                                 \n" +
	"                                 \n" +
	"                                 \n" +
	"                                 \n" +
	"                                 \n"

func TestGameTextRoundTrip(t *testing.T) {
	g, err := GameFromText(deal42ReferenceText)
	if err != nil {
		t.Fatalf("GameFromText: %v", err)
	}
	if g.ID != 42 {
		t.Errorf("ID = %d, want 42", g.ID)
	}
	if got := g.ToText(); got != deal42ReferenceText {
		t.Errorf("round trip mismatch:\ngot:\n%s\nwant:\n%s", got, deal42ReferenceText)
	}
}

func TestGameFromTextRejectsEmpty(t *testing.T) {
	if _, err := GameFromText(""); err == nil {
		t.Fatal("expected error for empty input")
	}
}

func TestGameFromTextRejectsIncompleteDeck(t *testing.T) {
	dashIdx := strings.Index(deal42ReferenceText, "---------------------------------")
	truncated := deal42ReferenceText[:dashIdx] + "--------------------------------- \n"

	if _, err := GameFromText(truncated); err == nil {
		t.Fatal("expected error for a board missing every column")
	}
}

func TestGameCloneIsIndependent(t *testing.T) {
	g, err := DealFromID(1)
	if err != nil {
		t.Fatalf("DealFromID(1): %v", err)
	}
	clone := g.Clone()

	card, _ := CardFromID(5)
	clone.Cells[0] = &card
	clone.Foundations[0] = append(clone.Foundations[0], card)
	clone.Columns[0] = append(clone.Columns[0], card)

	if g.Cells[0] != nil {
		t.Error("original cell mutated through clone")
	}
	if len(g.Foundations[0]) != 0 {
		t.Error("original foundation mutated through clone")
	}
	if len(g.Columns[0]) == len(clone.Columns[0]) {
		t.Error("original column mutated through clone")
	}
}

func TestGameIsWon(t *testing.T) {
	var g Game
	if g.IsWon() {
		t.Fatal("empty game must not be won")
	}

	for s := 0; s < 4; s++ {
		for r := Ace; r <= King; r++ {
			card, _ := CardFromID(uint8(r)*4 + uint8(s))
			g.Foundations[s] = append(g.Foundations[s], card)
		}
	}
	if !g.IsWon() {
		t.Fatal("full foundations must be won")
	}
}
