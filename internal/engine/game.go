package engine

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// GameId identifies one of the 64,000 classic Microsoft FreeCell deals.
// NoNextDeal is the sentinel meaning "journey exhausted".
type GameId uint16

const (
	MinGameId  GameId = 1
	MaxGameId  GameId = 64000
	NoNextDeal GameId = 64001
)

func (id GameId) validate() error {
	if id < MinGameId || id > MaxGameId {
		return fmt.Errorf("%w: %d", ErrInvalidGameID, id)
	}
	return nil
}

// ErrInvalidGameID is returned when a GameId falls outside [1,64000].
var ErrInvalidGameID = errors.New("engine: invalid game id")

// ErrInvalidGameText is returned by GameFromText on structurally damaged
// input, unknown cards, duplicate cards, or an incomplete deck.
var ErrInvalidGameText = errors.New("engine: invalid game text")

// suit index order used for the fixed Foundations slice, per spec.
const (
	foundationClubs = iota
	foundationSpades
	foundationHearts
	foundationDiamonds
)

func foundationIndexOf(s Suit) int {
	switch s {
	case Clubs:
		return foundationClubs
	case Spades:
		return foundationSpades
	case Hearts:
		return foundationHearts
	case Diamonds:
		return foundationDiamonds
	}
	panic("engine: unreachable suit")
}

// Game is an immutable-by-convention snapshot of a FreeCell board. Callers
// must treat a Game as read-only and obtain new Games through DealFromID,
// GameFromText, or the move engine's Apply/Automove.
type Game struct {
	ID GameId

	// Cells holds exactly 4 single-card staging slots.
	Cells [4]*Card

	// Foundations holds exactly 4 piles, indexed by the fixed order
	// Clubs, Spades, Hearts, Diamonds. Each pile's top is its last element.
	Foundations [4][]Card

	// Columns holds exactly 8 tableau stacks, top is the last element.
	Columns [8][]Card
}

// Clone returns a deep copy, since Game holds slices and pointers that must
// not be shared between snapshots.
func (g Game) Clone() Game {
	out := Game{ID: g.ID}
	for i, c := range g.Cells {
		if c != nil {
			card := *c
			out.Cells[i] = &card
		}
	}
	for i, f := range g.Foundations {
		out.Foundations[i] = append([]Card(nil), f...)
	}
	for i, c := range g.Columns {
		out.Columns[i] = append([]Card(nil), c...)
	}
	return out
}

// IsWon reports whether all four foundations hold all 13 of their ranks.
func (g Game) IsWon() bool {
	count := 0
	for _, f := range g.Foundations {
		count += len(f)
	}
	return count == 52
}

// ToText renders the canonical width-34 textual form described in spec.md §6.1.
func (g Game) ToText() string {
	var b strings.Builder

	title := "RustLibreCell              "
	id := strconv.Itoa(int(g.ID))
	b.WriteString(title)
	for i := 0; i < 5-len(id); i++ {
		b.WriteByte(' ')
	}
	b.WriteByte('#')
	b.WriteString(id)
	b.WriteString(" \n\n")

	for _, c := range g.Cells {
		if c == nil {
			b.WriteString(" .. ")
		} else {
			b.WriteByte(' ')
			b.WriteString(c.ToText())
			b.WriteByte(' ')
		}
	}
	b.WriteString("||")
	for _, f := range g.Foundations {
		if len(f) == 0 {
			b.WriteString(" .. ")
		} else {
			b.WriteByte(' ')
			b.WriteString(f[len(f)-1].ToText())
			b.WriteByte(' ')
		}
	}
	b.WriteString("\n--------------------------------- \n")

	for i := 0; i < 19; i++ {
		b.WriteByte(' ')
		for _, col := range g.Columns {
			if i < len(col) {
				b.WriteByte(' ')
				b.WriteString(col[i].ToText())
				b.WriteByte(' ')
			} else {
				b.WriteString("    ")
			}
		}
		b.WriteByte('\n')
	}

	return b.String()
}

// GameFromText parses the canonical textual form produced by ToText. It is
// lenient about trailing whitespace and stops when input lines run out, but
// fails if the recognized cards are not exactly the 52-card deck.
func GameFromText(s string) (Game, error) {
	lines := strings.Split(s, "\n")

	var g Game
	seen := make(map[uint8]bool, 52)

	titleLine, lines, ok := popLine(lines)
	if !ok {
		return Game{}, fmt.Errorf("%w: missing title line", ErrInvalidGameText)
	}
	hashIdx := strings.IndexByte(titleLine, '#')
	if hashIdx < 0 {
		return Game{}, fmt.Errorf("%w: missing deal id", ErrInvalidGameText)
	}
	idText := strings.TrimSpace(titleLine[hashIdx+1:])
	idNum, err := strconv.Atoi(idText)
	if err != nil || idNum < 0 || idNum > 65535 {
		return Game{}, fmt.Errorf("%w: bad deal id %q", ErrInvalidGameText, idText)
	}
	g.ID = GameId(idNum)

	if _, rest, ok := popLine(lines); ok {
		lines = rest
	}

	cellsLine, lines, ok := popLine(lines)
	if !ok {
		return Game{}, fmt.Errorf("%w: missing cells/foundations line", ErrInvalidGameText)
	}
	if err := parseCellsFoundations(cellsLine, &g, seen); err != nil {
		return Game{}, err
	}

	if _, rest, ok := popLine(lines); ok {
		lines = rest
	}

	for {
		columnsLine, rest, ok := popLine(lines)
		if !ok {
			break
		}
		lines = rest
		if err := parseColumnsLine(columnsLine, &g, seen); err != nil {
			return Game{}, err
		}
	}

	if len(seen) != 52 {
		return Game{}, fmt.Errorf("%w: deck has %d distinct cards, want 52", ErrInvalidGameText, len(seen))
	}

	return g, nil
}

func popLine(lines []string) (string, []string, bool) {
	if len(lines) == 0 {
		return "", lines, false
	}
	return lines[0], lines[1:], true
}

func parseCellsFoundations(line string, g *Game, seen map[uint8]bool) error {
	runes := []rune(line)
	workingOnCells := true
	var helper []rune
	index := -1

	for _, ch := range runes {
		index++
		if ch == ' ' || ch == '.' {
			continue
		}
		if ch == '|' {
			workingOnCells = false
			continue
		}
		helper = append(helper, ch)
		if len(helper) > 1 {
			card, err := CardFromText(string(helper))
			if err != nil {
				return fmt.Errorf("%w: bad card %q", ErrInvalidGameText, string(helper))
			}
			if workingOnCells {
				cellIdx := (index - 1) / 4
				if cellIdx < 0 || cellIdx > 3 {
					return fmt.Errorf("%w: cell index out of range", ErrInvalidGameText)
				}
				c := card
				g.Cells[cellIdx] = &c
				if seen[card.ID()] {
					return fmt.Errorf("%w: duplicate card %s", ErrInvalidGameText, card.ToText())
				}
				seen[card.ID()] = true
			} else {
				foundationIdx := (index - 19) / 4
				if foundationIdx < 0 || foundationIdx > 3 {
					return fmt.Errorf("%w: foundation index out of range", ErrInvalidGameText)
				}
				for r := Ace; r <= card.Rank; r++ {
					built, _ := CardFromID(uint8(r)*4 + uint8(card.Suit))
					g.Foundations[foundationIdx] = append(g.Foundations[foundationIdx], built)
					if seen[built.ID()] {
						return fmt.Errorf("%w: duplicate card %s", ErrInvalidGameText, built.ToText())
					}
					seen[built.ID()] = true
				}
			}
			helper = nil
		}
	}

	return nil
}

func parseColumnsLine(line string, g *Game, seen map[uint8]bool) error {
	runes := []rune(line)
	var helper []rune
	index := -1

	for _, ch := range runes {
		index++
		if ch == ' ' {
			continue
		}
		helper = append(helper, ch)
		if len(helper) > 1 {
			card, err := CardFromText(string(helper))
			if err != nil {
				return fmt.Errorf("%w: bad card %q", ErrInvalidGameText, string(helper))
			}
			columnIdx := (index - 2) / 4
			if columnIdx < 0 || columnIdx > 7 {
				return fmt.Errorf("%w: column index out of range", ErrInvalidGameText)
			}
			g.Columns[columnIdx] = append(g.Columns[columnIdx], card)
			if seen[card.ID()] {
				return fmt.Errorf("%w: duplicate card %s", ErrInvalidGameText, card.ToText())
			}
			seen[card.ID()] = true
			helper = nil
		}
	}

	return nil
}
