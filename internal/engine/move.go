package engine

import "errors"

// ErrMoveRejected is the Move Engine's only failure mode. A rejection never
// mutates the Game the caller passed in.
var ErrMoveRejected = errors.New("engine: move rejected")

// LocationKind tags the three kinds of move endpoint.
type LocationKind uint8

const (
	LocCell LocationKind = iota
	LocFoundation
	LocColumn
)

// Location is a tagged variant: Cell{Index}, Foundation, or Column{Index}.
// Index is meaningless for LocFoundation.
type Location struct {
	Kind  LocationKind
	Index int
}

// CellLocation builds a Cell location.
func CellLocation(i int) Location { return Location{Kind: LocCell, Index: i} }

// ColumnLocation builds a Column location.
func ColumnLocation(i int) Location { return Location{Kind: LocColumn, Index: i} }

// FoundationLocation builds the Foundation location.
func FoundationLocation() Location { return Location{Kind: LocFoundation} }

// Move describes a single move attempt as a (from, to) pair of locations.
type Move struct {
	From Location
	To   Location
}

// Apply validates and applies mv against game, returning a new Game. It
// never mutates game; on rejection the caller's Game is untouched.
func Apply(game Game, mv Move) (Game, error) {
	if err := preCheckFrom(game, mv.From); err != nil {
		return Game{}, err
	}
	if err := preCheckTo(game, mv.To); err != nil {
		return Game{}, err
	}

	switch mv.From.Kind {
	case LocCell:
		switch mv.To.Kind {
		case LocCell:
			return moveCellCell(game, mv.From.Index, mv.To.Index)
		case LocFoundation:
			return moveCellFoundation(game, mv.From.Index)
		case LocColumn:
			return moveCellColumn(game, mv.From.Index, mv.To.Index)
		}
	case LocColumn:
		switch mv.To.Kind {
		case LocCell:
			return moveColumnCell(game, mv.From.Index, mv.To.Index)
		case LocFoundation:
			return moveColumnFoundation(game, mv.From.Index)
		case LocColumn:
			return moveColumnColumn(game, mv.From.Index, mv.To.Index)
		}
	}

	return Game{}, ErrMoveRejected
}

func preCheckFrom(game Game, loc Location) error {
	switch loc.Kind {
	case LocCell:
		if loc.Index < 0 || loc.Index > 3 || game.Cells[loc.Index] == nil {
			return ErrMoveRejected
		}
	case LocFoundation:
		return ErrMoveRejected
	case LocColumn:
		if loc.Index < 0 || loc.Index > 7 || len(game.Columns[loc.Index]) == 0 {
			return ErrMoveRejected
		}
	}
	return nil
}

func preCheckTo(game Game, loc Location) error {
	switch loc.Kind {
	case LocCell:
		if loc.Index < 0 || loc.Index > 3 || game.Cells[loc.Index] != nil {
			return ErrMoveRejected
		}
	case LocFoundation:
		// legality depends on the card; no pre-check
	case LocColumn:
		if loc.Index < 0 || loc.Index > 7 {
			return ErrMoveRejected
		}
	}
	return nil
}

func moveCellCell(game Game, from, to int) (Game, error) {
	g := game.Clone()
	g.Cells[to] = g.Cells[from]
	g.Cells[from] = nil
	return g, nil
}

func moveCellFoundation(game Game, from int) (Game, error) {
	card := *game.Cells[from]
	g := game.Clone()
	if err := pushToFoundation(&g, card); err != nil {
		return Game{}, err
	}
	g.Cells[from] = nil
	return g, nil
}

func moveCellColumn(game Game, from, to int) (Game, error) {
	lower := *game.Cells[from]
	if len(game.Columns[to]) > 0 {
		upper := game.Columns[to][len(game.Columns[to])-1]
		if !fitTogether(upper, lower) {
			return Game{}, ErrMoveRejected
		}
	}
	g := game.Clone()
	g.Columns[to] = append(g.Columns[to], lower)
	g.Cells[from] = nil
	return g, nil
}

func moveColumnCell(game Game, from, to int) (Game, error) {
	g := game.Clone()
	col := g.Columns[from]
	card := col[len(col)-1]
	g.Columns[from] = col[:len(col)-1]
	g.Cells[to] = &card
	return g, nil
}

func moveColumnFoundation(game Game, from int) (Game, error) {
	g := game.Clone()
	col := g.Columns[from]
	card := col[len(col)-1]
	g.Columns[from] = col[:len(col)-1]
	if err := pushToFoundation(&g, card); err != nil {
		return Game{}, err
	}
	return g, nil
}

func moveColumnColumn(game Game, from, to int) (Game, error) {
	if from == to {
		return Game{}, ErrMoveRejected
	}

	emptyColumns := 0
	for _, c := range game.Columns {
		if len(c) == 0 {
			emptyColumns++
		}
	}
	emptyColsExcludingTarget := emptyColumns
	if len(game.Columns[to]) == 0 {
		emptyColsExcludingTarget--
	}

	freeCells := 0
	for _, c := range game.Cells {
		if c == nil {
			freeCells++
		}
	}

	maxMove := (freeCells + 1) << emptyColsExcludingTarget
	if maxMove > 13 {
		maxMove = 13
	}

	fromCol := game.Columns[from]
	run := 1
	for i := len(fromCol) - 1; i > 0; i-- {
		if fitTogether(fromCol[i-1], fromCol[i]) {
			run++
		} else {
			break
		}
	}

	candidate := run
	if candidate > maxMove {
		candidate = maxMove
	}

	if len(game.Columns[to]) > 0 {
		toTop := game.Columns[to][len(game.Columns[to])-1]
		for candidate > 0 {
			fromTop := fromCol[len(fromCol)-candidate]
			if fitTogether(toTop, fromTop) {
				break
			}
			candidate--
		}
	}

	if candidate == 0 {
		return Game{}, ErrMoveRejected
	}

	g := game.Clone()
	moving := append([]Card(nil), g.Columns[from][len(g.Columns[from])-candidate:]...)
	g.Columns[from] = g.Columns[from][:len(g.Columns[from])-candidate]
	g.Columns[to] = append(g.Columns[to], moving...)

	return g, nil
}

// pushToFoundation mutates g in place, appending card to its suit's
// foundation if legal, or returns ErrMoveRejected leaving g unchanged.
func pushToFoundation(g *Game, card Card) error {
	idx := foundationIndexOf(card.Suit)
	f := g.Foundations[idx]

	if len(f) == 0 {
		if card.Rank != Ace {
			return ErrMoveRejected
		}
	} else {
		top := f[len(f)-1]
		if card.Rank == Ace || top.Rank+1 != card.Rank {
			return ErrMoveRejected
		}
	}

	g.Foundations[idx] = append(f, card)
	return nil
}

// fitTogether reports whether lower may be placed directly on top of upper
// in a tableau column: upper is not an Ace, the two cards have opposite
// colors, and upper's rank is exactly one more than lower's.
func fitTogether(upper, lower Card) bool {
	if upper.Rank == Ace {
		return false
	}
	if upper.Suit.IsRed() == lower.Suit.IsRed() {
		return false
	}
	return upper.Rank == lower.Rank+1
}
