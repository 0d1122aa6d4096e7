package engine

// opposite suits by color, used by the automove guard.
func oppositeSuits(s Suit) (a, b Suit) {
	if s.IsRed() {
		return Clubs, Spades
	}
	return Hearts, Diamonds
}

func sameColorOtherSuit(s Suit) Suit {
	switch s {
	case Clubs:
		return Spades
	case Spades:
		return Clubs
	case Hearts:
		return Diamonds
	case Diamonds:
		return Hearts
	}
	panic("engine: unreachable suit")
}

func foundationTopRank(g Game, s Suit) int {
	f := g.Foundations[foundationIndexOf(s)]
	if len(f) == 0 {
		return -1
	}
	return int(f[len(f)-1].Rank)
}

// qualifiesForAutomove reports whether card c, sitting at the top of a
// column or in a cell, may be automoved to its foundation right now.
func qualifiesForAutomove(g Game, c Card) bool {
	if c.Rank == Ace {
		return true
	}

	ownTop := foundationTopRank(g, c.Suit)
	if ownTop != int(c.Rank)-1 {
		return false
	}

	sameSuit := sameColorOtherSuit(c.Suit)
	rSame := foundationTopRank(g, sameSuit)

	o1, o2 := oppositeSuits(c.Suit)
	rOther1 := foundationTopRank(g, o1)
	rOther2 := foundationTopRank(g, o2)
	rOtherMin := rOther1
	if rOther2 < rOtherMin {
		rOtherMin = rOther2
	}

	cRank := int(c.Rank)
	if cRank-rOtherMin > 1 {
		return false
	}
	return cRank <= rOtherMin || rOtherMin-rSame <= 1
}

// Automove scans columns 0..7 then cells 0..3 in order, applying the first
// qualifying top card to its foundation. It returns ok=false if no card
// qualifies.
func Automove(g Game) (Game, bool) {
	for i, col := range g.Columns {
		if len(col) == 0 {
			continue
		}
		top := col[len(col)-1]
		if qualifiesForAutomove(g, top) {
			next, err := moveColumnFoundation(g, i)
			if err != nil {
				continue
			}
			return next, true
		}
	}

	for i, c := range g.Cells {
		if c == nil {
			continue
		}
		if qualifiesForAutomove(g, *c) {
			next, err := moveCellFoundation(g, i)
			if err != nil {
				continue
			}
			return next, true
		}
	}

	return Game{}, false
}
