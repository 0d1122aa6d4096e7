package engine

// prng is the 32-bit linear congruential generator used by the classic
// Microsoft FreeCell shuffle.
type prng struct {
	state uint32
}

// next advances the generator and returns the next value in [0, 32767].
func (p *prng) next() uint32 {
	p.state = (p.state*214013 + 2531011) % 2147483648
	return p.state / 65536
}

// DealFromID deterministically builds the initial board for the given deal
// id, reproducing the classic Microsoft FreeCell layout.
func DealFromID(id GameId) (Game, error) {
	if err := id.validate(); err != nil {
		return Game{}, err
	}

	g := Game{ID: id}

	deck := make([]Card, 52)
	for i := range deck {
		deck[i], _ = CardFromID(uint8(i))
	}

	rng := prng{state: uint32(id)}
	column := 0
	size := len(deck)
	for size > 0 {
		idx := int(rng.next()) % size
		card := deck[idx]
		size--
		deck[idx] = deck[size]
		deck = deck[:size]

		g.Columns[column] = append(g.Columns[column], card)
		column = (column + 1) % 8
	}

	return g, nil
}
