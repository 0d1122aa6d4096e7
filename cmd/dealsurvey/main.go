// Command dealsurvey prints quick, human-readable heuristics about a range
// of FreeCell deals: how many cards start in the longest column, how many
// of the requested ids are known-unsolvable, and (with -print) the canonical
// board text of one chosen deal.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/tristhaus/rslibrecell-go/internal/engine"
)

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

func main() {
	from := flag.Int("from", 1, "first deal id to survey")
	to := flag.Int("to", 100, "last deal id to survey (inclusive)")
	sample := flag.Int("print", 0, "print the canonical board for this deal id, then exit")
	flag.Parse()

	if *sample != 0 {
		printSample(engine.GameId(*sample))
		return
	}

	surveyRange(engine.GameId(*from), engine.GameId(*to))
}

func printSample(id engine.GameId) {
	game, err := engine.DealFromID(id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "deal %d: %v\n", id, err)
		os.Exit(1)
	}
	fmt.Print(game.ToText())
}

func surveyRange(from, to engine.GameId) {
	if from < engine.MinGameId {
		from = engine.MinGameId
	}
	if to > engine.MaxGameId {
		to = engine.MaxGameId
	}

	var longestColumn, longestColumnDeal int
	var unsolvableSeen int

	for id := from; id <= to; id++ {
		if knownUnsolvable[int(id)] {
			unsolvableSeen++
		}

		game, err := engine.DealFromID(id)
		if err != nil {
			fmt.Fprintf(os.Stderr, "deal %d: %v\n", id, err)
			continue
		}

		for _, col := range game.Columns {
			if len(col) > longestColumn {
				longestColumn = len(col)
				longestColumnDeal = int(id)
			}
		}
	}

	fmt.Printf("surveyed deals %d..%d\n", from, to)
	fmt.Printf("known-unsolvable ids in range: %d\n", unsolvableSeen)
	fmt.Printf("longest starting column: %d cards (deal #%d)\n", longestColumn, longestColumnDeal)
}
