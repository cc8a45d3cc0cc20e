package brackets

import "fmt"

type DoubleEliminationGenerator struct{}

func NewDoubleEliminationGenerator() BracketGenerator {
	return &DoubleEliminationGenerator{}
}

func (g *DoubleEliminationGenerator) GetName() string {
	return "DoubleElimination"
}

// BuildTopology builds the winner bracket as in single elimination and a loser
// bracket of 2*(k-1) rounds beside it, k being the number of winner rounds.
//
// Loser round 1 pairs the losers of winner round 1. An even loser round 2j
// pairs the survivors of loser round 2j-1 with the losers dropping from winner
// round j+1; the drop order is reversed every other time to delay rematches.
// Odd loser rounds after the first pair survivors among themselves.
//
// Winner round j sits on layer j and loser round m on layer m+1, so each loser
// round is played on the same day as the winner round after the one feeding
// it. The grand final takes the last layer, 2k. The conditional bracket reset
// is not part of the graph.
func (g *DoubleEliminationGenerator) BuildTopology(pairs []Pairing) (*Topology, error) {
	b, wb, err := newTopologyBuilder(BracketDouble, pairs)
	if err != nil {
		return nil, err
	}

	winnerRounds := log2(b.top.Size)
	loserRounds := 2 * (winnerRounds - 1)
	lastLayer := winnerRounds
	if loserRounds+1 > lastLayer {
		lastLayer = loserRounds + 1
	}

	wbLosers := make([][]Slot, 0, winnerRounds)
	var dropped []Slot
	wb, dropped, err = b.playRound(SideWinner, 1, 1, wb)
	if err != nil {
		return nil, err
	}
	wbLosers = append(wbLosers, dropped)

	var lb []Slot
	for layer := 2; layer <= lastLayer; layer++ {
		if wr := layer; wr <= winnerRounds {
			wb, dropped, err = b.playRound(SideWinner, wr, layer, wb)
			if err != nil {
				return nil, err
			}
			wbLosers = append(wbLosers, dropped)
		}

		lr := layer - 1
		if lr > loserRounds {
			continue
		}

		var entrants []Slot
		switch {
		case lr == 1:
			entrants = wbLosers[0]
		case lr%2 == 0:
			j := lr / 2
			entrants, err = dropIn(lb, wbLosers[j], j%2 == 1)
			if err != nil {
				return nil, fmt.Errorf("loser round %d: %w", lr, err)
			}
		default:
			entrants = lb
		}

		lb, _, err = b.playRound(SideLoser, lr, layer, entrants)
		if err != nil {
			return nil, err
		}
	}

	if len(wb) != 1 {
		return nil, fmt.Errorf("%w: winner bracket ended with %d champions", ErrTopologyDefect, len(wb))
	}

	lbChampion := wbLosers[0]
	if loserRounds > 0 {
		lbChampion = lb
	}
	if len(lbChampion) != 1 {
		return nil, fmt.Errorf("%w: loser bracket ended with %d champions", ErrTopologyDefect, len(lbChampion))
	}

	if _, _, err = b.playRound(SideFinal, 1, lastLayer+1, []Slot{wb[0], lbChampion[0]}); err != nil {
		return nil, err
	}
	return b.top, nil
}

// dropIn interleaves loser-bracket survivors with the losers dropping from the
// winner bracket: survivor i meets drop i, or drop n-1-i when reversed.
func dropIn(survivors, drops []Slot, reversed bool) ([]Slot, error) {
	if len(survivors) != len(drops) {
		return nil, fmt.Errorf("%w: %d survivors cannot meet %d dropped teams", ErrTopologyDefect, len(survivors), len(drops))
	}
	entrants := make([]Slot, 0, len(survivors)*2)
	for i, s := range survivors {
		d := drops[i]
		if reversed {
			d = drops[len(drops)-1-i]
		}
		entrants = append(entrants, s, d)
	}
	return entrants, nil
}
