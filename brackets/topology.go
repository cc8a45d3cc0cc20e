package brackets

import (
	"fmt"
)

// Match is a logical match node. Index is its position in Topology.Matches
// and is what forward references point at.
type Match struct {
	Index int
	UID   string
	Side  Side
	Round int
	Order int
	Layer int
	Slots [2]Slot
}

// Pair is one slot pair of a round. Pairs containing a bye resolve without a
// match, in which case Match is -1.
type Pair struct {
	Slots   [2]Slot
	Match   int
	Advance Slot
}

// Round is an ordered set of pairs on one side of the bracket.
type Round struct {
	Side   Side
	Number int
	Layer  int
	Pairs  []Pair
}

// MatchCount returns the number of played matches in the round.
func (r Round) MatchCount() int {
	count := 0
	for _, p := range r.Pairs {
		if p.Match >= 0 {
			count++
		}
	}
	return count
}

// Topology is the round/slot graph of a bracket. Matches is append-only and
// every forward reference points at a match in a strictly earlier layer.
type Topology struct {
	Type    BracketType
	Teams   int
	Size    int
	Rounds  []Round
	Matches []Match
	Layers  int
}

// RoundsOn returns the number of rounds on the given side.
func (t *Topology) RoundsOn(side Side) int {
	count := 0
	for _, r := range t.Rounds {
		if r.Side == side {
			count++
		}
	}
	return count
}

// BuildTopology produces the round graph for the first-round pairings.
func BuildTopology(pairs []Pairing, bracketType BracketType) (*Topology, error) {
	gen, err := NewGenerator(bracketType)
	if err != nil {
		return nil, err
	}
	return gen.BuildTopology(pairs)
}

type topologyBuilder struct {
	top       *Topology
	uidPrefix map[Side]string
}

func newTopologyBuilder(bracketType BracketType, pairs []Pairing) (*topologyBuilder, []Slot, error) {
	if len(pairs) == 0 {
		return nil, nil, ErrTooFewTeams
	}
	size := len(pairs) * 2
	if NextPowerOfTwo(size) != size {
		return nil, nil, fmt.Errorf("%w: %d first-round slots is not a power of two", ErrTopologyDefect, size)
	}

	slots := make([]Slot, 0, size)
	teams := 0
	for _, p := range pairs {
		for _, s := range [2]Slot{p.Top, p.Bottom} {
			if s.IsReference() {
				return nil, nil, fmt.Errorf("%w: first-round slot cannot reference a match", ErrTopologyDefect)
			}
			if s.IsTeam() {
				teams++
			}
			slots = append(slots, s)
		}
	}
	if teams < 2 {
		return nil, nil, ErrTooFewTeams
	}

	b := &topologyBuilder{
		top: &Topology{
			Type:  bracketType,
			Teams: teams,
			Size:  size,
		},
		uidPrefix: map[Side]string{SideWinner: "", SideLoser: "LB-", SideFinal: "GF-"},
	}
	if bracketType == BracketDouble {
		b.uidPrefix[SideWinner] = "WB-"
	}
	return b, slots, nil
}

// playRound pairs adjacent slots and returns the slots that advance and the
// slots that drop out, both in pair order. A pair with a bye emits no match;
// its loser slot is a bye as well.
func (b *topologyBuilder) playRound(side Side, number, layer int, slots []Slot) (advance, losers []Slot, err error) {
	if len(slots)%2 != 0 {
		return nil, nil, fmt.Errorf("%w: %s round %d has an odd number of slots (%d)", ErrTopologyDefect, side, number, len(slots))
	}

	round := Round{Side: side, Number: number, Layer: layer, Pairs: make([]Pair, 0, len(slots)/2)}
	advance = make([]Slot, 0, len(slots)/2)
	losers = make([]Slot, 0, len(slots)/2)
	order := 0

	for i := 0; i < len(slots); i += 2 {
		s1, s2 := slots[i], slots[i+1]
		pair := Pair{Slots: [2]Slot{s1, s2}, Match: -1}

		switch {
		case s1.IsBye() && s2.IsBye():
			pair.Advance = ByeSlot()
		case s2.IsBye():
			pair.Advance = s1
		case s1.IsBye():
			pair.Advance = s2
		default:
			for _, s := range pair.Slots {
				if s.IsReference() && b.top.Matches[s.Match].Layer >= layer {
					return nil, nil, fmt.Errorf("%w: %s round %d references match %s from layer %d",
						ErrTopologyDefect, side, number, b.top.Matches[s.Match].UID, b.top.Matches[s.Match].Layer)
				}
			}
			order++
			idx := len(b.top.Matches)
			b.top.Matches = append(b.top.Matches, Match{
				Index: idx,
				UID:   fmt.Sprintf("%sR%dM%d", b.uidPrefix[side], number, order),
				Side:  side,
				Round: number,
				Order: order,
				Layer: layer,
				Slots: pair.Slots,
			})
			pair.Match = idx
			pair.Advance = winnerOf(idx)
		}

		if pair.Match >= 0 {
			losers = append(losers, loserOf(pair.Match))
		} else {
			losers = append(losers, ByeSlot())
		}
		advance = append(advance, pair.Advance)
		round.Pairs = append(round.Pairs, pair)
	}

	b.top.Rounds = append(b.top.Rounds, round)
	if layer > b.top.Layers {
		b.top.Layers = layer
	}
	return advance, losers, nil
}
