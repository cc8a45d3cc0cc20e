package brackets

type SingleEliminationGenerator struct{}

func NewSingleEliminationGenerator() BracketGenerator {
	return &SingleEliminationGenerator{}
}

func (g *SingleEliminationGenerator) GetName() string {
	return "SingleElimination"
}

// BuildTopology halves the field every round until one match, the final,
// remains. Round r is scheduled on layer r.
func (g *SingleEliminationGenerator) BuildTopology(pairs []Pairing) (*Topology, error) {
	b, slots, err := newTopologyBuilder(BracketSingle, pairs)
	if err != nil {
		return nil, err
	}

	for round := 1; len(slots) > 1; round++ {
		slots, _, err = b.playRound(SideWinner, round, round, slots)
		if err != nil {
			return nil, err
		}
	}
	return b.top, nil
}
