package brackets

import (
	"fmt"
)

// BracketGenerator turns first-round pairings into a round graph.
type BracketGenerator interface {
	BuildTopology(pairs []Pairing) (*Topology, error)

	GetName() string
}

func NewGenerator(bracketType BracketType) (BracketGenerator, error) {
	switch bracketType {
	case BracketSingle:
		return NewSingleEliminationGenerator(), nil
	case BracketDouble:
		return NewDoubleEliminationGenerator(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedBracket, bracketType)
	}
}

// Bracket is the full output of one generation run.
type Bracket struct {
	Topology *Topology
	Schedule *Schedule
	Matches  []GeneratedMatch
	Stats    BracketStats
	Warnings []string
}

// Generate validates the options and runs seeding, topology, scheduling and
// materialization. A failed validation returns a *ValidationError; any other
// error is a defect in the bracket construction.
func Generate(opts Options) (*Bracket, error) {
	result := Validate(opts)
	if !result.Valid {
		return nil, &ValidationError{Result: result}
	}

	pairs := PairSeeds(opts.TeamIDs)
	top, err := BuildTopology(pairs, opts.BracketType)
	if err != nil {
		return nil, fmt.Errorf("build %s bracket for %d teams: %w", opts.BracketType, len(opts.TeamIDs), err)
	}

	sched, err := AssignDays(top, opts.TournamentDays)
	if err != nil {
		return nil, err
	}

	matches := Materialize(top, sched, MatchMeta{SeasonID: opts.SeasonID, LeagueID: opts.LeagueID})
	stats := CalculateStats(len(opts.TeamIDs), opts.BracketType)
	if len(matches) != stats.TotalMatches {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrMaterializedMismatch, len(matches), stats.TotalMatches)
	}

	return &Bracket{
		Topology: top,
		Schedule: sched,
		Matches:  matches,
		Stats:    stats,
		Warnings: result.Warnings,
	}, nil
}
