package brackets

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidOptions       = errors.New("invalid bracket options")
	ErrUnsupportedBracket   = errors.New("unsupported bracket type")
	ErrTooFewTeams          = errors.New("not enough teams to build a bracket")
	ErrInsufficientDays     = errors.New("not enough tournament days for bracket")
	ErrTopologyDefect       = errors.New("bracket topology defect")
	ErrMaterializedMismatch = errors.New("materialized match count does not match bracket stats")
)

// BracketType selects the elimination format.
type BracketType string

const (
	BracketSingle BracketType = "single"
	BracketDouble BracketType = "double"
)

func (t BracketType) Valid() bool {
	return t == BracketSingle || t == BracketDouble
}

// ParseBracketType accepts the wire values "single" and "double" (case-insensitive).
func ParseBracketType(s string) (BracketType, error) {
	t := BracketType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedBracket, s)
	}
	return t, nil
}

// Side is the part of the bracket a round belongs to.
type Side string

const (
	SideWinner Side = "winner"
	SideLoser  Side = "loser"
	SideFinal  Side = "final"
)

// Options is the immutable input of one preview or generation call.
// The position of a team in TeamIDs is its seed (index 0 is the top seed).
type Options struct {
	TeamIDs        []string
	SeasonID       string
	LeagueID       *string
	TournamentDays []time.Time
	BracketType    BracketType
}

// ValidationError carries a failed ValidationResult through error returns.
type ValidationError struct {
	Result ValidationResult
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Result.Errors, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidOptions
}
