package brackets

import (
	"fmt"
	"time"
)

// DateLayout is the wire format of tournament days.
const DateLayout = time.DateOnly

// MatchSource describes a slot that is decided by an earlier match.
type MatchSource struct {
	MatchID string `json:"matchId"`
	Outcome string `json:"outcome"`
}

func (s MatchSource) String() string {
	return s.Outcome + ":" + s.MatchID
}

// GeneratedMatch is a concrete match record. A nil team id means the slot is
// decided by a result that is not known at generation time.
type GeneratedMatch struct {
	ID          string
	Team1ID     *string
	Team2ID     *string
	Date        time.Time
	SeasonID    string
	LeagueID    *string
	Stage       string
	BracketSide Side
	Round       int
	Order       int
	Team1Source *MatchSource
	Team2Source *MatchSource
}

// MatchMeta is copied onto every generated match.
type MatchMeta struct {
	SeasonID string
	LeagueID *string
}

// Materialize emits one match per played pair in topology order (layer, then
// side, then round order). Bye pairs produce nothing.
func Materialize(top *Topology, sched *Schedule, meta MatchMeta) []GeneratedMatch {
	roundsOnSide := map[Side]int{
		SideWinner: top.RoundsOn(SideWinner),
		SideLoser:  top.RoundsOn(SideLoser),
		SideFinal:  top.RoundsOn(SideFinal),
	}

	out := make([]GeneratedMatch, 0, len(top.Matches))
	for _, m := range top.Matches {
		gm := GeneratedMatch{
			ID:          m.UID,
			Date:        sched.DayOf(m.Layer),
			SeasonID:    meta.SeasonID,
			LeagueID:    meta.LeagueID,
			Stage:       StageLabel(top.Type, m.Side, m.Round, roundsOnSide[m.Side]),
			BracketSide: m.Side,
			Round:       m.Round,
			Order:       m.Order,
		}
		gm.Team1ID, gm.Team1Source = resolveSlot(top, m.Slots[0])
		gm.Team2ID, gm.Team2Source = resolveSlot(top, m.Slots[1])
		out = append(out, gm)
	}
	return out
}

func resolveSlot(top *Topology, s Slot) (*string, *MatchSource) {
	switch s.Kind {
	case SlotTeam:
		id := s.TeamID
		return &id, nil
	case SlotWinnerOf:
		return nil, &MatchSource{MatchID: top.Matches[s.Match].UID, Outcome: "winner"}
	case SlotLoserOf:
		return nil, &MatchSource{MatchID: top.Matches[s.Match].UID, Outcome: "loser"}
	default:
		return nil, nil
	}
}

// StageLabel names a round from its position relative to the last round on
// its side.
func StageLabel(bracketType BracketType, side Side, round, roundsOnSide int) string {
	fromEnd := roundsOnSide - round

	switch {
	case side == SideFinal:
		return "Grand Final"
	case side == SideLoser:
		if fromEnd == 0 {
			return "Losers Final"
		}
		return fmt.Sprintf("Losers Round %d", round)
	case bracketType == BracketDouble:
		switch fromEnd {
		case 0:
			return "Winners Final"
		case 1:
			return "Winners Semi-Final"
		case 2:
			return "Winners Quarter-Final"
		}
		return fmt.Sprintf("Winners Round %d", round)
	}

	switch fromEnd {
	case 0:
		return "Championship"
	case 1:
		return "Semi-Final"
	case 2:
		return "Quarter-Final"
	}
	return fmt.Sprintf("Round of %d", 2<<fromEnd)
}
