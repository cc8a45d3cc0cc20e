package models

import (
	"time"

	"github.com/google/uuid"
)

type MatchStatus string

const (
	StatusScheduled MatchStatus = "scheduled"
)

// Match is a persisted bracket match. Team ids are nil until the source match
// named in Team1Source/Team2Source ("winner:R1M1") has been played.
type Match struct {
	ID              int         `json:"id"`
	SeasonID        string      `json:"seasonId"`
	LeagueID        *string     `json:"leagueId,omitempty"`
	GenerationID    uuid.UUID   `json:"generationId"`
	BracketMatchUID string      `json:"bracketMatchUid"`
	BracketSide     string      `json:"bracketSide"`
	Stage           string      `json:"stage"`
	Round           int         `json:"round"`
	OrderInRound    int         `json:"orderInRound"`
	Team1ID         *string     `json:"team1Id"`
	Team2ID         *string     `json:"team2Id"`
	Team1Source     *string     `json:"team1Source,omitempty"`
	Team2Source     *string     `json:"team2Source,omitempty"`
	MatchDate       time.Time   `json:"matchDate"`
	Status          MatchStatus `json:"status"`
	CreatedAt       time.Time   `json:"createdAt"`
}
