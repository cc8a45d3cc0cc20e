package models

import (
	"time"

	"github.com/google/uuid"
)

type GenerationStatus string

const (
	GenerationInProgress GenerationStatus = "in_progress"
	GenerationCompleted  GenerationStatus = "completed"
	GenerationPartial    GenerationStatus = "partial"
	GenerationFailed     GenerationStatus = "failed"
)

// BracketGeneration is the claim row guarding one bracket per season and
// league. A nil LeagueID covers the whole season.
type BracketGeneration struct {
	ID          uuid.UUID        `json:"id"`
	SeasonID    string           `json:"seasonId"`
	LeagueID    *string          `json:"leagueId,omitempty"`
	BracketType string           `json:"bracketType"`
	Status      GenerationStatus `json:"status"`
	Expected    int              `json:"expected"`
	Created     int              `json:"created"`
	ArchiveKey  *string          `json:"archiveKey,omitempty"`
	CreatedBy   *int             `json:"createdBy,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}
