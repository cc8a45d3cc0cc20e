package services

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Dosada05/league-brackets/brackets"
	"github.com/google/uuid"
)

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func normalizeLeagueID(id *string) *string {
	if id == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*id)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// ParseDate accepts YYYY-MM-DD or an RFC 3339 timestamp and returns the
// calendar day at UTC midnight.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(brackets.DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
}

// Date is a calendar day encoded as "YYYY-MM-DD".
type Date struct {
	time.Time
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(brackets.DateLayout))
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	t, err := ParseDate(s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

func archiveKey(seasonID string, leagueID *string, generationID uuid.UUID) string {
	league := "all"
	if leagueID != nil {
		league = *leagueID
	}
	return fmt.Sprintf("brackets/%s/%s/%s.json", seasonID, league, generationID)
}
