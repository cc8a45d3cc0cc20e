package brackets

import (
	"fmt"
	"strings"
)

// ValidationResult separates blocking errors from non-blocking warnings.
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// Validate checks the options before any generation work. It has no side
// effects.
func Validate(opts Options) ValidationResult {
	res := ValidationResult{Errors: []string{}, Warnings: []string{}}
	errorf := func(format string, args ...interface{}) {
		res.Errors = append(res.Errors, fmt.Sprintf(format, args...))
	}

	teamCount := len(opts.TeamIDs)
	if teamCount < 2 {
		errorf("at least 2 teams are required, got %d", teamCount)
	}

	seen := make(map[string]int, teamCount)
	for i, id := range opts.TeamIDs {
		if strings.TrimSpace(id) == "" {
			errorf("team at seed %d has an empty id", i+1)
			continue
		}
		if first, dup := seen[id]; dup {
			errorf("duplicate team %q at seeds %d and %d", id, first+1, i+1)
			continue
		}
		seen[id] = i
	}

	if strings.TrimSpace(opts.SeasonID) == "" {
		errorf("season id is required")
	}

	typeOK := opts.BracketType.Valid()
	if !typeOK {
		errorf("unsupported bracket type %q, expected %q or %q", opts.BracketType, BracketSingle, BracketDouble)
	}

	for i := 1; i < len(opts.TournamentDays); i++ {
		prev, cur := opts.TournamentDays[i-1], opts.TournamentDays[i]
		if !cur.After(prev) {
			errorf("tournament days must be distinct and ascending: %s does not follow %s",
				cur.Format(DateLayout), prev.Format(DateLayout))
			break
		}
	}

	if teamCount >= 2 && typeOK {
		stats := CalculateStats(teamCount, opts.BracketType)
		days := len(opts.TournamentDays)
		switch {
		case days < stats.RequiredDays:
			errorf("need at least %d days, got %d", stats.RequiredDays, days)
		case days > stats.RequiredDays:
			res.Warnings = append(res.Warnings, fmt.Sprintf("%d trailing tournament day(s) will not be used: bracket needs %d days, got %d",
				days-stats.RequiredDays, stats.RequiredDays, days))
		}
		if stats.ByeCount > 0 {
			res.Warnings = append(res.Warnings, fmt.Sprintf("%d teams is not a power of two: %d bye(s) will be given to the top seeds",
				teamCount, stats.ByeCount))
		}
	}

	res.Valid = len(res.Errors) == 0
	return res
}
